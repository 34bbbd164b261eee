package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsChain(t *testing.T) {
	root := errors.New("connection refused")
	err := Wrap(root, CodeUnavailable, "list projects failed")

	require.ErrorIs(t, err, root)
	assert.Equal(t, CodeUnavailable, err.Code)
	assert.Equal(t, "unavailable: list projects failed: connection refused", err.Error())
}

func TestWrapContextErrors(t *testing.T) {
	err := Wrap(fmt.Errorf("query: %w", context.DeadlineExceeded), CodeInternal, "list projects failed")
	assert.Equal(t, CodeDeadline, err.Code)

	err = Wrap(context.Canceled, CodeInternal, "list projects failed")
	assert.Equal(t, CodeCanceled, err.Code)
	require.ErrorIs(t, err, context.Canceled)

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()
	assert.Equal(t, CodeDeadline, Wrap(ctx.Err(), CodeInternal, "x").Code)
}

func TestWithMeta(t *testing.T) {
	err := Wrap(errors.New("closed"), CodeInternal, "list projects failed").WithMeta("driver", "sqlite")
	assert.Equal(t, map[string]any{"driver": "sqlite"}, err.Meta)
	assert.Equal(t, map[string]any{"driver": "sqlite"}, MetaOf(fmt.Errorf("outer: %w", err)))
	assert.Nil(t, MetaOf(errors.New("plain")))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeNotFound, CodeOf(fmt.Errorf("outer: %w", New(CodeNotFound, "missing"))))
	assert.True(t, IsCode(New(CodeInternal, "boom"), CodeInternal))
	assert.False(t, IsCode(nil, CodeInternal))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalid:     http.StatusBadRequest,
		CodeNotFound:    http.StatusNotFound,
		CodeUnavailable: http.StatusServiceUnavailable,
		CodeDeadline:    http.StatusGatewayTimeout,
		CodeCanceled:    499,
		CodeInternal:    http.StatusInternalServerError,
		CodeUnknown:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %s", code)
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "store offline", PublicMessage(Wrap(errors.New("dial tcp"), CodeUnavailable, "store offline")))
	assert.Equal(t, "Internal Server Error", PublicMessage(errors.New("secret detail")))
}
