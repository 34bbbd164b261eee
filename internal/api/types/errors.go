package types

import appErr "github.com/iac-studio/projects/pkg/errors"

// FromError builds the failure form for err using its public message.
func FromError[T any](err error) Envelope[T] {
	if err == nil {
		return Failure[T](string(appErr.CodeUnknown))
	}
	return Failure[T](appErr.PublicMessage(err))
}
