package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// MessageKind classifies the human-readable note carried by an Envelope.
type MessageKind string

const (
	KindSuccess MessageKind = "success"
	KindError   MessageKind = "error"
	KindInfo    MessageKind = "info"
)

func (k MessageKind) valid() bool {
	switch k {
	case KindSuccess, KindError, KindInfo:
		return true
	}
	return false
}

// Message is an optional annotation on an Envelope.
type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// Envelope reports the outcome of an operation. It is a value object: the
// zero value is not meaningful, and instances are only built through
// Success, Failure, Info and FromError, so a failed envelope can never carry
// a payload.
type Envelope[T any] struct {
	success bool
	project *T
	message *Message
}

// Success builds the success form around payload. A nil slice or map is
// stored as an empty one so it marshals as [] or {} and survives a round
// trip as a present, empty project.
func Success[T any](payload T) Envelope[T] {
	if v := reflect.ValueOf(&payload).Elem(); v.Kind() == reflect.Slice && v.IsNil() {
		v.Set(reflect.MakeSlice(v.Type(), 0, 0))
	} else if v.Kind() == reflect.Map && v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}
	return Envelope[T]{success: true, project: &payload}
}

// Failure builds the failure form with an error message and no payload.
func Failure[T any](text string) Envelope[T] {
	return Envelope[T]{message: &Message{Kind: KindError, Text: text}}
}

// Info builds a successful envelope that carries only an informational note.
func Info[T any](text string) Envelope[T] {
	return Envelope[T]{success: true, message: &Message{Kind: KindInfo, Text: text}}
}

// WithMessage returns a copy of e annotated with the given message. It
// refuses kinds that contradict the envelope's outcome.
func (e Envelope[T]) WithMessage(kind MessageKind, text string) (Envelope[T], error) {
	if err := checkKind(e.success, kind); err != nil {
		return e, err
	}
	e.message = &Message{Kind: kind, Text: text}
	return e, nil
}

// WithInfo returns a copy of e carrying an informational note. Info is
// compatible with either outcome.
func (e Envelope[T]) WithInfo(text string) Envelope[T] {
	e.message = &Message{Kind: KindInfo, Text: text}
	return e
}

// IsSuccess is the authoritative outcome flag.
func (e Envelope[T]) IsSuccess() bool { return e.success }

// Project returns the payload and whether one is present.
func (e Envelope[T]) Project() (T, bool) {
	if e.project == nil {
		var zero T
		return zero, false
	}
	return *e.project, true
}

// Message returns the annotation and whether one is present.
func (e Envelope[T]) Message() (Message, bool) {
	if e.message == nil {
		return Message{}, false
	}
	return *e.message, true
}

type wireEnvelope[T any] struct {
	IsSuccess bool     `json:"isSuccess"`
	Project   *T       `json:"project,omitempty"`
	Message   *Message `json:"message,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEnvelope[T]{IsSuccess: e.success, Project: e.project, Message: e.message})
}

// UnmarshalJSON implements json.Unmarshaler and rejects documents that break
// the envelope invariants.
func (e *Envelope[T]) UnmarshalJSON(b []byte) error {
	var raw struct {
		IsSuccess *bool           `json:"isSuccess"`
		Project   json.RawMessage `json:"project"`
		Message   *Message        `json:"message"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.IsSuccess == nil {
		return errors.New("envelope: isSuccess is required")
	}
	out := Envelope[T]{success: *raw.IsSuccess}
	hasProject := len(raw.Project) > 0 && string(raw.Project) != "null"
	if hasProject && !out.success {
		// A failure may spell out an empty project; it is dropped.
		if !emptyJSON(raw.Project) {
			return errors.New("envelope: failed envelope carries a project")
		}
		hasProject = false
	}
	if hasProject {
		var payload T
		if err := json.Unmarshal(raw.Project, &payload); err != nil {
			return fmt.Errorf("envelope: decode project: %w", err)
		}
		out.project = &payload
	}
	if raw.Message != nil {
		if err := checkKind(out.success, raw.Message.Kind); err != nil {
			return err
		}
		m := *raw.Message
		out.message = &m
	}
	*e = out
	return nil
}

// emptyJSON reports whether b is an empty JSON array or object.
func emptyJSON(b json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

func checkKind(success bool, kind MessageKind) error {
	if !kind.valid() {
		return fmt.Errorf("envelope: unknown message kind %q", kind)
	}
	if kind == KindError && success {
		return errors.New("envelope: error message on a successful envelope")
	}
	if kind == KindSuccess && !success {
		return errors.New("envelope: success message on a failed envelope")
	}
	return nil
}
