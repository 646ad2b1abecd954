package flairsync

import (
	"errors"
	"fmt"
)

// Kind classifies a run failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetworkFetch
	KindMarkupParse
	KindImageDecode
	KindBaselineMissing
	KindFileWrite
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindNetworkFetch:
		return "NETWORK_FETCH"
	case KindMarkupParse:
		return "MARKUP_PARSE"
	case KindImageDecode:
		return "IMAGE_DECODE"
	case KindBaselineMissing:
		return "BASELINE_MISSING"
	case KindFileWrite:
		return "FILE_WRITE"
	case KindConfig:
		return "CONFIG"
	default:
		return "UNKNOWN"
	}
}

// ErrEmptyPalette is returned when a color is matched against no candidates.
var ErrEmptyPalette = errors.New("flairsync: empty palette")

// Error carries a Kind, a message and the underlying cause.
type Error struct {
	Kind     Kind
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	s := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if len(e.Metadata) > 0 {
		s += fmt.Sprintf(" %v", e.Metadata)
	}
	if e.Cause != nil {
		s += fmt.Sprintf(" caused by: %v", e.Cause)
	}
	return s
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error { return e.Cause }

// WithMetadata adds a key/value pair shown in the error string.
func (e *Error) WithMetadata(key, value string) *Error {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Cause: err}
}

func Wrapf(err error, kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: err}
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}
