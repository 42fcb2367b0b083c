package errs

import (
	"github.com/pkg/errors"
)

type Kind string

const (
	KindInvalidPayload Kind = "InvalidPayload"
	KindNotFound       Kind = "NotFound"
	KindUnAuthorized   Kind = "UnAuthorized"
	KindError          Kind = "Error"
)

// Message is a recoverable failure returned to the caller as is.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"message"`
}

func (m *Message) Error() string { return string(m.Kind) + ": " + m.Text }

// Is matches any Message of the same kind, so errors.Is(err, ErrNotFound)
// holds whatever the text.
func (m *Message) Is(target error) bool {
	var t *Message
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == m.Kind
}

var (
	ErrInvalidPayload = &Message{Kind: KindInvalidPayload}
	ErrNotFound       = &Message{Kind: KindNotFound}
	ErrUnAuthorized   = &Message{Kind: KindUnAuthorized}
	ErrDomain         = &Message{Kind: KindError}

	// ErrStorage marks a durable write that failed. It is never a Message.
	ErrStorage = errors.New("storage fault")
)

type storageError struct {
	cause error
}

func (e *storageError) Error() string { return ErrStorage.Error() + ": " + e.cause.Error() }

func (e *storageError) Unwrap() error { return e.cause }

func (e *storageError) Is(target error) bool { return target == ErrStorage }

// Storage wraps a failed durable write so that both errors.Is(err, ErrStorage)
// and errors.Is(err, cause) hold.
func Storage(cause error, format string, args ...interface{}) error {
	return errors.Wrapf(&storageError{cause: cause}, format, args...)
}

func InvalidPayload(text string) error { return &Message{Kind: KindInvalidPayload, Text: text} }

func NotFound(text string) error { return &Message{Kind: KindNotFound, Text: text} }

func UnAuthorized(text string) error { return &Message{Kind: KindUnAuthorized, Text: text} }

func Error(text string) error { return &Message{Kind: KindError, Text: text} }
