package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// Unexpected is reported for errors that carry no Kind.
	Unexpected Kind = iota
	// Network covers transport failures and non-success HTTP statuses.
	Network
	// NotFound means the hosting API answered but the repository has no releases.
	NotFound
	// NoAssets means the release has no Windows-relevant asset.
	NoAssets
	// AssetTooLarge means an asset exceeds the download ceiling.
	AssetTooLarge
	// Validation covers precondition failures raised by the pipeline itself.
	Validation
)

// String returns the short label used in CLI error output.
func (k Kind) String() string {
	switch k {
	case Network:
		return "network"
	case NotFound:
		return "not found"
	case NoAssets:
		return "no assets"
	case AssetTooLarge:
		return "asset too large"
	case Validation:
		return "validation"
	case Unexpected:
		return "unexpected"
	}

	return "unexpected"
}

//nolint:gochecknoglobals // Sentinels are compared with errors.Is.
var (
	// ErrNetwork matches any error of Kind Network.
	ErrNetwork = &Error{Kind: Network}
	// ErrNotFound matches any error of Kind NotFound.
	ErrNotFound = &Error{Kind: NotFound}
	// ErrNoAssets matches any error of Kind NoAssets.
	ErrNoAssets = &Error{Kind: NoAssets}
	// ErrAssetTooLarge matches any error of Kind AssetTooLarge.
	ErrAssetTooLarge = &Error{Kind: AssetTooLarge}
	// ErrValidation matches any error of Kind Validation.
	ErrValidation = &Error{Kind: Validation}
)

// Error is a categorised pipeline failure.
type Error struct {
	// Kind is the failure category.
	Kind Kind
	// Message describes what went wrong.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// New creates an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates an Error of the given kind around err.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Message == "" && e.Err == nil:
		return e.Kind.String()
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	default:
		return e.Message + ": " + e.Err.Error()
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}

	return e.Kind == other.Kind
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return Unexpected
}
