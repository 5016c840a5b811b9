// Package apperror tags failures with the kind the sale controller reports them as.
package apperror

import "errors"

type Kind uint8

const (
	KindUnknown Kind = iota
	KindItemNotFound
	KindSystemUnavailable
	KindOperationFailed
	KindIllegalState
	KindInvalidInput
)

func (k Kind) String() string {
	names := [...]string{"unknown", "item_not_found", "system_unavailable", "operation_failed", "illegal_state", "invalid_input"}
	if int(k) >= len(names) {
		return "unknown"
	}
	return names[k]
}

// AppError is an error tagged with a Kind. Two AppErrors match under errors.Is
// when their kinds are equal, so the sentinels below match any error of their kind.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

var (
	ErrItemNotFound      = &AppError{Kind: KindItemNotFound, Message: "item not found"}
	ErrSystemUnavailable = &AppError{Kind: KindSystemUnavailable, Message: "system unavailable"}
	ErrOperationFailed   = &AppError{Kind: KindOperationFailed, Message: "operation failed"}
	ErrIllegalState      = &AppError{Kind: KindIllegalState, Message: "illegal state"}
	ErrInvalidInput      = &AppError{Kind: KindInvalidInput, Message: "invalid input"}
)

func NewItemNotFoundError(identifier string) *AppError {
	return &AppError{
		Kind:    KindItemNotFound,
		Message: "item with identifier " + identifier + " not found",
	}
}

// NewSystemUnavailableError names the unreachable system, e.g. "inventory".
func NewSystemUnavailableError(system string, cause error) *AppError {
	return &AppError{
		Kind:    KindSystemUnavailable,
		Message: system + " system is unavailable",
		Cause:   cause,
	}
}

func NewOperationFailedError(message string, cause error) *AppError {
	return &AppError{
		Kind:    KindOperationFailed,
		Message: message,
		Cause:   cause,
	}
}

func NewIllegalStateError(message string, cause error) *AppError {
	return &AppError{
		Kind:    KindIllegalState,
		Message: message,
		Cause:   cause,
	}
}

func NewInvalidInputError(message string, cause error) *AppError {
	return &AppError{
		Kind:    KindInvalidInput,
		Message: message,
		Cause:   cause,
	}
}

// KindOf returns the kind of the outermost AppError in err's chain.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
