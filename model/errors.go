package model

import (
	"errors"
	"fmt"

	"xdao.co/catid/catid"
	"xdao.co/catid/storage"
)

type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrInvalidDigit   ErrorCode = "INVALID_DIGIT"
	ErrLengthMismatch ErrorCode = "LENGTH_MISMATCH"
	ErrOverflow       ErrorCode = "OVERFLOW"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrIDMismatch     ErrorCode = "ID_MISMATCH"
	ErrInternal       ErrorCode = "INTERNAL"
)

// CodedError is a stable error with a machine-readable code and a human message.
type CodedError struct {
	Code    ErrorCode `json:"code"`
	RuleID  string    `json:"ruleId,omitempty"`
	Message string    `json:"message"`
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// ErrorFrom classifies err into a CodedError. nil maps to nil.
func ErrorFrom(err error) *CodedError {
	if err == nil {
		return nil
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}
	var ce *catid.Error
	if errors.As(err, &ce) {
		out := &CodedError{RuleID: ce.RuleID, Message: err.Error()}
		switch ce.Kind {
		case catid.KindInvalidDigit:
			out.Code = ErrInvalidDigit
		case catid.KindLengthMismatch:
			out.Code = ErrLengthMismatch
		case catid.KindOverflow:
			out.Code = ErrOverflow
		default:
			out.Code = ErrInvalidRequest
		}
		return out
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return NewError(ErrNotFound, err.Error())
	case errors.Is(err, storage.ErrInvalidID):
		return NewError(ErrInvalidRequest, err.Error())
	case errors.Is(err, storage.ErrIDMismatch), errors.Is(err, storage.ErrImmutable):
		return NewError(ErrIDMismatch, err.Error())
	default:
		return NewError(ErrInternal, err.Error())
	}
}
