// Package apperr carries the coded errors services hand to controllers.
package apperr

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrInvalid      ErrCode = "INVALID"
	ErrConflict     ErrCode = "CONFLICT"
	ErrInvalidCreds ErrCode = "INVALID_CREDENTIALS"
	ErrNotAvailable ErrCode = "NOT_AVAILABLE"
)

type codedError struct {
	code ErrCode
	msg  string
	err  error
}

func (e *codedError) Error() string {
	switch {
	case e.msg != "" && e.err != nil:
		return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.err)
	case e.msg != "":
		return fmt.Sprintf("%s: %s", e.code, e.msg)
	case e.err != nil:
		return fmt.Sprintf("%s: %v", e.code, e.err)
	}
	return string(e.code)
}

func (e *codedError) Code() ErrCode   { return e.code }
func (e *codedError) Message() string { return e.msg }
func (e *codedError) Unwrap() error   { return e.err }

// New returns an error with code c and a client-safe message.
func New(c ErrCode, msg string) error { return &codedError{code: c, msg: msg} }

// Wrap attaches code c to err.
func Wrap(c ErrCode, msg string, err error) error {
	return &codedError{code: c, msg: msg, err: err}
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Message returns the client-safe message of a coded error, or "".
func Message(err error) string {
	var ce interface{ Message() string }
	if errors.As(err, &ce) {
		return ce.Message()
	}
	return ""
}
