package apperrors

import (
	"errors"
	"strings"
)

type appError struct {
	msg    string
	prefix string
	parent error   // error this one was derived from
	causes []error // attached errors, in the order they were added
}

func (e *appError) Error() string {
	if e.prefix != "" {
		return e.prefix + ": " + e.msg
	}
	return e.msg
}

// ErrorAll joins the message with every attached cause that is not part of the
// derivation chain.
func (e *appError) ErrorAll() string {
	var b strings.Builder
	b.WriteString(e.Error())
	for _, err := range e.causes {
		if err == e.parent {
			continue
		}
		b.WriteString("; ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *appError) Unwrap() error {
	return e.parent
}

func (e *appError) UnwrapAll() []error {
	return e.causes
}

func (e *appError) New(msg string) Error {
	return &appError{
		msg:    msg,
		parent: e,
	}
}

func (e *appError) Msg(msg string) Error {
	return &appError{
		msg:    msg,
		parent: e,
		causes: append([]error{e}, e.causes...),
	}
}

func (e *appError) MsgErr(msg string, errs ...error) Error {
	return &appError{
		msg:    msg,
		parent: e,
		causes: append([]error{e}, errs...),
	}
}

func (e *appError) Err(errs ...error) Error {
	return &appError{
		msg:    e.msg,
		prefix: e.prefix,
		parent: e,
		causes: append([]error{e}, errs...),
	}
}

func (e *appError) Prefix(p string) Error {
	cp := *e
	cp.prefix = p
	return &cp
}

// Is matches target against the derivation chain and every attached cause.
func (e *appError) Is(target error) bool {
	if target == nil {
		return false
	}
	if errors.Is(e.parent, target) {
		return true
	}
	for _, err := range e.causes {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// New creates a root error with the given message.
func New(msg string) Error {
	return &appError{msg: msg}
}
