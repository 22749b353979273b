package core

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// General error codes
const (
	NOERROR    int = 0
	ESTRUCTURE int = 120 // document structure cannot be assembled
	EUNKNOWN   int = 121 // construct not understood, rendered literally
	EMISSING   int = 122 // resource does not exist
	EINVALID   int = 123 // validation failed
	EEXTERNAL  int = 124 // external tool failed
	EINTERNAL  int = 125 // internal error
)

func errorText(ecode int) string {
	switch ecode {
	case NOERROR:
		return "OK"
	case ESTRUCTURE:
		return "structural error"
	case EUNKNOWN:
		return "unknown construct"
	case EMISSING:
		return "not found"
	case EINVALID:
		return "invalid"
	case EEXTERNAL:
		return "external tool failed"
	case EINTERNAL:
		return "internal error"
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	if e.msg == "" || e.msg == errorText(e.code) {
		return e.error.Error()
	}
	return e.msg
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

var _ AppError = coreError{}

// ErrorWithCode adds an error code to err's error chain.
// Unlike pkg/errors, ErrorWithCode will wrap nil error.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, errorText(code)}
}

// WrapError wraps an error in a core error, featuring an error code and
// a user message.
// If err is nil, an error denoting the code's default text is wrapped.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	msg := fmt.Sprintf(format, v...)
	return coreError{err, code, msg}
}

// Code returns the status code associated with an error.
// If no status code is found, it returns EINTERNAL.
// If err is nil, NOERROR is returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
// If no message is found, it checks StatusCode and returns that message.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}

// IsFatal is true for errors which abort document assembly. Every error not
// classified as a warning is fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	switch Code(err) {
	case EUNKNOWN, EMISSING, EEXTERNAL:
		return false
	}
	return true
}

// --- Positioned diagnostics ------------------------------------------------

// Diagnostic is an error bound to a location in a source file.
// It prints as `file:line: message`.
type Diagnostic struct {
	File string
	Line int
	Err  error
}

// At binds err to a source location. If err already is a Diagnostic, it is
// returned unchanged, as the innermost location is the interesting one.
func At(file string, line int, err error) error {
	if err == nil {
		return nil
	}
	var d *Diagnostic
	if errors.As(err, &d) {
		return err
	}
	return &Diagnostic{File: file, Line: line, Err: err}
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Err.Error())
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// Diagnostics collects warnings. The zero value is ready to use.
type Diagnostics struct {
	list []error
}

// Add appends a warning. Nil errors are ignored.
func (ds *Diagnostics) Add(err error) {
	if err != nil {
		ds.list = append(ds.list, err)
	}
}

// Len returns the number of warnings collected.
func (ds *Diagnostics) Len() int {
	return len(ds.list)
}

// All returns the warnings in the order they were added.
func (ds *Diagnostics) All() []error {
	return ds.list
}

// Count returns the number of warnings carrying a given error code.
func (ds *Diagnostics) Count(code int) int {
	n := 0
	for _, err := range ds.list {
		if Code(err) == code {
			n++
		}
	}
	return n
}

// WriteTo prints all warnings, one per line.
func (ds *Diagnostics) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, err := range ds.list {
		b.WriteString("warning: ")
		b.WriteString(err.Error())
		b.WriteByte('\n')
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
