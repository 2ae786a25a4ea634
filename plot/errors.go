// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"errors"
	"fmt"
)

// A ValidationError reports a plot specification that violates a
// contract: a missing aesthetic, an unknown property, or a reference
// to a column that does not exist. The context fields are populated
// where they apply; Layer is -1 when no layer is involved.
type ValidationError struct {
	Aesthetic string
	Layer     int
	Property  string
	Allowed   []string
	Available []string

	format string
	a      []interface{}
}

// Validationf returns a ValidationError with a message formatted
// from format and a.
func Validationf(format string, a ...interface{}) *ValidationError {
	return &ValidationError{Layer: -1, format: format, a: a}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(e.format, e.a...)
}

// ForAesthetic sets e's aesthetic and returns e.
func (e *ValidationError) ForAesthetic(aes string) *ValidationError {
	e.Aesthetic = aes
	return e
}

// ForLayer sets e's layer index and returns e.
func (e *ValidationError) ForLayer(i int) *ValidationError {
	e.Layer = i
	return e
}

// ForProperty sets the offending property and the allowed set.
func (e *ValidationError) ForProperty(name string, allowed []string) *ValidationError {
	e.Property = name
	e.Allowed = allowed
	return e
}

// WithAvailable sets the columns that were available.
func (e *ValidationError) WithAvailable(cols []string) *ValidationError {
	e.Available = cols
	return e
}

// An InternalError reports a violated invariant, usually a
// collaborator that did not honor its contract.
type InternalError struct {
	format string
	a      []interface{}
}

// Internalf returns an InternalError.
func Internalf(format string, a ...interface{}) *InternalError {
	return &InternalError{format, a}
}

func (e *InternalError) Error() string {
	return "internal error: " + fmt.Sprintf(e.format, e.a...)
}

// A RenderError reports a construct that cannot be rendered or a
// serialization failure.
type RenderError struct {
	Err error

	format string
	a      []interface{}
}

// Renderf returns a RenderError. If the last argument is an error,
// it is also recorded as the wrapped error.
func Renderf(format string, a ...interface{}) *RenderError {
	e := &RenderError{format: format, a: a}
	if len(a) > 0 {
		if err, ok := a[len(a)-1].(error); ok {
			e.Err = err
		}
	}
	return e
}

func (e *RenderError) Error() string {
	return fmt.Sprintf(e.format, e.a...)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsInternal reports whether err is or wraps an InternalError.
func IsInternal(err error) bool {
	var v *InternalError
	return errors.As(err, &v)
}

// IsRender reports whether err is or wraps a RenderError.
func IsRender(err error) bool {
	var v *RenderError
	return errors.As(err, &v)
}
