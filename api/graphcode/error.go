// Copyright (c) 2026 The StreamGraph Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package graphcode

import "fmt"

// CodeError pairs a Code with a human-readable message. Argument-validation and
// precondition codes are reported this way; flow-control
// codes (NeedBuffer, HaveBuffer, OutOfBuffers) are returned as bare Code
// values, never wrapped in a CodeError, since they are not failures.
type CodeError struct {
	code Code
	msg  string
}

// Newf builds a *CodeError with the given code and a formatted message.
func Newf(code Code, format string, args ...interface{}) *CodeError {
	return &CodeError{code: code, msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *CodeError) Error() string {
	if e.msg == "" {
		return e.code.String()
	}
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

// Code returns the error's result code.
func (e *CodeError) Code() Code {
	return e.code
}

// CodeOf extracts the Code from err. A nil err maps to OK, and any err that
// was not constructed by this package maps to Error.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	if ge, ok := err.(*CodeError); ok {
		return ge.code
	}
	return Error
}

// InvalidArgumentsf is a convenience constructor for the most common
// argument-validation error.
func InvalidArgumentsf(format string, args ...interface{}) *CodeError {
	return Newf(InvalidArguments, format, args...)
}

// InvalidPortf reports a direction/id pair that does not name a port.
func InvalidPortf(format string, args ...interface{}) *CodeError {
	return Newf(InvalidPort, format, args...)
}

// WrongStatef reports an operation invoked out of order.
func WrongStatef(format string, args ...interface{}) *CodeError {
	return Newf(WrongState, format, args...)
}

// NotImplementedf reports an optional capability the node does not offer.
func NotImplementedf(format string, args ...interface{}) *CodeError {
	return Newf(NotImplemented, format, args...)
}
