/*
Copyright 2011-2024 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package bwtdark defines the top level interfaces and error kinds shared
// by the bwt, entropy and block packages of the darkbwt compressor.
package bwtdark

import "fmt"

// Kind classifies a darkbwt error.
type Kind int

const (
	// IoError signals a failure opening, reading, writing or seeking a
	// file (input, output, or low-memory BWT scratch).
	IoError Kind = iota + 1
	// OutOfMemory signals that a buffer allocation failed.
	OutOfMemory
	// CorruptInput signals a decoded block length or primary index out of
	// range, or the coder reading past EOF mid-bit.
	CorruptInput
	// InvalidArgument signals a block size <= 0 or an unknown mode.
	InvalidArgument
)

// String returns a human readable name for the error kind.
func (k Kind) String() string {
	switch k {
	case IoError:
		return "IoError"
	case OutOfMemory:
		return "OutOfMemory"
	case CorruptInput:
		return "CorruptInput"
	case InvalidArgument:
		return "InvalidArgument"
	default:
		return "Unknown"
	}
}

// Error is the error type returned across darkbwt package boundaries. The
// block codec is the recovery boundary (spec ss7): sub-components return
// Error immediately on failure and the block codec annotates/propagates it.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// WrapError creates a new Error of the given kind wrapping a cause.
func WrapError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}
