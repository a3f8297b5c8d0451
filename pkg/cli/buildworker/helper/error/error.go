/*
Copyright 2026 The KodeRover Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package error

import (
	"errors"
	"fmt"
)

// Kind classifies a worker failure.
type Kind string

const (
	KindUnknown Kind = ""
	// KindPrecondition: nothing was mutated, e.g. git missing or origin mismatch.
	KindPrecondition Kind = "PreconditionFailure"
	// KindSubprocess: non-zero exit or unexpected stderr output of a pipeline step.
	KindSubprocess Kind = "SubprocessFailure"
	// KindFilesystem: directory creation or removal failed.
	KindFilesystem Kind = "FilesystemFailure"
	// KindRunner: the job runner surfaced an error, reported as a task result.
	KindRunner Kind = "RunnerFailure"
	// KindProcessFatal: panic or interrupt, the process exits without reporting.
	KindProcessFatal Kind = "ProcessFatal"
)

var (
	ErrGitNotInstalled = errors.New("git is not installed")
	ErrJobIsNil        = errors.New("job is nil")
)

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Precondition(op, format string, args ...interface{}) *Error {
	return New(KindPrecondition, op, fmt.Errorf(format, args...))
}

func Filesystem(op string, err error) *Error {
	return New(KindFilesystem, op, err)
}

// SubprocessError keeps the diagnostic text of a failed child process verbatim.
type SubprocessError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *SubprocessError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	for ; err != nil; err = errors.Unwrap(err) {
		switch e := err.(type) {
		case *SubprocessError:
			return KindSubprocess
		case *Error:
			if e.Kind != KindUnknown {
				return e.Kind
			}
		}
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// ErrHandler renders an error for the feedback channel.
func ErrHandler(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
