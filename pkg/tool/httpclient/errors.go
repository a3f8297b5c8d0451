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

package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// StatusReason is an enumeration of possible failure causes.
type StatusReason string

const (
	StatusReasonUnknown            StatusReason = ""
	StatusReasonBadRequest         StatusReason = "BadRequest"
	StatusReasonUnauthorized       StatusReason = "Unauthorized"
	StatusReasonForbidden          StatusReason = "Forbidden"
	StatusReasonNotFound           StatusReason = "NotFound"
	StatusReasonConflict           StatusReason = "Conflict"
	StatusReasonAlreadyExists      StatusReason = "AlreadyExists"
	StatusReasonInvalid            StatusReason = "Invalid"
	StatusReasonTooManyRequests    StatusReason = "TooManyRequests"
	StatusReasonInternalError      StatusReason = "InternalError"
	StatusReasonServiceUnavailable StatusReason = "ServiceUnavailable"
)

type httpStatus interface {
	Status() StatusReason
}

type Error struct {
	Code      int
	ErrStatus StatusReason
	Message   string
	Detail    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d %s] %s", e.Code, e.ErrStatus, e.Detail)
}

func (e *Error) Status() StatusReason {
	return e.ErrStatus
}

var _ error = &Error{}
var _ httpStatus = &Error{}

func ReasonForError(err error) StatusReason {
	if status := httpStatus(nil); errors.As(err, &status) {
		return status.Status()
	}
	return StatusReasonUnknown
}

func NewErrorFromRestyResponse(res *resty.Response) *Error {
	return NewGenericServerResponse(res.StatusCode(), res.Request.Method, res.String())
}

// NewGenericServerResponse returns a new error for server responses.
func NewGenericServerResponse(code int, method string, detail string) *Error {
	reason := StatusReasonUnknown
	message := fmt.Sprintf("the server responded with the status code %d but did not return more information", code)
	switch code {
	case http.StatusConflict:
		if method == resty.MethodPost {
			reason = StatusReasonAlreadyExists
		} else {
			reason = StatusReasonConflict
		}
		message = "the server reported a conflict"
	case http.StatusNotFound:
		reason = StatusReasonNotFound
		message = "the server could not find the requested resource"
	case http.StatusBadRequest:
		reason = StatusReasonBadRequest
		message = "the server rejected our request for an unknown reason"
	case http.StatusUnauthorized:
		reason = StatusReasonUnauthorized
		message = "the server has asked for the client to provide credentials"
	case http.StatusForbidden:
		reason = StatusReasonForbidden
		message = detail
	case http.StatusUnprocessableEntity:
		reason = StatusReasonInvalid
		message = "the server rejected our request due to an error in our request"
	case http.StatusServiceUnavailable:
		reason = StatusReasonServiceUnavailable
		message = "the server is currently unable to handle the request"
	case http.StatusTooManyRequests:
		reason = StatusReasonTooManyRequests
		message = "the server has received too many requests and has asked us to try again later"
	default:
		if code >= 500 {
			reason = StatusReasonInternalError
			message = "an error on the server has prevented the request from succeeding"
		}
	}

	return &Error{
		Code:      code,
		ErrStatus: reason,
		Message:   message,
		Detail:    detail,
	}
}

// IsRetryable reports whether a request that failed with err may succeed later.
// Transport errors are retryable, server responses only for 429 and 5xx.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return true
	}
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}
