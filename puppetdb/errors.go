// Copyright 2023 The puppetdb-go Authors

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package puppetdb

import (
	"errors"
	"fmt"
)

// Kind classifies a request failure.
type Kind int

// Values for Kind. KindStatus is retryable only at the caller's discretion;
// KindTransport covers DNS, TCP and TLS failures before a response arrived.
const (
	KindNone Kind = iota
	KindTransport
	KindStatus
	KindDecode
)

// String prints a human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	}
	return "none"
}

// Error is a request failure as surfaced by the dispatcher. Exactly one
// request is behind each Error, so there are no partial-failure semantics.
type Error struct {
	Kind       Kind
	URL        string // the full request URL, including the query string
	StatusCode int    // set for KindStatus
	Body       string // the response body, set for KindStatus
	cause      error  // set for KindTransport and KindDecode
}

var _ error = &Error{}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("GET %s: unexpected status %d: %s",
			e.URL, e.StatusCode, e.Body)
	case KindDecode:
		return fmt.Sprintf("GET %s: failed to decode JSON response: %s",
			e.URL, e.cause.Error())
	}
	return fmt.Sprintf("GET %s failed: %s", e.URL, e.cause.Error())
}

// Unwrap returns the underlying transport or decoding error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf classifies an error returned by this package, unwrapping any
// annotations. It returns KindNone for errors that did not originate in the
// dispatcher.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}
