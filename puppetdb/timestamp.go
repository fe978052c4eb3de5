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
	"encoding/json"
	"time"

	"github.com/stockparfait/errors"
)

// Timestamp is a wrapper around time.Time with JSON methods for PuppetDB's
// ISO-8601 date/time strings, e.g. "2012-10-30T19:01:05.000Z". Nullable
// timestamp fields are modeled as *Timestamp.
type Timestamp time.Time

var _ json.Marshaler = &Timestamp{}
var _ json.Unmarshaler = &Timestamp{}

func NewTimestamp(year, month, day, hour, minute, second int) *Timestamp {
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	return (*Timestamp)(&t)
}

// String representation of Timestamp in the wire format.
func (t *Timestamp) String() string {
	return time.Time(*t).UTC().Format("2006-01-02T15:04:05.000Z")
}

// MarshalJSON implements json.Marshaler.
func (t *Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. JSON null leaves the zero value.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Annotate(err, "Timestamp JSON must be a string")
	}
	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return errors.Annotate(err, "failed to parse timestamp string: '%s'", s)
	}
	*t = Timestamp(tm)
	return nil
}
