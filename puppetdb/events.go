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
	"context"

	"github.com/stockparfait/errors"
)

// Event is a single resource event from a Puppet run. Fields marked nullable
// by the API (property, old/new value, message, file, line, containing-class)
// keep their zero value when absent, e.g. for skipped resources.
type Event struct {
	Certname          string      `json:"certname"`
	Report            string      `json:"report"`
	Status            string      `json:"status"` // success, failure, noop or skipped
	Timestamp         Timestamp   `json:"timestamp"`
	RunStartTime      Timestamp   `json:"run-start-time"`
	RunEndTime        Timestamp   `json:"run-end-time"`
	ReportReceiveTime Timestamp   `json:"report-receive-time"`
	ResourceType      string      `json:"resource-type"`
	ResourceTitle     string      `json:"resource-title"`
	Property          string      `json:"property"`
	NewValue          interface{} `json:"new-value"`
	OldValue          interface{} `json:"old-value"`
	Message           string      `json:"message"`
	File              string      `json:"file"`
	Line              int         `json:"line"`
	ContainmentPath   []string    `json:"containment-path"`
	ContainingClass   string      `json:"containing-class"`
}

// Events returns the events matching the query, sorted by the server by
// timestamp in descending order. The query is a JSON array of predicates in
// prefix form, forwarded verbatim, e.g.:
//
//   ["=", "report", "38ff2aef3ffb7800fe85b322280ade2b867c8d27"]
//
//   ["and", ["<", "timestamp", "2011-01-01T12:01:00-03:00"],
//           [">", "timestamp", "2011-01-01T12:00:00-03:00"]]
//
//   ["and", ["=", "status", "failure"],
//           ["~", "certname", "^foo\\."],
//           ["=", "resource-type", "Service"]]
//
// Inequality operators are supported only against timestamp fields. An empty
// query sends no query parameter at all.
func Events(ctx context.Context, query string) ([]Event, error) {
	var events []Event
	if err := get(ctx, "/events", queryValues(query), &events); err != nil {
		return nil, errors.Annotate(err, "failed to fetch events")
	}
	return events, nil
}
