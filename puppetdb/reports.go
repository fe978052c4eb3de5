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

// Report is the metadata of a single Puppet run report.
type Report struct {
	Certname             string    `json:"certname"`
	Hash                 string    `json:"hash"`
	PuppetVersion        string    `json:"puppet-version"`
	ReportFormat         int       `json:"report-format"`
	ConfigurationVersion string    `json:"configuration-version"`
	StartTime            Timestamp `json:"start-time"`
	EndTime              Timestamp `json:"end-time"`
	ReceiveTime          Timestamp `json:"receive-time"`
	TransactionUUID      string    `json:"transaction-uuid"`
}

// Reports returns the report metadata matching the query, e.g.
// ["=", "certname", "foo.localdomain"].
func Reports(ctx context.Context, query string) ([]Report, error) {
	var reports []Report
	if err := get(ctx, "/reports", queryValues(query), &reports); err != nil {
		return nil, errors.Annotate(err, "failed to fetch reports")
	}
	return reports, nil
}
