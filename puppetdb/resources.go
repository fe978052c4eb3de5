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

// Resource is a single catalog resource of a node.
type Resource struct {
	Certname   string                 `json:"certname"`
	Resource   string                 `json:"resource"` // resource hash
	Type       string                 `json:"type"`
	Title      string                 `json:"title"`
	Exported   bool                   `json:"exported"`
	Tags       []string               `json:"tags"`
	File       string                 `json:"file"`
	Line       int                    `json:"line"`
	Parameters map[string]interface{} `json:"parameters"`
}

// Resources returns all catalog resources matching the query.
func Resources(ctx context.Context, query string) ([]Resource, error) {
	var resources []Resource
	if err := get(ctx, "/resources", queryValues(query), &resources); err != nil {
		return nil, errors.Annotate(err, "failed to fetch resources")
	}
	return resources, nil
}
