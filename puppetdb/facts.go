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

// Fact is a single fact of a single node.
type Fact struct {
	Certname string `json:"certname"`
	Name     string `json:"name"`
	Value    string `json:"value"`
}

// FactNames returns the names of all known facts, sorted by the server.
func FactNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := get(ctx, "/fact-names", nil, &names); err != nil {
		return nil, errors.Annotate(err, "failed to fetch fact names")
	}
	return names, nil
}

// Facts returns all facts matching the query across nodes.
func Facts(ctx context.Context, query string) ([]Fact, error) {
	var facts []Fact
	if err := get(ctx, "/facts", queryValues(query), &facts); err != nil {
		return nil, errors.Annotate(err, "failed to fetch facts")
	}
	return facts, nil
}

// FactsByName returns the values of the named fact on all nodes matching the
// query.
func FactsByName(ctx context.Context, name, query string) ([]Fact, error) {
	var facts []Fact
	if err := get(ctx, "/facts/"+name, queryValues(query), &facts); err != nil {
		return nil, errors.Annotate(err, "failed to fetch fact '%s'", name)
	}
	return facts, nil
}
