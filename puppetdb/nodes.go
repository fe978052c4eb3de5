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

// Node is a single node known to PuppetDB. The timestamps are null for nodes
// without a stored catalog, facts or report.
type Node struct {
	Name             string     `json:"name"`
	Deactivated      *Timestamp `json:"deactivated"`
	CatalogTimestamp *Timestamp `json:"catalog_timestamp"`
	FactsTimestamp   *Timestamp `json:"facts_timestamp"`
	ReportTimestamp  *Timestamp `json:"report_timestamp"`
}

// Nodes returns all nodes matching the query; an empty query returns every
// active node.
func Nodes(ctx context.Context, query string) ([]Node, error) {
	var nodes []Node
	if err := get(ctx, "/nodes", queryValues(query), &nodes); err != nil {
		return nil, errors.Annotate(err, "failed to fetch nodes")
	}
	return nodes, nil
}

// NodeByName returns the status of a single node.
func NodeByName(ctx context.Context, name string) (*Node, error) {
	var node Node
	if err := get(ctx, "/nodes/"+name, nil, &node); err != nil {
		return nil, errors.Annotate(err, "failed to fetch node '%s'", name)
	}
	return &node, nil
}

// NodeFacts returns the facts of a single node, optionally narrowed by a
// query.
func NodeFacts(ctx context.Context, name, query string) ([]Fact, error) {
	var facts []Fact
	if err := get(ctx, "/nodes/"+name+"/facts", queryValues(query), &facts); err != nil {
		return nil, errors.Annotate(err, "failed to fetch facts of node '%s'", name)
	}
	return facts, nil
}

// NodeResources returns the catalog resources of a single node, optionally
// narrowed by a query.
func NodeResources(ctx context.Context, name, query string) ([]Resource, error) {
	var resources []Resource
	if err := get(ctx, "/nodes/"+name+"/resources", queryValues(query), &resources); err != nil {
		return nil, errors.Annotate(err, "failed to fetch resources of node '%s'", name)
	}
	return resources, nil
}
