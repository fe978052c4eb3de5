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

// MetricNames returns the names of all available metrics.
func MetricNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := get(ctx, "/metrics/mbeans", nil, &names); err != nil {
		return nil, errors.Annotate(err, "failed to fetch metric names")
	}
	return names, nil
}

// MetricByName returns the current attributes of the named metric. The name
// is embedded in the path by literal concatenation; callers escape it if
// needed.
func MetricByName(ctx context.Context, name string) (map[string]interface{}, error) {
	var metric map[string]interface{}
	if err := get(ctx, "/metrics/mbean/"+name, nil, &metric); err != nil {
		return nil, errors.Annotate(err, "failed to fetch metric '%s'", name)
	}
	return metric, nil
}
