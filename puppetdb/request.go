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
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
)

// Get issues a single GET request for the path relative to the client's base
// URL and decodes the JSON response into result. The path is appended to the
// base URL literally; callers embed any path parameters themselves. The query
// values are attached as the URL query string without modification. A nil
// result skips decoding.
//
// All failures are *Error values: KindTransport for network-level errors,
// KindStatus for a non-2xx response (carrying the status code and body), and
// KindDecode for malformed JSON.
func (c *Client) Get(ctx context.Context, path string, query url.Values, result interface{}) error {
	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return errors.Annotate(err, "failed to create request for '%s'", uri)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, URL: uri, cause: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, URL: uri, cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Kind: KindStatus, URL: uri,
			StatusCode: resp.StatusCode, Body: string(body)}
	}
	logging.Debugf(ctx, "GET %s: %s, %d bytes", uri, resp.Status, len(body))
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &Error{Kind: KindDecode, URL: uri, cause: err}
	}
	return nil
}

// get dispatches the request using the Client from the context.
func get(ctx context.Context, path string, query url.Values, result interface{}) error {
	c := GetClient(ctx)
	if c == nil {
		return errors.Reason("no client in context")
	}
	return c.Get(ctx, path, query, result)
}

// queryValues wraps a non-empty prefix-form query string into URL values
// under the "query" parameter, verbatim.
func queryValues(query string) url.Values {
	v := make(url.Values)
	if query != "" {
		v["query"] = []string{query}
	}
	return v
}
