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

// Package puppetdb implements a client for the PuppetDB HTTP query API.
//
// Official documentation is at https://puppet.com/docs/puppetdb/ .
//
// The client is injected into a context with UseClient, and every endpoint
// function is a thin wrapper around a single HTTP GET of a literal path
// relative to the configured base URL. The base URL includes the API version
// segment, e.g. "http://puppetdb.local:8080/v3", so the same client works
// against any version whose response formats match.
//
// Collection endpoints accept an optional query string: a JSON array of
// predicates in prefix form, such as `["=", "status", "failure"]`, composable
// with "and", "or" and "not". The string is forwarded verbatim under the
// "query" parameter; this package never parses or validates it. The query
// subpackage can build such strings programmatically.
//
// Each call performs exactly one request: there is no retry, caching or
// paging. Failures are classified into transport, HTTP status and decode
// errors; see Error and KindOf.
package puppetdb
