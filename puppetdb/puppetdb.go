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
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"os"
	"time"

	"github.com/stockparfait/errors"
)

type contextKey int

const (
	clientContextKey contextKey = iota
)

// DefaultTimeout bounds a single request when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Config holds the per-client options. The zero value of the certificate
// fields means no client certificate; nothing is shared between clients.
type Config struct {
	BaseURL  string        // required; includes the API version, no trailing slash
	Insecure bool          // skip server certificate verification
	CAFile   string        // path to a PEM bundle overriding the system roots
	CertFile string        // client certificate for mutual TLS
	KeyFile  string        // private key for CertFile
	Timeout  time.Duration // per-request limit; 0 = DefaultTimeout
}

// Client for querying a PuppetDB server. It is immutable after New and safe
// for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client with the TLS policy from the config applied to its
// underlying HTTP client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.Reason("BaseURL must not be empty")
	}
	tlsConfig := &tls.Config{InsecureSkipVerify: cfg.Insecure}
	if cfg.CAFile != "" {
		pem, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, errors.Annotate(err, "failed to read CA bundle '%s'", cfg.CAFile)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, errors.Reason("no certificates in CA bundle '%s'", cfg.CAFile)
		}
		tlsConfig.RootCAs = pool
	}
	if cfg.CertFile != "" || cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, errors.Annotate(err, "failed to load client certificate '%s'",
				cfg.CertFile)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{TLSClientConfig: tlsConfig},
		},
	}, nil
}

// GetClient extracts the Client from the context, if any.
func GetClient(ctx context.Context) *Client {
	c, ok := ctx.Value(clientContextKey).(*Client)
	if !ok {
		return nil
	}
	return c
}

// UseClient injects the client into the context for the endpoint functions.
func UseClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, clientContextKey, c)
}
