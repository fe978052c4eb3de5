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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTLS(t *testing.T) {
	t.Parallel()

	tmpdir, tmpdirErr := os.MkdirTemp("", "test_tls")
	defer os.RemoveAll(tmpdir)

	Convey("Setup succeeded", t, func() {
		So(tmpdirErr, ShouldBeNil)
	})

	Convey("TLS policies", t, func() {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`["metric.one"]`))
		})
		ctx := context.Background()

		writePEM := func(name, blockType string, der []byte) string {
			path := filepath.Join(tmpdir, name)
			f, err := os.Create(path)
			So(err, ShouldBeNil)
			defer f.Close()
			So(pem.Encode(f, &pem.Block{Type: blockType, Bytes: der}), ShouldBeNil)
			return path
		}

		Convey("server verified through a CA bundle", func() {
			server := httptest.NewTLSServer(handler)
			defer server.Close()
			caFile := writePEM("ca.pem", "CERTIFICATE", server.Certificate().Raw)

			client, err := New(Config{BaseURL: server.URL, CAFile: caFile})
			So(err, ShouldBeNil)
			var names []string
			So(client.Get(ctx, "/metrics/mbeans", nil, &names), ShouldBeNil)
			So(names, ShouldResemble, []string{"metric.one"})
		})

		Convey("untrusted server fails as a transport error", func() {
			server := httptest.NewTLSServer(handler)
			defer server.Close()

			client, err := New(Config{BaseURL: server.URL})
			So(err, ShouldBeNil)
			err = client.Get(ctx, "/metrics/mbeans", nil, nil)
			So(KindOf(err), ShouldEqual, KindTransport)
		})

		Convey("Insecure skips server verification", func() {
			server := httptest.NewTLSServer(handler)
			defer server.Close()

			client, err := New(Config{BaseURL: server.URL, Insecure: true})
			So(err, ShouldBeNil)
			var names []string
			So(client.Get(ctx, "/metrics/mbeans", nil, &names), ShouldBeNil)
			So(names, ShouldResemble, []string{"metric.one"})
		})

		Convey("mutual TLS", func() {
			key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
			So(err, ShouldBeNil)
			template := &x509.Certificate{
				SerialNumber:          big.NewInt(1),
				Subject:               pkix.Name{CommonName: "puppetdb-go test client"},
				NotBefore:             time.Now().Add(-time.Hour),
				NotAfter:              time.Now().Add(time.Hour),
				KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
				ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
				BasicConstraintsValid: true,
				IsCA:                  true,
			}
			der, err := x509.CreateCertificate(rand.Reader, template, template,
				&key.PublicKey, key)
			So(err, ShouldBeNil)
			certFile := writePEM("client.pem", "CERTIFICATE", der)
			keyDER, err := x509.MarshalECPrivateKey(key)
			So(err, ShouldBeNil)
			keyFile := writePEM("client.key", "EC PRIVATE KEY", keyDER)

			clientCert, err := x509.ParseCertificate(der)
			So(err, ShouldBeNil)
			pool := x509.NewCertPool()
			pool.AddCert(clientCert)

			server := httptest.NewUnstartedServer(handler)
			server.TLS = &tls.Config{
				ClientAuth: tls.RequireAndVerifyClientCert,
				ClientCAs:  pool,
			}
			server.StartTLS()
			defer server.Close()
			caFile := writePEM("server-ca.pem", "CERTIFICATE", server.Certificate().Raw)

			Convey("accepted with the client certificate", func() {
				client, err := New(Config{
					BaseURL:  server.URL,
					CAFile:   caFile,
					CertFile: certFile,
					KeyFile:  keyFile,
				})
				So(err, ShouldBeNil)
				var names []string
				So(client.Get(ctx, "/metrics/mbeans", nil, &names), ShouldBeNil)
				So(names, ShouldResemble, []string{"metric.one"})
			})

			Convey("rejected without the client certificate", func() {
				client, err := New(Config{BaseURL: server.URL, CAFile: caFile})
				So(err, ShouldBeNil)
				err = client.Get(ctx, "/metrics/mbeans", nil, nil)
				So(KindOf(err), ShouldEqual, KindTransport)
			})
		})
	})
}
