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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/monk-ee/puppetdb-go/puppetdb"
	"github.com/monk-ee/puppetdb-go/table"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/logging"

	toml "github.com/pelletier/go-toml/v2"
)

type Flags struct {
	ConfigDir string // default: ~/.pdbquery
	Server    string // overrides the config file
	LogLevel  logging.Level
	// Exactly one of the modes below must be present.
	MetricNames bool
	Metrics     string // comma-separated metric names
	Events      string // prefix-form query
	Nodes       bool
	FactNames   bool
	Query       string // optional query for -nodes
	CSV         bool   // dump CSV format; default: text
	Limit       int    // max. rows to print; 0 = all
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("pdbquery", flag.ExitOnError)
	fs.StringVar(&flags.ConfigDir, "config",
		filepath.Join(os.Getenv("HOME"), ".pdbquery"),
		"path to the directory with config.toml")
	fs.StringVar(&flags.Server, "server", "",
		"PuppetDB base URL including the API version, overrides the config file")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.BoolVar(&flags.MetricNames, "metric-names", false,
		"print all available metric names")
	fs.StringVar(&flags.Metrics, "metrics", "",
		"comma-separated metric names to fetch")
	fs.StringVar(&flags.Events, "events", "",
		`events query in prefix form, e.g. ["=", "status", "failure"]`)
	fs.BoolVar(&flags.Nodes, "nodes", false, "print nodes")
	fs.BoolVar(&flags.FactNames, "fact-names", false, "print all fact names")
	fs.StringVar(&flags.Query, "query", "", "optional query for -nodes")
	fs.BoolVar(&flags.CSV, "csv", false,
		"print table in CSV format; default: text")
	fs.IntVar(&flags.Limit, "limit", 0, "max. number of rows to print; 0 = all")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	modes := 0
	if flags.MetricNames {
		modes++
	}
	if flags.Metrics != "" {
		modes++
	}
	if flags.Events != "" {
		modes++
	}
	if flags.Nodes {
		modes++
	}
	if flags.FactNames {
		modes++
	}
	if modes != 1 {
		return nil, errors.Reason("expected exactly one of " +
			"-metric-names, -metrics, -events, -nodes or -fact-names")
	}
	return &flags, nil
}

type Config struct {
	Server     string `toml:"server"`      // base URL including the API version
	CA         string `toml:"ca"`          // path to a CA bundle
	Cert       string `toml:"cert"`        // client certificate for mutual TLS
	Key        string `toml:"key"`         // private key for cert
	Insecure   bool   `toml:"insecure"`    // skip server certificate verification
	TimeoutSec int    `toml:"timeout_sec"` // per-request timeout
}

const configSample = `server = "http://puppetdb.example.com:8080/v3"
# ca = "/etc/puppetlabs/puppet/ssl/certs/ca.pem"
# cert = "/etc/puppetlabs/puppet/ssl/certs/client.pem"
# key = "/etc/puppetlabs/puppet/ssl/private_keys/client.pem"
`

// parseConfig reads config.toml from the directory. A missing file is not an
// error; it yields an empty config for -server to fill in.
func parseConfig(dir string) (*Config, error) {
	filePath := filepath.Join(dir, "config.toml")
	var c Config
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &c, nil
		}
		return nil, errors.Annotate(err,
			"cannot check config file for existence: '%s'", filePath)
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Annotate(err, "failed to open config file %s", filePath)
	}
	defer f.Close()

	d := toml.NewDecoder(f)
	if err := d.Decode(&c); err != nil {
		return nil, errors.Annotate(err, "failed to read config file %s", filePath)
	}
	return &c, nil
}

type strRow []string

var _ table.Row = strRow{}

func (r strRow) CSV() []string { return r }

func metricNamesTable(ctx context.Context) (*table.Table, error) {
	names, err := puppetdb.MetricNames(ctx)
	if err != nil {
		return nil, errors.Annotate(err, "failed to fetch metric names")
	}
	sort.Strings(names)
	tbl := table.New("metric")
	for _, n := range names {
		tbl.Add(strRow{n})
	}
	return tbl, nil
}

type metricResult struct {
	name   string
	metric map[string]interface{}
}

// metricsTable fetches the named metrics concurrently and flattens their
// attributes into one row per attribute.
func metricsTable(ctx context.Context, namesArg string) (*table.Table, error) {
	var names []string
	for _, n := range strings.Split(namesArg, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	f := func(name string) *metricResult {
		m, err := puppetdb.MetricByName(ctx, name)
		if err != nil {
			logging.Warningf(ctx, "failed to fetch metric %s: %s", name, err.Error())
			return nil
		}
		return &metricResult{name: name, metric: m}
	}
	pm := iterator.ParallelMap(ctx, 2*runtime.NumCPU(), iterator.FromSlice(names), f)
	defer pm.Close()

	results := iterator.Reduce[*metricResult, []*metricResult](
		pm, []*metricResult{}, func(r *metricResult, acc []*metricResult) []*metricResult {
			if r == nil {
				return acc
			}
			return append(acc, r)
		})
	sort.Slice(results, func(i, j int) bool { return results[i].name < results[j].name })

	tbl := table.New("metric", "attribute", "value")
	for _, r := range results {
		attrs := make([]string, 0, len(r.metric))
		for a := range r.metric {
			attrs = append(attrs, a)
		}
		sort.Strings(attrs)
		for _, a := range attrs {
			tbl.Add(strRow{r.name, a, attrValue(r.metric[a])})
		}
	}
	return tbl, nil
}

// attrValue prints a metric attribute; non-scalar values are JSON-encoded.
func attrValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%v", val)
	case bool:
		return fmt.Sprintf("%v", val)
	case nil:
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func eventsTable(ctx context.Context, query string) (*table.Table, error) {
	events, err := puppetdb.Events(ctx, query)
	if err != nil {
		return nil, errors.Annotate(err, "failed to fetch events")
	}
	tbl := table.New("certname", "status", "resource-type", "resource-title",
		"timestamp", "message")
	for _, e := range events {
		tbl.Add(strRow{e.Certname, e.Status, e.ResourceType, e.ResourceTitle,
			e.Timestamp.String(), e.Message})
	}
	return tbl, nil
}

func nodesTable(ctx context.Context, query string) (*table.Table, error) {
	nodes, err := puppetdb.Nodes(ctx, query)
	if err != nil {
		return nil, errors.Annotate(err, "failed to fetch nodes")
	}
	optional := func(t *puppetdb.Timestamp) string {
		if t == nil {
			return ""
		}
		return t.String()
	}
	tbl := table.New("name", "catalog", "facts", "report", "deactivated")
	for _, n := range nodes {
		tbl.Add(strRow{n.Name, optional(n.CatalogTimestamp),
			optional(n.FactsTimestamp), optional(n.ReportTimestamp),
			optional(n.Deactivated)})
	}
	return tbl, nil
}

func factNamesTable(ctx context.Context) (*table.Table, error) {
	names, err := puppetdb.FactNames(ctx)
	if err != nil {
		return nil, errors.Annotate(err, "failed to fetch fact names")
	}
	tbl := table.New("fact")
	for _, n := range names {
		tbl.Add(strRow{n})
	}
	return tbl, nil
}

func run(ctx context.Context, flags *Flags, w io.Writer) error {
	config, err := parseConfig(flags.ConfigDir)
	if err != nil {
		return errors.Annotate(err, "failed to parse config")
	}
	if flags.Server != "" {
		config.Server = flags.Server
	}
	if config.Server == "" {
		return errors.Reason(
			"no server configured; pass -server or create %s containing:\n%s",
			filepath.Join(flags.ConfigDir, "config.toml"), configSample)
	}
	client, err := puppetdb.New(puppetdb.Config{
		BaseURL:  config.Server,
		Insecure: config.Insecure,
		CAFile:   config.CA,
		CertFile: config.Cert,
		KeyFile:  config.Key,
		Timeout:  time.Duration(config.TimeoutSec) * time.Second,
	})
	if err != nil {
		return errors.Annotate(err, "failed to create client")
	}
	ctx = puppetdb.UseClient(ctx, client)

	var tbl *table.Table
	switch {
	case flags.MetricNames:
		tbl, err = metricNamesTable(ctx)
	case flags.Metrics != "":
		tbl, err = metricsTable(ctx, flags.Metrics)
	case flags.Events != "":
		tbl, err = eventsTable(ctx, flags.Events)
	case flags.Nodes:
		tbl, err = nodesTable(ctx, flags.Query)
	case flags.FactNames:
		tbl, err = factNamesTable(ctx)
	}
	if err != nil {
		return err
	}
	opts := table.Options{Limit: flags.Limit}
	if flags.CSV {
		if err := tbl.WriteCSV(w, opts); err != nil {
			return errors.Annotate(err, "failed to print CSV")
		}
		return nil
	}
	if err := tbl.WriteText(w, opts); err != nil {
		return errors.Annotate(err, "failed to print text")
	}
	return nil
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := run(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
