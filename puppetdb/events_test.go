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
	"net/url"
	"testing"

	"github.com/monk-ee/puppetdb-go/query"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

// eventsPage is the documented /events response for a single report.
const eventsPage = `
[
  {
    "certname": "foo.localdomain",
    "old-value": "absent",
    "property": "ensure",
    "timestamp": "2012-10-30T19:01:05.000Z",
    "resource-type": "File",
    "resource-title": "/tmp/reportingfoo",
    "new-value": "file",
    "message": "defined content as '{md5}49f68a5c8493ec2c0bf489821c21fc3b'",
    "report": "38ff2aef3ffb7800fe85b322280ade2b867c8d27",
    "status": "success",
    "file": "/home/user/path/to/manifest.pp",
    "line": 6,
    "containment-path": [ "Stage[main]", "Foo", "File[/tmp/reportingfoo]" ],
    "containing-class": "Foo",
    "run-start-time": "2012-10-30T19:00:00.000Z",
    "run-end-time": "2012-10-30T19:05:00.000Z",
    "report-receive-time": "2012-10-30T19:06:00.000Z"
  },
  {
    "certname": "foo.localdomain",
    "old-value": "absent",
    "property": "message",
    "timestamp": "2012-10-30T19:01:05.000Z",
    "resource-type": "Notify",
    "resource-title": "notify, yo",
    "new-value": "notify, yo",
    "message": "defined 'message' as 'notify, yo'",
    "report": "38ff2aef3ffb7800fe85b322280ade2b867c8d27",
    "status": "success",
    "file": "/home/user/path/to/manifest.pp",
    "line": 10,
    "containment-path": [ "Stage[main]", "", "Node[default]", "Notify[notify, yo]" ],
    "containing-class": null,
    "run-start-time": "2012-10-30T19:00:00.000Z",
    "run-end-time": "2012-10-30T19:05:00.000Z",
    "report-receive-time": "2012-10-30T19:06:00.000Z"
  }
]`

func TestEvents(t *testing.T) {
	t.Parallel()

	Convey("Events", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()

		client, err := New(Config{BaseURL: server.URL() + "/v4"})
		So(err, ShouldBeNil)
		ctx := UseClient(context.Background(), client)

		Convey("decodes the documented response", func() {
			server.ResponseBody = []string{eventsPage}
			query := `["=", "status", "failure"]`
			events, err := Events(ctx, query)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/v4/events")
			So(server.RequestQuery, ShouldResemble,
				url.Values{"query": []string{query}})

			So(len(events), ShouldEqual, 2)
			So(events[0].Status, ShouldEqual, "success")
			So(events[0], ShouldResemble, Event{
				Certname:          "foo.localdomain",
				Report:            "38ff2aef3ffb7800fe85b322280ade2b867c8d27",
				Status:            "success",
				Timestamp:         *NewTimestamp(2012, 10, 30, 19, 1, 5),
				RunStartTime:      *NewTimestamp(2012, 10, 30, 19, 0, 0),
				RunEndTime:        *NewTimestamp(2012, 10, 30, 19, 5, 0),
				ReportReceiveTime: *NewTimestamp(2012, 10, 30, 19, 6, 0),
				ResourceType:      "File",
				ResourceTitle:     "/tmp/reportingfoo",
				Property:          "ensure",
				NewValue:          "file",
				OldValue:          "absent",
				Message:           "defined content as '{md5}49f68a5c8493ec2c0bf489821c21fc3b'",
				File:              "/home/user/path/to/manifest.pp",
				Line:              6,
				ContainmentPath:   []string{"Stage[main]", "Foo", "File[/tmp/reportingfoo]"},
				ContainingClass:   "Foo",
			})

			Convey("null fields keep their zero value", func() {
				So(events[1].ContainingClass, ShouldEqual, "")
				So(events[1].ContainmentPath, ShouldResemble,
					[]string{"Stage[main]", "", "Node[default]", "Notify[notify, yo]"})
			})
		})

		Convey("accepts a builder-encoded query", func() {
			server.ResponseBody = []string{`[]`}
			q, err := query.And(
				query.Eq("status", "failure"),
				query.Match("certname", `^foo\.`)).Encode()
			So(err, ShouldBeNil)
			_, err = Events(ctx, q)
			So(err, ShouldBeNil)
			So(server.RequestQuery, ShouldResemble, url.Values{"query": []string{
				`["and",["=","status","failure"],["~","certname","^foo\\."]]`}})
		})

		Convey("empty query sends no query parameter", func() {
			server.ResponseBody = []string{`[]`}
			events, err := Events(ctx, "")
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 0)
			So(len(server.RequestQuery), ShouldEqual, 0)
		})

		Convey("requires a client in the context", func() {
			_, err := Events(context.Background(), "")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no client in context")
		})
	})
}
