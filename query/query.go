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

// Package query builds prefix-form PuppetDB query strings.
//
// A query is a JSON array whose first element is the operator:
// ["=", "status", "failure"], composable with "and", "or" and "not", with
// regular expression match "~" and the inequality operators "<", "<=", ">",
// ">=" (valid only against timestamp fields, which the server enforces).
// Encode produces the string that the client forwards verbatim; nothing is
// parsed or validated locally.
package query

import (
	"bytes"
	"encoding/json"

	"github.com/stockparfait/errors"
)

// Expr is a single prefix-form expression. Expressions are immutable values;
// the constructors below compose them.
type Expr struct {
	op   string
	args []interface{}
}

func newExpr(op string, args ...interface{}) Expr {
	return Expr{op: op, args: args}
}

// Eq matches records whose field equals the value. Values may be strings,
// numbers or booleans, e.g. Eq("latest-report?", true).
func Eq(field string, value interface{}) Expr {
	return newExpr("=", field, value)
}

// Match matches records whose field matches the regular expression.
func Match(field, pattern string) Expr {
	return newExpr("~", field, pattern)
}

// Lt orders by strict inequality: field < value.
func Lt(field string, value interface{}) Expr {
	return newExpr("<", field, value)
}

// Le orders by inequality: field <= value.
func Le(field string, value interface{}) Expr {
	return newExpr("<=", field, value)
}

// Gt orders by strict inequality: field > value.
func Gt(field string, value interface{}) Expr {
	return newExpr(">", field, value)
}

// Ge orders by inequality: field >= value.
func Ge(field string, value interface{}) Expr {
	return newExpr(">=", field, value)
}

func boolExpr(op string, exprs []Expr) Expr {
	args := make([]interface{}, len(exprs))
	for i, e := range exprs {
		args[i] = e
	}
	return Expr{op: op, args: args}
}

// And matches records satisfying every subexpression.
func And(exprs ...Expr) Expr {
	return boolExpr("and", exprs)
}

// Or matches records satisfying at least one subexpression.
func Or(exprs ...Expr) Expr {
	return boolExpr("or", exprs)
}

// Not negates the expression.
func Not(e Expr) Expr {
	return newExpr("not", e)
}

var _ json.Marshaler = Expr{}

// MarshalJSON implements json.Marshaler, producing the wire-format array.
// HTML escaping is off so that the inequality operators stay literal.
func (e Expr) MarshalJSON() ([]byte, error) {
	parts := make([]interface{}, 0, len(e.args)+1)
	parts = append(parts, e.op)
	parts = append(parts, e.args...)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(parts); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Encode returns the JSON string to pass as the query parameter.
func (e Expr) Encode() (string, error) {
	b, err := e.MarshalJSON()
	if err != nil {
		return "", errors.Annotate(err, "failed to encode query")
	}
	return string(b), nil
}
