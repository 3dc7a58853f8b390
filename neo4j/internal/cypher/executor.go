/*
 * Copyright (c) "Neo4j"
 * Neo4j Sweden AB [https://neo4j.com]
 *
 * This file is part of Neo4j.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      https://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */

// Package cypher runs Cypher statements through the REST Cypher endpoint.
package cypher

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/soco/neo4j-rest-driver/neo4j/db"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/transport"
	"github.com/soco/neo4j-rest-driver/neo4j/log"
)

// Endpoint is the path of the Cypher endpoint relative to the database base URL.
const Endpoint = "/cypher"

type request struct {
	Query  string         `json:"query"`
	Params map[string]any `json:"params"`
}

type Executor struct {
	transport transport.Transport
	log       log.Logger
	logId     string
}

func NewExecutor(t transport.Transport, logger log.Logger, logId string) *Executor {
	if logger == nil {
		logger = log.Void{}
	}
	return &Executor{transport: t, log: logger, logId: logId}
}

// Execute runs query with params bound to its value positions. Structural parts
// of the query (relationship types, index names, depth bounds) must already be
// part of query, built with the fragment functions of this package.
func (e *Executor) Execute(ctx context.Context, query string, params map[string]any) (db.Columns, error) {
	if params == nil {
		params = map[string]any{}
	}
	e.log.Debugf(log.Cypher, e.logId, "%s", query)
	res, err := e.transport.Send(ctx, http.MethodPost, Endpoint, &request{Query: query, Params: params})
	if err != nil {
		return nil, err
	}
	if res.Status != http.StatusOK {
		err := res.Unexpected()
		e.log.Warnf(log.Cypher, e.logId, "%s", err)
		return nil, err
	}
	var table db.Table
	if err := res.Decode(&table); err != nil {
		return nil, err
	}
	return Reshape(&table), nil
}

var null = []byte("null")

// Reshape turns the row oriented table into values per column. Every column of
// the table is present in the result. Null values are dropped from their
// column instead of being kept as a placeholder, which means the n:th value of
// one column and the n:th value of another only come from the same row when
// neither column had a null in an earlier row.
func Reshape(table *db.Table) db.Columns {
	columns := make(db.Columns, len(table.Columns))
	for _, name := range table.Columns {
		columns[name] = []json.RawMessage{}
	}
	for _, row := range table.Data {
		for i, name := range table.Columns {
			if i >= len(row) {
				break
			}
			value := bytes.TrimSpace(row[i])
			if len(value) == 0 || bytes.Equal(value, null) {
				continue
			}
			columns[name] = append(columns[name], value)
		}
	}
	return columns
}
