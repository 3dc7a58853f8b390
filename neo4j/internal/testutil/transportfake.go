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

package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/soco/neo4j-rest-driver/neo4j/internal/transport"
)

// Sent is a request recorded by TransportFake.
type Sent struct {
	Method string
	Path   string
	Body   any
}

// Reply is what TransportFake answers with, Err takes precedence.
type Reply struct {
	Status int
	Body   string
	Err    error
}

// TransportFake answers requests with queued replies and records what was sent.
type TransportFake struct {
	mut     sync.Mutex
	Replies []Reply
	Sent    []Sent
}

func (f *TransportFake) Send(_ context.Context, method, path string, body any) (*transport.Response, error) {
	f.mut.Lock()
	defer f.mut.Unlock()
	f.Sent = append(f.Sent, Sent{Method: method, Path: path, Body: body})
	if len(f.Replies) == 0 {
		return nil, errors.New("no reply queued for " + method + " " + path)
	}
	reply := f.Replies[0]
	f.Replies = f.Replies[1:]
	if reply.Err != nil {
		return nil, reply.Err
	}
	res := &transport.Response{Method: method, Path: path, Status: reply.Status}
	if reply.Body != "" {
		res.Body = json.RawMessage(reply.Body)
	}
	return res, nil
}

// Requests returns a copy of everything sent so far.
func (f *TransportFake) Requests() []Sent {
	f.mut.Lock()
	defer f.mut.Unlock()
	return append([]Sent(nil), f.Sent...)
}

// CypherReply builds a successful answer of the Cypher endpoint.
func CypherReply(columns []string, rows ...[]any) Reply {
	if rows == nil {
		rows = [][]any{}
	}
	body, err := json.Marshal(map[string]any{"columns": columns, "data": rows})
	if err != nil {
		panic(err)
	}
	return Reply{Status: 200, Body: string(body)}
}

// NodeJSON is the representation of a node with the given identity.
func NodeJSON(id int64, data map[string]any) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	return map[string]any{
		"self": fmt.Sprintf("http://localhost:7474/db/data/node/%d", id),
		"data": data,
	}
}

// RelationshipJSON is the representation of a relationship with the given identity.
func RelationshipJSON(id, start, end int64, typ string, data map[string]any) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	return map[string]any{
		"self":  fmt.Sprintf("http://localhost:7474/db/data/relationship/%d", id),
		"start": fmt.Sprintf("http://localhost:7474/db/data/node/%d", start),
		"end":   fmt.Sprintf("http://localhost:7474/db/data/node/%d", end),
		"type":  typ,
		"data":  data,
	}
}
