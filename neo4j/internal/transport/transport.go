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

// Package transport sends requests to the REST interface of the database.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/soco/neo4j-rest-driver/neo4j/db"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/errorutil"
	"github.com/soco/neo4j-rest-driver/neo4j/log"
)

//go:generate mockgen -destination=../mocks/transport.go -package=mocks github.com/soco/neo4j-rest-driver/neo4j/internal/transport Transport

// Transport issues a single request against an endpoint relative to the
// database base URL. Any received response is returned whatever its status,
// interpreting the status is up to the caller.
type Transport interface {
	Send(ctx context.Context, method, path string, body any) (*Response, error)
}

// Response is a received answer. Body is nil when the server sent no content
// or content that is not JSON, NotJSON tells the two apart.
type Response struct {
	Method  string
	Path    string
	Status  int
	Body    json.RawMessage
	NotJSON bool
}

// Decode unmarshals the body into v. An empty body leaves v untouched, a body
// that is not JSON is a ProtocolError.
func (r *Response) Decode(v any) error {
	if r.NotJSON {
		return r.notJSON()
	}
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		e := db.NewProtocolError(r.Method, r.Path, r.Status, nil)
		e.Msg = errors.Wrap(err, "unexpected body").Error()
		return e
	}
	return nil
}

// Unexpected returns the error to report when Status is not one the endpoint
// is supposed to answer with, carrying whatever the server said about it.
func (r *Response) Unexpected() *db.ProtocolError {
	if r.NotJSON {
		return r.notJSON()
	}
	var doc db.ErrorDocument
	if len(r.Body) == 0 || json.Unmarshal(r.Body, &doc) != nil {
		return db.NewProtocolError(r.Method, r.Path, r.Status, nil)
	}
	return db.NewProtocolError(r.Method, r.Path, r.Status, &doc)
}

func (r *Response) notJSON() *db.ProtocolError {
	e := db.NewProtocolError(r.Method, r.Path, r.Status, nil)
	e.Msg = "response body is not JSON"
	return e
}

type Config struct {
	// Base URL every path is appended to, for example http://localhost:7474/db/data
	BaseURL    string
	Client     *http.Client
	UserAgent  string
	Log        log.Logger
	HttpLogger log.HttpLogger
	// Identity of the owner of the transport, used when logging.
	LogId string
}

// Http is the Transport talking to the database over net/http.
type Http struct {
	baseURL    string
	client     *http.Client
	userAgent  string
	log        log.Logger
	httpLogger log.HttpLogger
	logId      string
}

func New(config Config) *Http {
	client := config.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := config.Log
	if logger == nil {
		logger = log.Void{}
	}
	return &Http{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		client:     client,
		userAgent:  config.UserAgent,
		log:        logger,
		httpLogger: config.HttpLogger,
		logId:      config.LogId,
	}
}

func (t *Http) Send(ctx context.Context, method, path string, body any) (*Response, error) {
	var payload io.Reader
	var encoded []byte
	if body != nil {
		var err error
		if encoded, err = json.Marshal(body); err != nil {
			return nil, errorutil.NewValidationError("cannot encode body of %s %s: %s", method, path, err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, payload)
	if err != nil {
		return nil, errorutil.NewValidationError("invalid request %s %s: %s", method, path, err)
	}
	requestId := uuid.NewString()
	req.Header.Set("Accept", "application/json; charset=UTF-8")
	req.Header.Set("X-Request-Id", requestId)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	if t.httpLogger != nil {
		t.httpLogger.LogClientMessage(requestId, "%s %s %s", method, path, encoded)
	}
	t.log.Debugf(log.Http, t.logId, "%s %s (%s)", method, path, requestId)

	res, err := t.client.Do(req)
	if err != nil {
		err = errorutil.WrapError(err)
		t.log.Error(log.Http, t.logId, err)
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		err = &errorutil.TransportError{Inner: err}
		t.log.Error(log.Http, t.logId, err)
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if t.httpLogger != nil {
		t.httpLogger.LogServerMessage(requestId, "%d %s", res.StatusCode, raw)
	}

	response := &Response{Method: method, Path: path, Status: res.StatusCode}
	if len(raw) > 0 {
		if json.Valid(raw) {
			response.Body = raw
		} else {
			// Proxies answer errors with HTML, the status still means something
			response.NotJSON = true
			t.log.Warnf(log.Http, t.logId, "%s %s answered %d with a body that is not JSON", method, path, res.StatusCode)
		}
	}
	return response, nil
}

// Close releases idle connections held by the underlying client.
func (t *Http) Close() {
	t.client.CloseIdleConnections()
}
