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

package db

import (
	"fmt"
	"strings"
)

// ErrorDocument is the body the REST interface sends along with a failed request.
// Older servers only fill Message and Exception, newer ones also list coded errors.
type ErrorDocument struct {
	Message   string       `json:"message"`
	Exception string       `json:"exception"`
	Fullname  string       `json:"fullname"`
	Errors    []ErrorEntry `json:"errors"`
}

// ErrorEntry is a single coded error, Code is on the form Neo.ClientError.Schema.ConstraintValidationFailed.
type ErrorEntry struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProtocolError is created when a response was received but its status is not
// the one the endpoint is expected to answer with, or its body could not be read.
type ProtocolError struct {
	Status    int
	Method    string
	Path      string
	Code      string
	Msg       string
	Exception string

	parsed         bool
	classification string
	category       string
	title          string
}

// NewProtocolError builds a ProtocolError from a received status and whatever the
// server told about the failure. doc may be nil.
func NewProtocolError(method, path string, status int, doc *ErrorDocument) *ProtocolError {
	e := &ProtocolError{Status: status, Method: method, Path: path}
	if doc == nil {
		return e
	}
	e.Msg = doc.Message
	e.Exception = doc.Exception
	if len(doc.Errors) > 0 {
		e.Code = doc.Errors[0].Code
		if e.Msg == "" {
			e.Msg = doc.Errors[0].Message
		}
	}
	return e
}

func (e *ProtocolError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ProtocolError: %s %s answered with status %d", e.Method, e.Path, e.Status)
	switch {
	case e.Code != "":
		fmt.Fprintf(&b, ": %s (%s)", e.Code, e.Msg)
	case e.Exception != "":
		fmt.Fprintf(&b, ": %s (%s)", e.Exception, e.Msg)
	case e.Msg != "":
		fmt.Fprintf(&b, ": %s", e.Msg)
	}
	return b.String()
}

func (e *ProtocolError) Classification() string {
	e.parse()
	return e.classification
}

func (e *ProtocolError) Category() string {
	e.parse()
	return e.category
}

func (e *ProtocolError) Title() string {
	e.parse()
	return e.title
}

// parse code from Neo4j into usable parts.
// Code Neo.ClientError.Schema.ConstraintValidationFailed is split into:
//
//	Classification: ClientError
//	Category: Schema
//	Title: ConstraintValidationFailed
func (e *ProtocolError) parse() {
	if e.parsed {
		return
	}
	e.parsed = true
	parts := strings.Split(e.Code, ".")
	if len(parts) != 4 {
		return
	}
	e.classification = parts[1]
	e.category = parts[2]
	e.title = parts[3]
}

// IsConstraintViolation reports whether the server refused the statement because
// it would have broken a graph constraint, for example deleting a node that still
// has relationships.
func (e *ProtocolError) IsConstraintViolation() bool {
	e.parse()
	if e.category == "Schema" && strings.HasPrefix(e.title, "Constraint") {
		return true
	}
	switch e.Exception {
	case "ConstraintViolationException", "NodeStillHasRelationshipsException":
		return true
	}
	return false
}
