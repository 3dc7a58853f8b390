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

// Package dbtype contains the representations the REST interface uses for graph entities.
package dbtype

import (
	"fmt"
	"regexp"
	"strconv"
)

// Node represents a node as returned by the REST interface and inside Cypher results.
type Node struct {
	Self string         `json:"self"` // Self-reference URI, ends with node/<id>.
	Data map[string]any `json:"data"` // Properties of this Node.
}

// Id returns the identity of the node encoded in its self-reference.
func (n *Node) Id() (int64, error) {
	return IdFromURI(n.Self)
}

// Relationship represents a relationship as returned by the REST interface and inside Cypher results.
type Relationship struct {
	Self  string         `json:"self"`  // Self-reference URI, ends with relationship/<id>.
	Start string         `json:"start"` // URI of the start node.
	End   string         `json:"end"`   // URI of the end node.
	Type  string         `json:"type"`  // Type of this Relationship.
	Data  map[string]any `json:"data"`  // Properties of this Relationship.
}

// Id returns the identity of the relationship encoded in its self-reference.
func (r *Relationship) Id() (int64, error) {
	return IdFromURI(r.Self)
}

// StartId returns the identity of the start node.
func (r *Relationship) StartId() (int64, error) {
	return IdFromURI(r.Start)
}

// EndId returns the identity of the end node.
func (r *Relationship) EndId() (int64, error) {
	return IdFromURI(r.End)
}

// IndexConfig is how the server describes an index in its registry.
type IndexConfig struct {
	Template string `json:"template,omitempty"`
	Provider string `json:"provider,omitempty"`
	Type     string `json:"type,omitempty"`
}

// ReferenceError is returned when a self-reference URI carries no entity identity.
type ReferenceError struct {
	URI string
}

func (e *ReferenceError) Error() string {
	if e.URI == "" {
		return "missing self-reference"
	}
	return fmt.Sprintf("malformed self-reference '%s'", e.URI)
}

var selfReference = regexp.MustCompile(`(?:node|relationship)/(\d+)$`)

// IdFromURI extracts the trailing integer identity of a node or relationship URI,
// for example 42 from http://localhost:7474/db/data/node/42.
func IdFromURI(uri string) (int64, error) {
	match := selfReference.FindStringSubmatch(uri)
	if match == nil {
		return 0, &ReferenceError{URI: uri}
	}
	id, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, &ReferenceError{URI: uri}
	}
	return id, nil
}
