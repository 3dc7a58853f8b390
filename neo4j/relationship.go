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

package neo4j

import (
	"context"
	"encoding/json"

	"github.com/soco/neo4j-rest-driver/neo4j/dbtype"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/errorutil"
)

var _ Entity = (*Relationship)(nil)

// Relationship is a relationship of the graph. Its properties can only be read.
type Relationship struct {
	driver *Driver
	raw    dbtype.Relationship
}

// NewRelationship wraps a relationship received from the server, no request is sent.
func NewRelationship(driver *Driver, raw dbtype.Relationship) *Relationship {
	data := make(map[string]any, len(raw.Data))
	for k, v := range raw.Data {
		data[k] = v
	}
	raw.Data = data
	return &Relationship{driver: driver, raw: raw}
}

func (r *Relationship) Id() (int64, error) {
	id, err := r.raw.Id()
	return id, errorutil.WrapError(err)
}

// StartId returns the identity of the node the relationship starts at.
func (r *Relationship) StartId() (int64, error) {
	id, err := r.raw.StartId()
	return id, errorutil.WrapError(err)
}

// EndId returns the identity of the node the relationship ends at.
func (r *Relationship) EndId() (int64, error) {
	id, err := r.raw.EndId()
	return id, errorutil.WrapError(err)
}

func (r *Relationship) Type() string {
	return r.raw.Type
}

func (r *Relationship) GetProperty(name string) (any, bool) {
	value, found := r.raw.Data[name]
	return value, found
}

func (r *Relationship) GetProperties() map[string]any {
	props := make(map[string]any, len(r.raw.Data))
	for k, v := range r.raw.Data {
		props[k] = v
	}
	return props
}

// Data returns the properties encoded as a JSON object.
func (r *Relationship) Data() (string, error) {
	data := r.raw.Data
	if data == nil {
		data = map[string]any{}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "", &ValidationError{Message: err.Error()}
	}
	return string(b), nil
}

// Start fetches the node the relationship starts at.
func (r *Relationship) Start(ctx context.Context) (*Node, error) {
	id, err := r.StartId()
	if err != nil {
		return nil, err
	}
	return r.node(ctx, id)
}

// End fetches the node the relationship ends at.
func (r *Relationship) End(ctx context.Context) (*Node, error) {
	id, err := r.EndId()
	if err != nil {
		return nil, err
	}
	return r.node(ctx, id)
}

func (r *Relationship) node(ctx context.Context, id int64) (*Node, error) {
	if r.driver == nil {
		return nil, &errorutil.ContractViolationError{Argument: "driver"}
	}
	return r.driver.GetNodeById(ctx, id)
}
