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
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/soco/neo4j-rest-driver/neo4j/dbtype"
	"github.com/soco/neo4j-rest-driver/neo4j/log"
)

// IndexSpec describes an index to create.
type IndexSpec struct {
	// Name of the index, unique within its scope. Required.
	Name string
	// Type must be IndexExact or IndexFulltext.
	Type IndexType
	// Provider of the index.
	//
	// default: DefaultIndexProvider
	Provider string
}

type createIndexRequest struct {
	Name   string             `json:"name"`
	Config dbtype.IndexConfig `json:"config"`
}

func (s *IndexSpec) validate() error {
	if s.Name == "" {
		return &ValidationError{Message: "Index name is required"}
	}
	switch s.Type {
	case IndexExact, IndexFulltext:
	case "":
		return &ValidationError{Message: "Index type is required"}
	default:
		return &ValidationError{Message: fmt.Sprintf("Invalid index type '%s', must be %s or %s", s.Type, IndexExact, IndexFulltext)}
	}
	return nil
}

// CreateNodeIndex creates an index of nodes.
func (d *Driver) CreateNodeIndex(ctx context.Context, spec IndexSpec) (*Index, error) {
	return d.createIndex(ctx, NodeScope, spec)
}

// CreateRelationshipIndex creates an index of relationships.
func (d *Driver) CreateRelationshipIndex(ctx context.Context, spec IndexSpec) (*Index, error) {
	return d.createIndex(ctx, RelationshipScope, spec)
}

func (d *Driver) createIndex(ctx context.Context, scope IndexScope, spec IndexSpec) (*Index, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	provider := spec.Provider
	if provider == "" {
		provider = DefaultIndexProvider
	}
	req := &createIndexRequest{
		Name:   spec.Name,
		Config: dbtype.IndexConfig{Type: string(spec.Type), Provider: provider},
	}
	res, err := d.transport.Send(ctx, http.MethodPost, "/index/"+string(scope)+"/", req)
	if err != nil {
		return nil, err
	}
	if res.Status != http.StatusOK && res.Status != http.StatusCreated {
		return nil, res.Unexpected()
	}
	config := req.Config
	if err := res.Decode(&config); err != nil {
		return nil, err
	}
	d.log.Infof(log.Index, d.logId, "Created %s index %s (%s)", scope, spec.Name, config.Type)
	return newIndex(d, spec.Name, scope, config), nil
}

// ListNodeIndexes returns the node indexes known by the server sorted by name.
func (d *Driver) ListNodeIndexes(ctx context.Context) ([]*Index, error) {
	return d.listIndexes(ctx, NodeScope)
}

// ListRelationshipIndexes returns the relationship indexes known by the server sorted by name.
func (d *Driver) ListRelationshipIndexes(ctx context.Context) ([]*Index, error) {
	return d.listIndexes(ctx, RelationshipScope)
}

func (d *Driver) listIndexes(ctx context.Context, scope IndexScope) ([]*Index, error) {
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	res, err := d.transport.Send(ctx, http.MethodGet, "/index/"+string(scope)+"/", nil)
	if err != nil {
		return nil, err
	}
	switch res.Status {
	case http.StatusOK:
	case http.StatusNoContent:
		// No index of this scope yet
		return []*Index{}, nil
	default:
		return nil, res.Unexpected()
	}
	registry := map[string]dbtype.IndexConfig{}
	if err := res.Decode(&registry); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	indexes := make([]*Index, len(names))
	for i, name := range names {
		indexes[i] = newIndex(d, name, scope, registry[name])
	}
	return indexes, nil
}

func pathValue(value any) string {
	return url.PathEscape(fmt.Sprint(value))
}
