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
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/soco/neo4j-rest-driver/neo4j/dbtype"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/errorutil"
	"github.com/soco/neo4j-rest-driver/neo4j/log"
)

// IndexScope tells whether an index holds nodes or relationships.
type IndexScope string

const (
	NodeScope         IndexScope = "node"
	RelationshipScope IndexScope = "relationship"
)

type IndexType string

const (
	// IndexExact indexes are looked up by key and value equality.
	IndexExact IndexType = "exact"
	// IndexFulltext indexes are searched with the query syntax of their provider.
	IndexFulltext IndexType = "fulltext"
)

// DefaultIndexProvider is the provider of indexes created without one.
const DefaultIndexProvider = "lucene"

// MatchAll is the search expression used by Index.Query when none is given.
const MatchAll = "*:*"

const (
	indexUninitialized int32 = iota
	indexInitialized
	indexDeleted
)

// Index is a named secondary index of nodes or relationships. An index is initialized when it
// has both a name and a scope, every operation on an index that is not fails with a
// ValidationError before anything is sent. Once deleted, operations fail with a NotFoundError
// without reaching the server.
type Index struct {
	driver *Driver
	name   string
	scope  IndexScope
	config dbtype.IndexConfig
	state  atomic.Int32
}

// NewIndex returns a handle to an existing index. No request is sent.
func (d *Driver) NewIndex(name string, scope IndexScope) *Index {
	return newIndex(d, name, scope, dbtype.IndexConfig{})
}

func newIndex(d *Driver, name string, scope IndexScope, config dbtype.IndexConfig) *Index {
	i := &Index{driver: d, name: name, scope: scope, config: config}
	if d != nil && name != "" && (scope == NodeScope || scope == RelationshipScope) {
		i.state.Store(indexInitialized)
	}
	return i
}

func (i *Index) Name() string {
	return i.name
}

func (i *Index) Scope() IndexScope {
	return i.scope
}

// Type returns the type the server reported, empty for handles made by NewIndex.
func (i *Index) Type() IndexType {
	return IndexType(i.config.Type)
}

func (i *Index) Provider() string {
	return i.config.Provider
}

// Template returns the URI template the server reported for adding entries.
func (i *Index) Template() string {
	return i.config.Template
}

func (i *Index) Initialized() bool {
	return i.state.Load() == indexInitialized
}

func (i *Index) Deleted() bool {
	return i.state.Load() == indexDeleted
}

func (i *Index) path() string {
	return "/index/" + string(i.scope) + "/" + url.PathEscape(i.name)
}

func (i *Index) begin(ctx context.Context) error {
	switch i.state.Load() {
	case indexUninitialized:
		return &ValidationError{Message: "Index incorrectly instantiated, name and scope are required"}
	case indexDeleted:
		return &errorutil.NotFoundError{Entity: "index", Key: i.name}
	}
	return i.driver.begin(ctx)
}

// Delete removes the index from the database. The entities in it are left untouched.
func (i *Index) Delete(ctx context.Context) error {
	if err := i.begin(ctx); err != nil {
		return err
	}
	res, err := i.driver.transport.Send(ctx, http.MethodDelete, i.path(), nil)
	if err != nil {
		return err
	}
	switch res.Status {
	case http.StatusNoContent:
		i.state.Store(indexDeleted)
		i.driver.log.Infof(log.Index, i.driver.logId, "Deleted %s index %s", i.scope, i.name)
		return nil
	case http.StatusBadRequest, http.StatusNotFound:
		return &errorutil.NotFoundError{Entity: "index", Key: i.name}
	default:
		return res.Unexpected()
	}
}

// Query searches the index, MatchAll when expression is empty. Entities are *Node or
// *Relationship depending on the scope of the index.
func (i *Index) Query(ctx context.Context, expression string) ([]Entity, error) {
	if expression == "" {
		expression = MatchAll
	}
	return i.lookup(ctx, i.path()+"?query="+url.QueryEscape(expression))
}

// Match returns the entities indexed with exactly this key and value.
func (i *Index) Match(ctx context.Context, key string, value any) ([]Entity, error) {
	if key == "" {
		return nil, &ValidationError{Message: "Index key must not be empty"}
	}
	if value == nil {
		return nil, &ValidationError{Message: "Index value is required"}
	}
	return i.lookup(ctx, i.path()+"/"+url.PathEscape(key)+"/"+pathValue(value))
}

func (i *Index) lookup(ctx context.Context, path string) ([]Entity, error) {
	if err := i.begin(ctx); err != nil {
		return nil, err
	}
	res, err := i.driver.transport.Send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	switch res.Status {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &errorutil.NotFoundError{Entity: "index", Key: i.name}
	default:
		return nil, res.Unexpected()
	}

	entities := []Entity{}
	if i.scope == RelationshipScope {
		var raws []dbtype.Relationship
		if err := res.Decode(&raws); err != nil {
			return nil, err
		}
		for _, raw := range raws {
			entities = append(entities, NewRelationship(i.driver, raw))
		}
		return entities, nil
	}
	var raws []dbtype.Node
	if err := res.Decode(&raws); err != nil {
		return nil, err
	}
	for _, raw := range raws {
		entities = append(entities, NewNode(i.driver, raw))
	}
	return entities, nil
}
