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
	"strconv"

	"github.com/soco/neo4j-rest-driver/neo4j/db"
	"github.com/soco/neo4j-rest-driver/neo4j/dbtype"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/cypher"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/errorutil"
	"github.com/soco/neo4j-rest-driver/neo4j/log"
)

// Entity is implemented by Node and Relationship.
type Entity interface {
	// Id returns the identity the server assigned, derived from the self-reference.
	Id() (int64, error)
	// GetProperties returns a copy of the property bag.
	GetProperties() map[string]any
}

// Persistent is the capability of a record stored as a node. Domain records embed a
// *Node, or hold one, to get it.
type Persistent interface {
	Id() (int64, error)
	Save(ctx context.Context) error
	Delete(ctx context.Context, force bool) error
}

var (
	_ Entity     = (*Node)(nil)
	_ Persistent = (*Node)(nil)
)

// Node is a node of the graph. Property changes are local until Save is called.
type Node struct {
	driver *Driver
	raw    dbtype.Node
}

// NewNode wraps a node received from the server, for example one decoded from
// the result of Driver.Execute. No request is sent.
func NewNode(driver *Driver, raw dbtype.Node) *Node {
	data := make(map[string]any, len(raw.Data))
	for k, v := range raw.Data {
		data[k] = v
	}
	return &Node{driver: driver, raw: dbtype.Node{Self: raw.Self, Data: data}}
}

const (
	createNodeQuery = "CREATE (node {props})\nRETURN node"
	getNodeQuery    = "MATCH (node)\nWHERE id(node) = {id}\nRETURN node"
	saveNodeQuery   = "MATCH (node)\nWHERE id(node) = {id}\nSET node = {props}\nRETURN id(node) AS id"
	deleteNodeQuery = "MATCH (node)\nWHERE id(node) = {id}\n%sDELETE node"
)

// CreateNode creates a node with the given properties, none when props is nil.
func (d *Driver) CreateNode(ctx context.Context, props map[string]any) (*Node, error) {
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	if props == nil {
		props = map[string]any{}
	}
	columns, err := d.executor.Execute(ctx, createNodeQuery, map[string]any{"props": props})
	if err != nil {
		return nil, err
	}
	nodes, err := d.nodes(columns, "node")
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		e := db.NewProtocolError(http.MethodPost, cypher.Endpoint, http.StatusOK, nil)
		e.Msg = "created node missing from result"
		return nil, e
	}
	return nodes[0], nil
}

// GetNodeById fetches the node with the given identity, a NotFoundError is returned if
// there is none.
func (d *Driver) GetNodeById(ctx context.Context, id int64) (*Node, error) {
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	columns, err := d.executor.Execute(ctx, getNodeQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	nodes, err := d.nodes(columns, "node")
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, &errorutil.NotFoundError{Entity: "node", Key: strconv.FormatInt(id, 10)}
	}
	return nodes[0], nil
}

func (d *Driver) nodes(columns db.Columns, column string) ([]*Node, error) {
	raws, err := db.Decode[dbtype.Node](columns, column)
	if err != nil {
		return nil, malformedResult(column, err)
	}
	nodes := make([]*Node, len(raws))
	for i, raw := range raws {
		nodes[i] = NewNode(d, raw)
	}
	return nodes, nil
}

func (d *Driver) relationships(columns db.Columns, column string) ([]*Relationship, error) {
	raws, err := db.Decode[dbtype.Relationship](columns, column)
	if err != nil {
		return nil, malformedResult(column, err)
	}
	rels := make([]*Relationship, len(raws))
	for i, raw := range raws {
		rels[i] = NewRelationship(d, raw)
	}
	return rels, nil
}

func malformedResult(column string, err error) error {
	e := db.NewProtocolError(http.MethodPost, cypher.Endpoint, http.StatusOK, nil)
	e.Msg = fmt.Sprintf("column %s: %s", column, err)
	return e
}

func (n *Node) Id() (int64, error) {
	id, err := n.raw.Id()
	if err != nil {
		return 0, errorutil.WrapError(err)
	}
	return id, nil
}

// Self returns the self-reference URI of the node.
func (n *Node) Self() string {
	return n.raw.Self
}

// GetProperty returns the local value of the property, false if it is not set.
func (n *Node) GetProperty(name string) (any, bool) {
	value, found := n.raw.Data[name]
	return value, found
}

func (n *Node) GetProperties() map[string]any {
	props := make(map[string]any, len(n.raw.Data))
	for k, v := range n.raw.Data {
		props[k] = v
	}
	return props
}

// SetProperty sets the local value of the property. When autoSave is true the whole
// property bag is saved immediately, see Save.
func (n *Node) SetProperty(ctx context.Context, name string, value any, autoSave bool) error {
	if name == "" {
		return &ValidationError{Message: "Property name must not be empty"}
	}
	if n.raw.Data == nil {
		n.raw.Data = map[string]any{}
	}
	n.raw.Data[name] = value
	if !autoSave {
		return nil
	}
	return n.Save(ctx)
}

// Save replaces every property of the node in the database with the local ones. Properties
// removed locally are removed from the database as well.
func (n *Node) Save(ctx context.Context) error {
	id, err := n.begin(ctx)
	if err != nil {
		return err
	}
	props := n.raw.Data
	if props == nil {
		props = map[string]any{}
	}
	columns, err := n.driver.executor.Execute(ctx, saveNodeQuery, map[string]any{"id": id, "props": props})
	if err != nil {
		return err
	}
	if columns.Len("id") == 0 {
		return &errorutil.NotFoundError{Entity: "node", Key: strconv.FormatInt(id, 10)}
	}
	return nil
}

// Delete removes the node from the database. Unless force is true the database refuses to
// delete a node that still has relationships, check the error with IsConstraintViolation.
// With force the relationships are deleted together with the node by the same statement.
func (n *Node) Delete(ctx context.Context, force bool) error {
	id, err := n.begin(ctx)
	if err != nil {
		return err
	}
	detach := ""
	if force {
		detach = "DETACH "
	}
	_, err = n.driver.executor.Execute(ctx, fmt.Sprintf(deleteNodeQuery, detach), map[string]any{"id": id})
	if err != nil {
		return err
	}
	n.driver.log.Debugf(log.Entity, n.driver.logId, "Deleted node %d", id)
	return nil
}

// begin checks the driver and returns the identity of the node.
func (n *Node) begin(ctx context.Context) (int64, error) {
	if n.driver == nil {
		return 0, &errorutil.ContractViolationError{Argument: "driver"}
	}
	if err := n.driver.begin(ctx); err != nil {
		return 0, err
	}
	return n.Id()
}
