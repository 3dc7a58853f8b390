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

	"github.com/soco/neo4j-rest-driver/neo4j/internal/cypher"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/errorutil"
)

const (
	createRelationshipQuery = "MATCH (from), (to)\nWHERE id(from) = {from} AND id(to) = {to}\nCREATE (from)-[relationship%s {props}]->(to)\nRETURN relationship"
	// Nodes without a matching relationship produce a null row, dropped from the result.
	traverseQuery = "MATCH (node)\nWHERE id(node) = {id}\nOPTIONAL MATCH (node)%s(%s)\nRETURN DISTINCT %s"
)

// CreateRelationshipTo creates a relationship of type typ from this node to other.
func (n *Node) CreateRelationshipTo(ctx context.Context, other *Node, typ string, props map[string]any) (*Relationship, error) {
	if other == nil {
		return nil, &errorutil.ContractViolationError{Argument: "other"}
	}
	return n.createRelationship(ctx, n, other, typ, props)
}

// CreateRelationshipFrom creates a relationship of type typ from other to this node.
func (n *Node) CreateRelationshipFrom(ctx context.Context, other *Node, typ string, props map[string]any) (*Relationship, error) {
	if other == nil {
		return nil, &errorutil.ContractViolationError{Argument: "other"}
	}
	return n.createRelationship(ctx, other, n, typ, props)
}

func (n *Node) createRelationship(ctx context.Context, from, to *Node, typ string, props map[string]any) (*Relationship, error) {
	if typ == "" {
		return nil, &ValidationError{Message: "Relationship type is required"}
	}
	types, err := cypher.RelTypes(typ)
	if err != nil {
		return nil, err
	}
	if _, err := n.begin(ctx); err != nil {
		return nil, err
	}
	fromId, err := from.Id()
	if err != nil {
		return nil, err
	}
	toId, err := to.Id()
	if err != nil {
		return nil, err
	}
	if props == nil {
		props = map[string]any{}
	}

	query := fmt.Sprintf(createRelationshipQuery, types)
	columns, err := n.driver.executor.Execute(ctx, query, map[string]any{"from": fromId, "to": toId, "props": props})
	if err != nil {
		return nil, err
	}
	rels, err := n.driver.relationships(columns, "relationship")
	if err != nil {
		return nil, err
	}
	if len(rels) == 0 {
		return nil, &errorutil.NotFoundError{Entity: "node", Key: fmt.Sprintf("%d or %d", fromId, toId)}
	}
	return rels[0], nil
}

// GetRelationships returns the relationships attached to this node in any direction,
// only those of the given types when any is given.
func (n *Node) GetRelationships(ctx context.Context, types ...string) ([]*Relationship, error) {
	return n.traverseRelationships(ctx, cypher.Both, types)
}

// GetIncomingRelationships returns the relationships ending at this node, only those of
// the given types when any is given.
func (n *Node) GetIncomingRelationships(ctx context.Context, types ...string) ([]*Relationship, error) {
	return n.traverseRelationships(ctx, cypher.Incoming, types)
}

// GetOutgoingRelationships returns the relationships starting at this node, only those of
// the given types when any is given.
func (n *Node) GetOutgoingRelationships(ctx context.Context, types ...string) ([]*Relationship, error) {
	return n.traverseRelationships(ctx, cypher.Outgoing, types)
}

// GetAdjacentNodes returns the nodes at the far end of the relationships attached to this
// node in any direction.
func (n *Node) GetAdjacentNodes(ctx context.Context, types ...string) ([]*Node, error) {
	return n.traverseNodes(ctx, cypher.Relationship{Dir: cypher.Both, Types: types})
}

// GetIncomingNodes returns the nodes at the start of the relationships ending at this node.
func (n *Node) GetIncomingNodes(ctx context.Context, types ...string) ([]*Node, error) {
	return n.traverseNodes(ctx, cypher.Relationship{Dir: cypher.Incoming, Types: types})
}

// GetOutgoingNodes returns the nodes at the end of the relationships starting at this node.
func (n *Node) GetOutgoingNodes(ctx context.Context, types ...string) ([]*Node, error) {
	return n.traverseNodes(ctx, cypher.Relationship{Dir: cypher.Outgoing, Types: types})
}

// GetReachableNodes returns the distinct nodes reachable from this node over paths of
// minDepth to maxDepth relationships of the given types, in any direction. A negative
// maxDepth leaves the path length unbounded.
func (n *Node) GetReachableNodes(ctx context.Context, minDepth, maxDepth int, types ...string) ([]*Node, error) {
	if maxDepth == 0 {
		return nil, &ValidationError{Message: "Maximum depth must not be zero"}
	}
	return n.traverseNodes(ctx, cypher.Relationship{Dir: cypher.Both, Types: types, MinDepth: minDepth, MaxDepth: maxDepth})
}

func (n *Node) traverseRelationships(ctx context.Context, dir cypher.Direction, types []string) ([]*Relationship, error) {
	pattern, err := cypher.Relationship{Variable: "relationships", Dir: dir, Types: types}.Pattern()
	if err != nil {
		return nil, err
	}
	id, err := n.begin(ctx)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(traverseQuery, pattern, "", "relationships")
	columns, err := n.driver.executor.Execute(ctx, query, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	return n.driver.relationships(columns, "relationships")
}

func (n *Node) traverseNodes(ctx context.Context, rel cypher.Relationship) ([]*Node, error) {
	pattern, err := rel.Pattern()
	if err != nil {
		return nil, err
	}
	id, err := n.begin(ctx)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(traverseQuery, pattern, "nodes", "nodes")
	columns, err := n.driver.executor.Execute(ctx, query, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	return n.driver.nodes(columns, "nodes")
}
