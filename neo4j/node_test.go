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
	"net/http"
	"net/url"
	"strconv"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/soco/neo4j-rest-driver/neo4j/dbtype"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/mocks"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/testutil"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/transport"
	. "github.com/soco/neo4j-rest-driver/neo4j/utils/test"
)

func cypherResult(columns []string, rows ...[]any) *transport.Response {
	reply := testutil.CypherReply(columns, rows...)
	return &transport.Response{Method: http.MethodPost, Path: "/cypher", Status: reply.Status, Body: json.RawMessage(reply.Body)}
}

func response(status int, body string) *transport.Response {
	res := &transport.Response{Status: status}
	if body != "" {
		res.Body = json.RawMessage(body)
	}
	return res
}

func mockedDriver(t transport.Transport) *Driver {
	target, _ := url.Parse("http://localhost:7474")
	return newDriver(target, t, defaultConfig(), "1")
}

var _ = Describe("Node", func() {
	var (
		mockCtrl      *gomock.Controller
		mockTransport *mocks.MockTransport
		driver        *Driver
		ctx           context.Context
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockTransport = mocks.NewMockTransport(mockCtrl)
		driver = mockedDriver(mockTransport)
		ctx = context.Background()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	node := func(id int64, data map[string]any) *Node {
		return NewNode(driver, dbtype.Node{Self: "http://localhost:7474/db/data/node/" + strconv.FormatInt(id, 10), Data: data})
	}

	Context("Id", func() {
		It("should be the trailing integer of the self-reference", func() {
			n := NewNode(driver, dbtype.Node{Self: "http://localhost:7474/db/data/node/42"})

			id, err := n.Id()

			Expect(err).To(BeNil())
			Expect(id).To(BeEquivalentTo(42))
		})

		It("should fail with a validation error without trailing integer", func() {
			n := NewNode(driver, dbtype.Node{Self: "http://localhost:7474/db/data/node/"})

			_, err := n.Id()

			Expect(err).To(BeValidationError())
		})

		It("should not send anything when the self-reference is malformed", func() {
			n := NewNode(driver, dbtype.Node{Self: "garbage"})

			Expect(n.Save(ctx)).To(BeValidationError())
			Expect(n.Delete(ctx, true)).To(BeValidationError())
		})
	})

	Context("CreateNode", func() {
		It("should create with the given properties and read them back", func() {
			gomock.InOrder(
				mockTransport.EXPECT().
					Send(ctx, http.MethodPost, "/cypher", SentJSON(And(ContainSubstring("CREATE (node {props})"), ContainSubstring(`"props":{"p":1}`)))).
					Return(cypherResult([]string{"node"}, []any{testutil.NodeJSON(7, map[string]any{"p": 1})}), nil),
				mockTransport.EXPECT().
					Send(ctx, http.MethodPost, "/cypher", SentJSON(And(ContainSubstring("WHERE id(node) = {id}"), ContainSubstring(`"id":7`)))).
					Return(cypherResult([]string{"node"}, []any{testutil.NodeJSON(7, map[string]any{"p": 1})}), nil),
			)

			created, err := driver.CreateNode(ctx, map[string]any{"p": 1})
			Expect(err).To(BeNil())
			id, err := created.Id()
			Expect(err).To(BeNil())
			fetched, err := driver.GetNodeById(ctx, id)

			Expect(err).To(BeNil())
			Expect(fetched.GetProperties()).To(Equal(map[string]any{"p": float64(1)}))
		})

		It("should send an empty property bag when none is given", func() {
			mockTransport.EXPECT().
				Send(ctx, http.MethodPost, "/cypher", SentJSON(ContainSubstring(`"props":{}`))).
				Return(cypherResult([]string{"node"}, []any{testutil.NodeJSON(1, nil)}), nil)

			created, err := driver.CreateNode(ctx, nil)

			Expect(err).To(BeNil())
			Expect(created.GetProperties()).To(BeEmpty())
		})

		It("should fail when the created node is missing", func() {
			mockTransport.EXPECT().Send(ctx, http.MethodPost, "/cypher", gomock.Any()).
				Return(cypherResult([]string{"node"}), nil)

			_, err := driver.CreateNode(ctx, nil)

			Expect(err).To(BeProtocolError(http.StatusOK))
		})
	})

	Context("GetNodeById", func() {
		It("should be not found when no row is returned", func() {
			mockTransport.EXPECT().Send(ctx, http.MethodPost, "/cypher", gomock.Any()).
				Return(cypherResult([]string{"node"}), nil)

			_, err := driver.GetNodeById(ctx, 99)

			Expect(err).To(BeNotFoundError())
		})

		It("should pass transport errors through", func() {
			mockTransport.EXPECT().Send(ctx, http.MethodPost, "/cypher", gomock.Any()).
				Return(nil, &TransportError{Inner: context.DeadlineExceeded})

			_, err := driver.GetNodeById(ctx, 1)

			Expect(err).To(BeTransportError())
		})
	})

	Context("properties", func() {
		It("should only change local state without autoSave", func() {
			n := node(3, map[string]any{"name": "ann"})

			Expect(n.SetProperty(ctx, "age", 31, false)).To(Succeed())

			value, found := n.GetProperty("age")
			Expect(found).To(BeTrue())
			Expect(value).To(Equal(31))
		})

		It("should reject an empty property name", func() {
			n := node(3, nil)

			Expect(n.SetProperty(ctx, "", 1, true)).To(BeValidationError())
		})

		It("should save the whole bag with autoSave", func() {
			mockTransport.EXPECT().
				Send(ctx, http.MethodPost, "/cypher", SentJSON(And(ContainSubstring("SET node = {props}"), ContainSubstring(`"props":{"age":31,"name":"ann"}`)))).
				Return(cypherResult([]string{"id"}, []any{3}), nil)
			n := node(3, map[string]any{"name": "ann"})

			Expect(n.SetProperty(ctx, "age", 31, true)).To(Succeed())
		})

		It("should be not found when saving a node that is gone", func() {
			mockTransport.EXPECT().Send(ctx, http.MethodPost, "/cypher", gomock.Any()).
				Return(cypherResult([]string{"id"}), nil)

			Expect(node(3, nil).Save(ctx)).To(BeNotFoundError())
		})

		It("should hand out copies of the property bag", func() {
			n := node(3, map[string]any{"name": "ann"})

			props := n.GetProperties()
			props["name"] = "bob"

			value, _ := n.GetProperty("name")
			Expect(value).To(Equal("ann"))
		})
	})

	Context("Delete", func() {
		It("should fail with a constraint violation while relationships are attached", func() {
			mockTransport.EXPECT().
				Send(ctx, http.MethodPost, "/cypher", SentJSON(And(ContainSubstring(`DELETE node`), Not(ContainSubstring("DETACH"))))).
				Return(response(http.StatusConflict, `{"errors": [{"code": "Neo.ClientError.Schema.ConstraintValidationFailed", "message": "Cannot delete node<5>, because it still has relationships."}]}`), nil)

			err := node(5, nil).Delete(ctx, false)

			Expect(err).To(BeConstraintViolation())
			Expect(IsConstraintViolation(err)).To(BeTrue())
		})

		It("should detach and delete in a single statement when forced", func() {
			gomock.InOrder(
				mockTransport.EXPECT().
					Send(ctx, http.MethodPost, "/cypher", SentJSON(ContainSubstring("DETACH DELETE node"))).
					Return(cypherResult([]string{}), nil),
				mockTransport.EXPECT().
					Send(ctx, http.MethodPost, "/cypher", SentJSON(ContainSubstring("RETURN DISTINCT relationships"))).
					Return(cypherResult([]string{"relationships"}), nil),
				mockTransport.EXPECT().
					Send(ctx, http.MethodPost, "/cypher", SentJSON(ContainSubstring("RETURN node"))).
					Return(cypherResult([]string{"node"}), nil),
			)
			n := node(5, nil)

			Expect(n.Delete(ctx, true)).To(Succeed())
			rels, err := n.GetRelationships(ctx)
			Expect(err).To(BeNil())
			Expect(rels).To(BeEmpty())
			_, err = driver.GetNodeById(ctx, 5)
			Expect(err).To(BeNotFoundError())
		})
	})

	Context("relationships", func() {
		It("should create an outgoing relationship", func() {
			mockTransport.EXPECT().
				Send(ctx, http.MethodPost, "/cypher", SentJSON(And(
					ContainSubstring("CREATE (from)-[relationship:FOLLOWS {props}]->(to)"),
					ContainSubstring(`"from":1`),
					ContainSubstring(`"to":2`)))).
				Return(cypherResult([]string{"relationship"}, []any{testutil.RelationshipJSON(10, 1, 2, "FOLLOWS", map[string]any{"since": 2013})}), nil)

			rel, err := node(1, nil).CreateRelationshipTo(ctx, node(2, nil), "FOLLOWS", map[string]any{"since": 2013})

			Expect(err).To(BeNil())
			Expect(rel.Type()).To(Equal("FOLLOWS"))
			Expect(rel.StartId()).To(BeEquivalentTo(1))
			Expect(rel.EndId()).To(BeEquivalentTo(2))
		})

		It("should create an incoming relationship with other as start", func() {
			mockTransport.EXPECT().
				Send(ctx, http.MethodPost, "/cypher", SentJSON(And(ContainSubstring(`"from":2`), ContainSubstring(`"to":1`)))).
				Return(cypherResult([]string{"relationship"}, []any{testutil.RelationshipJSON(11, 2, 1, "FOLLOWS", nil)}), nil)

			rel, err := node(1, nil).CreateRelationshipFrom(ctx, node(2, nil), "FOLLOWS", nil)

			Expect(err).To(BeNil())
			Expect(rel.StartId()).To(BeEquivalentTo(2))
		})

		It("should quote a type that is not a plain identifier", func() {
			mockTransport.EXPECT().
				Send(ctx, http.MethodPost, "/cypher", SentJSON(ContainSubstring("[relationship:`KNOWS OF``` {props}]"))).
				Return(cypherResult([]string{"relationship"}, []any{testutil.RelationshipJSON(12, 1, 2, "KNOWS OF`", nil)}), nil)

			_, err := node(1, nil).CreateRelationshipTo(ctx, node(2, nil), "KNOWS OF`", nil)

			Expect(err).To(BeNil())
		})

		It("should be a contract violation without other node", func() {
			_, err := node(1, nil).CreateRelationshipTo(ctx, nil, "FOLLOWS", nil)

			Expect(err).To(BeContractViolation())
		})

		It("should require a type", func() {
			_, err := node(1, nil).CreateRelationshipTo(ctx, node(2, nil), "", nil)

			Expect(err).To(BeValidationError())
		})

		It("should be not found when an end node is missing", func() {
			mockTransport.EXPECT().Send(ctx, http.MethodPost, "/cypher", gomock.Any()).
				Return(cypherResult([]string{"relationship"}), nil)

			_, err := node(1, nil).CreateRelationshipTo(ctx, node(2, nil), "FOLLOWS", nil)

			Expect(err).To(BeNotFoundError())
		})
	})

	Context("traversal", func() {
		itTraverses := func(name string, run func(n *Node) (int, error), pattern string) {
			It(name, func() {
				mockTransport.EXPECT().
					Send(ctx, http.MethodPost, "/cypher", SentJSON(ContainSubstring(pattern))).
					Return(cypherResult([]string{"relationships", "nodes"},
						[]any{testutil.RelationshipJSON(10, 1, 2, "A", nil), testutil.NodeJSON(2, nil)},
						[]any{nil, nil}), nil)

				count, err := run(node(1, nil))

				Expect(err).To(BeNil())
				Expect(count).To(Equal(1))
			})
		}

		itTraverses("should return all relationships", func(n *Node) (int, error) {
			rels, err := n.GetRelationships(ctx)
			return len(rels), err
		}, "OPTIONAL MATCH (node)-[relationships]-()")
		itTraverses("should return incoming relationships of several types", func(n *Node) (int, error) {
			rels, err := n.GetIncomingRelationships(ctx, "A", "B")
			return len(rels), err
		}, "OPTIONAL MATCH (node)<-[relationships:A|B]-()")
		itTraverses("should return outgoing relationships", func(n *Node) (int, error) {
			rels, err := n.GetOutgoingRelationships(ctx, "A")
			return len(rels), err
		}, "OPTIONAL MATCH (node)-[relationships:A]->()")
		itTraverses("should return adjacent nodes", func(n *Node) (int, error) {
			nodes, err := n.GetAdjacentNodes(ctx)
			return len(nodes), err
		}, "OPTIONAL MATCH (node)-[]-(nodes)")
		itTraverses("should return incoming nodes", func(n *Node) (int, error) {
			nodes, err := n.GetIncomingNodes(ctx, "A")
			return len(nodes), err
		}, "OPTIONAL MATCH (node)<-[:A]-(nodes)")
		itTraverses("should return outgoing nodes", func(n *Node) (int, error) {
			nodes, err := n.GetOutgoingNodes(ctx, "A")
			return len(nodes), err
		}, "OPTIONAL MATCH (node)-[:A]->(nodes)")
		itTraverses("should return reachable nodes", func(n *Node) (int, error) {
			nodes, err := n.GetReachableNodes(ctx, 1, 3, "A")
			return len(nodes), err
		}, "OPTIONAL MATCH (node)-[:A*1..3]-(nodes)")

		It("should reject a zero maximum depth", func() {
			_, err := node(1, nil).GetReachableNodes(ctx, 0, 0)

			Expect(err).To(BeValidationError())
		})

		It("should reject an empty type among several", func() {
			_, err := node(1, nil).GetOutgoingNodes(ctx, "A", "")

			Expect(err).To(BeValidationError())
		})
	})

	Context("Index", func() {
		It("should post the node uri, key and value", func() {
			mockTransport.EXPECT().
				Send(ctx, http.MethodPost, "/index/node/people", SentJSON(And(
					ContainSubstring(`"uri":"http://localhost:7474/db/data/node/4"`),
					ContainSubstring(`"key":"name"`),
					ContainSubstring(`"value":"ann"`)))).
				Return(response(http.StatusCreated, `{"self": "http://localhost:7474/db/data/index/node/people/name/ann/4"}`), nil)

			Expect(node(4, nil).Index(ctx, "people", "name", "ann")).To(Succeed())
		})

		It("should be not found for a missing index", func() {
			mockTransport.EXPECT().Send(ctx, http.MethodPost, "/index/node/nobody", gomock.Any()).
				Return(response(http.StatusNotFound, ""), nil)

			Expect(node(4, nil).Index(ctx, "nobody", "name", "ann")).To(BeNotFoundError())
		})

		It("should require index name and key", func() {
			Expect(node(4, nil).Index(ctx, "", "name", "ann")).To(BeValidationError())
			Expect(node(4, nil).Index(ctx, "people", "", "ann")).To(BeValidationError())
		})
	})

	Context("Unindex", func() {
		itUnindexes := func(name, key string, value any, path string) {
			It(name, func() {
				mockTransport.EXPECT().Send(ctx, http.MethodDelete, path, nil).
					Return(response(http.StatusNoContent, ""), nil)

				Expect(node(4, nil).Unindex(ctx, "people", key, value)).To(Succeed())
			})
		}

		itUnindexes("should remove every entry of the node", "", nil, "/index/node/people/4")
		itUnindexes("should remove entries under a key", "name", nil, "/index/node/people/name/4")
		itUnindexes("should remove a single entry", "name", "ann lee", "/index/node/people/name/ann%20lee/4")

		It("should refuse a value without key", func() {
			Expect(node(4, nil).Unindex(ctx, "people", "", "ann")).To(BeValidationError())
		})

		It("should be not found when nothing is indexed", func() {
			mockTransport.EXPECT().Send(ctx, http.MethodDelete, "/index/node/people/4", nil).
				Return(response(http.StatusNotFound, ""), nil)

			Expect(node(4, nil).Unindex(ctx, "people", "", nil)).To(BeNotFoundError())
		})

		It("should report unexpected statuses", func() {
			mockTransport.EXPECT().Send(ctx, http.MethodDelete, "/index/node/people/4", nil).
				Return(response(http.StatusInternalServerError, `{"message": "boom", "exception": "RuntimeException"}`), nil)

			Expect(node(4, nil).Unindex(ctx, "people", "", nil)).To(BeProtocolError(http.StatusInternalServerError))
		})
	})
})
