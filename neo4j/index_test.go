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

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/soco/neo4j-rest-driver/neo4j/dbtype"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/testutil"
	. "github.com/soco/neo4j-rest-driver/neo4j/utils/test"
)

var _ = Describe("Index", func() {
	var (
		fake   *testutil.TransportFake
		driver *Driver
		ctx    context.Context
	)

	BeforeEach(func() {
		fake = &testutil.TransportFake{}
		driver = mockedDriver(fake)
		ctx = context.Background()
	})

	Context("uninitialized", func() {
		It("should fail every operation locally", func() {
			index := driver.NewIndex("", "")

			Expect(index.Initialized()).To(BeFalse())
			Expect(index.Delete(ctx)).To(BeValidationError())
			_, err := index.Query(ctx, "")
			Expect(err).To(BeValidationError())
			_, err = index.Match(ctx, "name", "ann")
			Expect(err).To(BeValidationError())
			Expect(fake.Requests()).To(BeEmpty())
		})

		It("should need a name", func() {
			Expect(driver.NewIndex("", NodeScope).Initialized()).To(BeFalse())
		})

		It("should need a known scope", func() {
			Expect(driver.NewIndex("people", "graph").Initialized()).To(BeFalse())
		})

		It("should be uninitialized as zero value", func() {
			Expect((&Index{}).Delete(ctx)).To(BeValidationError())
		})
	})

	Context("CreateNodeIndex", func() {
		It("should create an initialized exact index", func() {
			fake.Replies = []testutil.Reply{{
				Status: http.StatusCreated,
				Body:   `{"template": "http://localhost:7474/db/data/index/node/people/{key}/{value}", "provider": "lucene", "type": "exact"}`,
			}}

			index, err := driver.CreateNodeIndex(ctx, IndexSpec{Name: "people", Type: IndexExact})

			Expect(err).To(BeNil())
			Expect(index.Initialized()).To(BeTrue())
			Expect(index.Type()).To(Equal(IndexExact))
			Expect(index.Scope()).To(Equal(NodeScope))
			Expect(index.Template()).To(ContainSubstring("/index/node/people/"))
			sent := fake.Requests()
			Expect(sent).To(HaveLen(1))
			Expect(sent[0].Method).To(Equal(http.MethodPost))
			Expect(sent[0].Path).To(Equal("/index/node/"))
			Expect(sent[0].Body).To(Equal(&createIndexRequest{Name: "people", Config: dbtypeConfig("exact", DefaultIndexProvider)}))
		})

		It("should keep the given provider", func() {
			fake.Replies = []testutil.Reply{{Status: http.StatusCreated, Body: `{"provider": "custom", "type": "fulltext"}`}}

			index, err := driver.CreateNodeIndex(ctx, IndexSpec{Name: "posts", Type: IndexFulltext, Provider: "custom"})

			Expect(err).To(BeNil())
			Expect(index.Provider()).To(Equal("custom"))
			Expect(fake.Requests()[0].Body).To(Equal(&createIndexRequest{Name: "posts", Config: dbtypeConfig("fulltext", "custom")}))
		})

		It("should refuse an unknown type without sending anything", func() {
			_, err := driver.CreateNodeIndex(ctx, IndexSpec{Name: "x", Type: "bogus"})

			Expect(err).To(BeValidationError())
			Expect(fake.Requests()).To(BeEmpty())
		})

		It("should refuse a missing name without sending anything", func() {
			_, err := driver.CreateNodeIndex(ctx, IndexSpec{Type: IndexExact})

			Expect(err).To(BeValidationError())
			Expect(fake.Requests()).To(BeEmpty())
		})

		It("should report failures as protocol errors", func() {
			fake.Replies = []testutil.Reply{{Status: http.StatusBadRequest, Body: `{"message": "bad config"}`}}

			_, err := driver.CreateNodeIndex(ctx, IndexSpec{Name: "people", Type: IndexExact})

			Expect(err).To(BeProtocolError(http.StatusBadRequest))
			Expect(err).To(BeGenericError(ContainSubstring("bad config")))
		})
	})

	Context("CreateRelationshipIndex", func() {
		It("should post to the relationship registry", func() {
			fake.Replies = []testutil.Reply{{Status: http.StatusCreated, Body: `{"provider": "lucene", "type": "exact"}`}}

			index, err := driver.CreateRelationshipIndex(ctx, IndexSpec{Name: "follows", Type: IndexExact})

			Expect(err).To(BeNil())
			Expect(index.Scope()).To(Equal(RelationshipScope))
			Expect(fake.Requests()[0].Path).To(Equal("/index/relationship/"))
		})
	})

	Context("Delete", func() {
		It("should succeed once and then be not found", func() {
			fake.Replies = []testutil.Reply{
				{Status: http.StatusCreated, Body: `{"provider": "lucene", "type": "exact"}`},
				{Status: http.StatusNoContent},
			}
			index, err := driver.CreateNodeIndex(ctx, IndexSpec{Name: "people", Type: IndexExact})
			Expect(err).To(BeNil())

			Expect(index.Delete(ctx)).To(Succeed())
			Expect(index.Deleted()).To(BeTrue())
			Expect(index.Delete(ctx)).To(BeNotFoundError())
			_, err = index.Query(ctx, "")
			Expect(err).To(BeNotFoundError())
			Expect(fake.Requests()).To(HaveLen(2))
			Expect(fake.Requests()[1].Method).To(Equal(http.MethodDelete))
			Expect(fake.Requests()[1].Path).To(Equal("/index/node/people"))
		})

		It("should map bad request and not found to not found", func() {
			for _, status := range []int{http.StatusBadRequest, http.StatusNotFound} {
				fake.Replies = []testutil.Reply{{Status: status}}

				err := driver.NewIndex("people", NodeScope).Delete(ctx)

				Expect(err).To(BeNotFoundError())
			}
		})

		It("should leave other statuses unmapped", func() {
			fake.Replies = []testutil.Reply{{Status: http.StatusInternalServerError}}

			index := driver.NewIndex("people", NodeScope)
			err := index.Delete(ctx)

			Expect(err).To(BeProtocolError(http.StatusInternalServerError))
			Expect(index.Initialized()).To(BeTrue())
		})

		It("should escape the name", func() {
			fake.Replies = []testutil.Reply{{Status: http.StatusNoContent}}

			Expect(driver.NewIndex("my index", RelationshipScope).Delete(ctx)).To(Succeed())

			Expect(fake.Requests()[0].Path).To(Equal("/index/relationship/my%20index"))
		})

		It("should pass transport errors through", func() {
			fake.Replies = []testutil.Reply{{Err: &TransportError{Inner: context.Canceled}}}

			Expect(driver.NewIndex("people", NodeScope).Delete(ctx)).To(BeTransportError())
		})
	})

	Context("listing", func() {
		It("should wrap every entry as initialized, sorted by name", func() {
			fake.Replies = []testutil.Reply{{
				Status: http.StatusOK,
				Body:   `{"users": {"provider": "lucene", "type": "exact"}, "posts": {"provider": "lucene", "type": "fulltext"}}`,
			}}

			indexes, err := driver.ListNodeIndexes(ctx)

			Expect(err).To(BeNil())
			Expect(indexes).To(HaveLen(2))
			Expect(indexes[0].Name()).To(Equal("posts"))
			Expect(indexes[0].Type()).To(Equal(IndexFulltext))
			Expect(indexes[1].Name()).To(Equal("users"))
			for _, index := range indexes {
				Expect(index.Initialized()).To(BeTrue())
				Expect(index.Scope()).To(Equal(NodeScope))
			}
		})

		It("should be empty when the server has no content", func() {
			fake.Replies = []testutil.Reply{{Status: http.StatusNoContent}}

			indexes, err := driver.ListRelationshipIndexes(ctx)

			Expect(err).To(BeNil())
			Expect(indexes).To(BeEmpty())
			Expect(fake.Requests()[0].Path).To(Equal("/index/relationship/"))
		})
	})

	Context("lookups", func() {
		It("should match everything when no expression is given", func() {
			fake.Replies = []testutil.Reply{{Status: http.StatusOK, Body: toJSON([]any{testutil.NodeJSON(1, map[string]any{"name": "ann"})})}}

			entities, err := driver.NewIndex("people", NodeScope).Query(ctx, "")

			Expect(err).To(BeNil())
			Expect(entities).To(HaveLen(1))
			Expect(entities[0]).To(BeAssignableToTypeOf(&Node{}))
			Expect(fake.Requests()[0].Path).To(Equal("/index/node/people?query=%2A%3A%2A"))
		})

		It("should wrap relationships of relationship indexes", func() {
			fake.Replies = []testutil.Reply{{Status: http.StatusOK, Body: toJSON([]any{testutil.RelationshipJSON(9, 1, 2, "FOLLOWS", nil)})}}

			entities, err := driver.NewIndex("follows", RelationshipScope).Query(ctx, "since:2013")

			Expect(err).To(BeNil())
			Expect(entities[0]).To(BeAssignableToTypeOf(&Relationship{}))
			Expect(entities[0].Id()).To(BeEquivalentTo(9))
		})

		It("should match key and value exactly", func() {
			fake.Replies = []testutil.Reply{{Status: http.StatusOK, Body: "[]"}}

			entities, err := driver.NewIndex("people", NodeScope).Match(ctx, "name", "ann lee")

			Expect(err).To(BeNil())
			Expect(entities).To(BeEmpty())
			Expect(fake.Requests()[0].Path).To(Equal("/index/node/people/name/ann%20lee"))
		})

		It("should require a key", func() {
			_, err := driver.NewIndex("people", NodeScope).Match(ctx, "", "ann")

			Expect(err).To(BeValidationError())
		})

		It("should require a value without sending anything", func() {
			_, err := driver.NewIndex("people", NodeScope).Match(ctx, "name", nil)

			Expect(err).To(BeValidationError())
			Expect(fake.Requests()).To(BeEmpty())
		})

		It("should be not found for a missing index", func() {
			fake.Replies = []testutil.Reply{{Status: http.StatusNotFound}}

			_, err := driver.NewIndex("nobody", NodeScope).Query(ctx, "")

			Expect(err).To(BeNotFoundError())
		})
	})
})

func dbtypeConfig(typ, provider string) dbtype.IndexConfig {
	return dbtype.IndexConfig{Type: typ, Provider: provider}
}

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
