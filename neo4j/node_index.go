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
	"strconv"

	"github.com/soco/neo4j-rest-driver/neo4j/internal/errorutil"
)

type indexEntry struct {
	URI   string `json:"uri"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Index adds this node to the node index with the given name under key and value.
func (n *Node) Index(ctx context.Context, indexName, key string, value any) error {
	if indexName == "" || key == "" {
		return &ValidationError{Message: "Index name and key are required"}
	}
	if value == nil {
		return &ValidationError{Message: "Index value is required"}
	}
	if _, err := n.begin(ctx); err != nil {
		return err
	}
	path := "/index/" + string(NodeScope) + "/" + url.PathEscape(indexName)
	res, err := n.driver.transport.Send(ctx, http.MethodPost, path, &indexEntry{URI: n.raw.Self, Key: key, Value: value})
	if err != nil {
		return err
	}
	switch res.Status {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusNotFound:
		return &errorutil.NotFoundError{Entity: "index", Key: indexName}
	default:
		return res.Unexpected()
	}
}

// Unindex removes this node from the node index with the given name. With an empty key every
// entry of the node is removed, with a key but nil value those under the key, otherwise the
// single entry for key and value.
func (n *Node) Unindex(ctx context.Context, indexName, key string, value any) error {
	if indexName == "" {
		return &ValidationError{Message: "Index name is required"}
	}
	if key == "" && value != nil {
		return &ValidationError{Message: "Index value given without key"}
	}
	id, err := n.begin(ctx)
	if err != nil {
		return err
	}
	path := "/index/" + string(NodeScope) + "/" + url.PathEscape(indexName)
	if key != "" {
		path += "/" + url.PathEscape(key)
		if value != nil {
			path += "/" + pathValue(value)
		}
	}
	path += "/" + strconv.FormatInt(id, 10)

	res, err := n.driver.transport.Send(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	switch res.Status {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return &errorutil.NotFoundError{Entity: "index entry", Key: indexName}
	default:
		return res.Unexpected()
	}
}
