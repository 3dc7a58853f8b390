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

import "encoding/json"

// Table is the result of a Cypher statement as sent by the server: the column
// names followed by rows whose values are aligned to those columns.
type Table struct {
	Columns []string            `json:"columns"`
	Data    [][]json.RawMessage `json:"data"`
}

// Columns maps a column name to the values of that column in row order.
//
// Null values are not part of a column's sequence, so values of two columns at
// the same position do not necessarily come from the same row.
type Columns map[string][]json.RawMessage

// Len returns the number of non-null values of column.
func (c Columns) Len(column string) int {
	return len(c[column])
}

// First returns the first non-null value of column, nil if there is none.
func (c Columns) First(column string) json.RawMessage {
	values := c[column]
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

// Decode unmarshals every value of column into a new element of type T.
func Decode[T any](c Columns, column string) ([]T, error) {
	values := c[column]
	out := make([]T, 0, len(values))
	for _, raw := range values {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
