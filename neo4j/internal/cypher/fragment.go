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

package cypher

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/soco/neo4j-rest-driver/neo4j/internal/errorutil"
)

// Fragment is a piece of query text that is safe to splice into a statement.
// Cypher cannot bind relationship types, variables or depth bounds as
// parameters, these positions are only ever filled with fragments.
type Fragment string

var plainIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Identifier returns name as is when it is a plain identifier and quoted with
// backticks otherwise, embedded backticks doubled.
func Identifier(name string) (Fragment, error) {
	if name == "" {
		return "", errorutil.NewValidationError("identifier must not be empty")
	}
	if plainIdentifier.MatchString(name) {
		return Fragment(name), nil
	}
	return Fragment("`" + strings.ReplaceAll(name, "`", "``") + "`"), nil
}

// RelTypes returns the type filter of a relationship pattern, ":A|B" for the
// given types and an empty fragment when there are none.
func RelTypes(types ...string) (Fragment, error) {
	if len(types) == 0 {
		return "", nil
	}
	parts := make([]string, len(types))
	for i, typ := range types {
		id, err := Identifier(typ)
		if err != nil {
			return "", errorutil.NewValidationError("invalid relationship type: %s", err)
		}
		parts[i] = string(id)
	}
	return Fragment(":" + strings.Join(parts, "|")), nil
}

// Depth returns a variable length bound, "*1..3". A negative max leaves the
// upper bound open.
func Depth(min, max int) (Fragment, error) {
	if min < 0 {
		return "", errorutil.NewValidationError("minimum depth %d is negative", min)
	}
	if max < 0 {
		return Fragment("*" + strconv.Itoa(min) + ".."), nil
	}
	if max < min {
		return "", errorutil.NewValidationError("maximum depth %d is smaller than minimum depth %d", max, min)
	}
	return Fragment("*" + strconv.Itoa(min) + ".." + strconv.Itoa(max)), nil
}

type Direction int

const (
	Both Direction = iota
	Incoming
	Outgoing
)

// Relationship describes the relationship part of a match pattern.
type Relationship struct {
	Variable string
	Dir      Direction
	Types    []string
	// Depth bounds, ignored when MaxDepth is zero.
	MinDepth int
	MaxDepth int
}

// Pattern returns the relationship part of a pattern, for example
// "<-[r:FOLLOWS|LIKES]-" or "-[*1..3]->".
func (r Relationship) Pattern() (Fragment, error) {
	var b strings.Builder
	if r.Dir == Incoming {
		b.WriteString("<")
	}
	b.WriteString("-[")
	if r.Variable != "" {
		id, err := Identifier(r.Variable)
		if err != nil {
			return "", err
		}
		b.WriteString(string(id))
	}
	types, err := RelTypes(r.Types...)
	if err != nil {
		return "", err
	}
	b.WriteString(string(types))
	if r.MaxDepth != 0 {
		depth, err := Depth(r.MinDepth, r.MaxDepth)
		if err != nil {
			return "", err
		}
		b.WriteString(string(depth))
	}
	b.WriteString("]-")
	if r.Dir == Outgoing {
		b.WriteString(">")
	}
	return Fragment(b.String()), nil
}
