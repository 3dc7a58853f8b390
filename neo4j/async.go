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

	"github.com/soco/neo4j-rest-driver/neo4j/internal/errorutil"
)

// Async runs op on its own goroutine and hands its outcome to callback. Missing arguments
// are reported immediately by the returned error and nothing is started, every other error
// reaches callback only.
func Async[T any](ctx context.Context, op func(context.Context) (T, error), callback func(T, error)) error {
	switch {
	case ctx == nil:
		return &errorutil.ContractViolationError{Argument: "ctx"}
	case op == nil:
		return &errorutil.ContractViolationError{Argument: "op"}
	case callback == nil:
		return &errorutil.ContractViolationError{Argument: "callback"}
	}
	go func() {
		result, err := op(ctx)
		callback(result, err)
	}()
	return nil
}
