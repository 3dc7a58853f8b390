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
	"fmt"
	"math"
)

// GetProperty returns the value of the property of the given neo4j.Node or neo4j.Relationship.
// A missing property or a value of another type is a ValidationError.
//
// Numbers read from the server are float64. Asking for an int, int64 or int32
// converts them when they have no fraction and fit the type.
func GetProperty[T any](entity Entity, key string) (T, error) {
	rawValue, found := entity.GetProperties()[key]
	if !found {
		return *new(T), &ValidationError{Message: fmt.Sprintf("could not find any property named %s", key)}
	}
	if value, ok := rawValue.(T); ok {
		return value, nil
	}
	if number, ok := rawValue.(float64); ok {
		if value, ok := integral[T](number); ok {
			return value, nil
		}
	}
	zeroValue := *new(T)
	return zeroValue, &ValidationError{Message: fmt.Sprintf("expected value to have type %T but found type %T", zeroValue, rawValue)}
}

func integral[T any](number float64) (T, bool) {
	var zero T
	if number != math.Trunc(number) {
		return zero, false
	}
	var value any
	switch any(zero).(type) {
	case int:
		if number < math.MinInt || number >= math.MaxInt {
			return zero, false
		}
		value = int(number)
	case int64:
		if number < math.MinInt64 || number >= math.MaxInt64 {
			return zero, false
		}
		value = int64(number)
	case int32:
		if number < math.MinInt32 || number > math.MaxInt32 {
			return zero, false
		}
		value = int32(number)
	default:
		return zero, false
	}
	return value.(T), true
}
