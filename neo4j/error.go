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
	"errors"

	"github.com/soco/neo4j-rest-driver/neo4j/db"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/errorutil"
)

// ValidationError is returned before any request is sent when arguments are malformed or
// missing, for example an index without name or a node with a malformed self-reference.
type ValidationError = errorutil.ValidationError

// TransportError is returned when no response was received from the database.
type TransportError = errorutil.TransportError

// ProtocolError is returned when a response was received but its status was not the one
// expected from the endpoint.
type ProtocolError = db.ProtocolError

// NotFoundError is returned when the referenced node or index does not exist.
type NotFoundError = errorutil.NotFoundError

// ContractViolationError is returned synchronously when a required argument such as a
// context or a callback is missing.
type ContractViolationError = errorutil.ContractViolationError

// IsValidationError is a utility method to check if the provided error was detected
// locally, before any request was sent.
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsTransportError is a utility method to check if the provided error is related with
// the connection to the database, no response was received.
func IsTransportError(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

// IsProtocolError is a utility method to check if the provided error is an unexpected
// answer from the database.
func IsProtocolError(err error) bool {
	var e *ProtocolError
	return errors.As(err, &e)
}

// IsNotFoundError is a utility method to check if the provided error tells that the
// referenced entity or index does not exist.
func IsNotFoundError(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsContractViolation is a utility method to check if the provided error is caused by a
// missing required argument.
func IsContractViolation(err error) bool {
	var e *ContractViolationError
	return errors.As(err, &e)
}

// IsConstraintViolation is a utility method to check if the database refused a statement
// because it would break a graph constraint, such as deleting a node that still has
// relationships.
func IsConstraintViolation(err error) bool {
	var e *ProtocolError
	if !errors.As(err, &e) {
		return false
	}
	return e.IsConstraintViolation()
}

func usageError(message string) error {
	return &ValidationError{Message: message}
}
