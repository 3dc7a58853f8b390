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

package errorutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"

	"github.com/soco/neo4j-rest-driver/neo4j/dbtype"
)

func CombineAllErrors(errs ...error) error {
	if len(errs) == 0 {
		return nil
	}
	result := errs[0]
	for _, err := range errs[1:] {
		result = CombineErrors(result, err)
	}
	return result
}

func CombineErrors(err1, err2 error) error {
	if err2 == nil {
		return err1
	}
	if err1 == nil {
		return err2
	}
	return fmt.Errorf("error %v occurred after previous error %w", err2, err1)
}

// WrapError classifies errors coming out of the standard library into the
// driver taxonomy. Errors already classified are returned as is.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &TransportError{Inner: err}
	}
	switch e := err.(type) {
	case *dbtype.ReferenceError:
		return &ValidationError{Message: e.Error()}
	case *url.Error, net.Error:
		return &TransportError{Inner: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &TransportError{Inner: err}
	}
	return err
}

// ValidationError represents malformed or missing arguments, detected before any request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TransportError represents failures where no response was received from the
// database, the connection could not be established or was lost.
type TransportError struct {
	Inner error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("TransportError: %s", e.Inner.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Inner
}

// NotFoundError is returned when the server reports that the referenced
// node, relationship or index does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

// ContractViolationError is returned when a required collaborator argument,
// such as a context, a node or a callback, is missing.
type ContractViolationError struct {
	Argument string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("required argument %s is missing", e.Argument)
}
