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

package test

import (
	"errors"
	"fmt"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
	"github.com/soco/neo4j-rest-driver/neo4j/db"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/errorutil"
)

func BeValidationError() types.GomegaMatcher {
	return &errorKindMatcher{kind: "ValidationError", is: func(err error) bool {
		var e *errorutil.ValidationError
		return errors.As(err, &e)
	}}
}

func BeTransportError() types.GomegaMatcher {
	return &errorKindMatcher{kind: "TransportError", is: func(err error) bool {
		var e *errorutil.TransportError
		return errors.As(err, &e)
	}}
}

func BeNotFoundError() types.GomegaMatcher {
	return &errorKindMatcher{kind: "NotFoundError", is: func(err error) bool {
		var e *errorutil.NotFoundError
		return errors.As(err, &e)
	}}
}

func BeContractViolation() types.GomegaMatcher {
	return &errorKindMatcher{kind: "ContractViolationError", is: func(err error) bool {
		var e *errorutil.ContractViolationError
		return errors.As(err, &e)
	}}
}

// BeProtocolError matches a ProtocolError carrying the given status.
func BeProtocolError(status int) types.GomegaMatcher {
	return &protocolErrorMatcher{statusMatcher: gomega.Equal(status)}
}

func BeConstraintViolation() types.GomegaMatcher {
	return &errorKindMatcher{kind: "constraint violation", is: func(err error) bool {
		var e *db.ProtocolError
		return errors.As(err, &e) && e.IsConstraintViolation()
	}}
}

func BeGenericError(messageMatcher types.GomegaMatcher) types.GomegaMatcher {
	return &genericErrorMatcher{
		messageMatcher: messageMatcher,
	}
}

type errorKindMatcher struct {
	kind string
	is   func(error) bool
}

type protocolErrorMatcher struct {
	statusMatcher types.GomegaMatcher
}

type genericErrorMatcher struct {
	messageMatcher types.GomegaMatcher
}

func (matcher *errorKindMatcher) Match(actual any) (success bool, err error) {
	actualErr, ok := actual.(error)
	if !ok {
		return false, nil
	}
	return matcher.is(actualErr), nil
}

func (matcher *errorKindMatcher) FailureMessage(actual any) (message string) {
	return fmt.Sprintf("Expected\n\t%#v\nto be a %s", actual, matcher.kind)
}

func (matcher *errorKindMatcher) NegatedFailureMessage(actual any) (message string) {
	return fmt.Sprintf("Expected\n\t%#v\nnot to be a %s", actual, matcher.kind)
}

func (matcher *protocolErrorMatcher) Match(actual any) (success bool, err error) {
	actualErr, ok := actual.(error)
	if !ok {
		return false, nil
	}
	var protocolErr *db.ProtocolError
	if !errors.As(actualErr, &protocolErr) {
		return false, nil
	}
	return matcher.statusMatcher.Match(protocolErr.Status)
}

func (matcher *protocolErrorMatcher) FailureMessage(actual any) (message string) {
	actualErr, ok := actual.(error)
	var protocolErr *db.ProtocolError
	if !ok || !errors.As(actualErr, &protocolErr) {
		return fmt.Sprintf("Expected\n\t%#v\nto be a ProtocolError", actual)
	}
	return fmt.Sprintf("Expected\n\t%#v\nto have its status to match %s", actual, matcher.statusMatcher.FailureMessage(protocolErr.Status))
}

func (matcher *protocolErrorMatcher) NegatedFailureMessage(actual any) (message string) {
	return fmt.Sprintf("Expected\n\t%#v\nnot to be a ProtocolError with matching status", actual)
}

func (matcher *genericErrorMatcher) Match(actual any) (success bool, err error) {
	actualErr, ok := actual.(error)
	if !ok {
		return false, nil
	}
	return matcher.messageMatcher.Match(actualErr.Error())
}

func (matcher *genericErrorMatcher) FailureMessage(actual any) (message string) {
	actualErr, ok := actual.(error)
	if !ok {
		return fmt.Sprintf("Expected\n\t%#v\nto be an error", actual)
	}
	return fmt.Sprintf("Expected\n\t%#v\nto have its message to match %s", actual, matcher.messageMatcher.FailureMessage(actualErr.Error()))
}

func (matcher *genericErrorMatcher) NegatedFailureMessage(actual any) (message string) {
	actualErr, ok := actual.(error)
	if !ok {
		return fmt.Sprintf("Expected\n\t%#v\nnot to be an error", actual)
	}
	return fmt.Sprintf("Expected\n\t%#v\nnot to have its message to match %s", actual, matcher.messageMatcher.FailureMessage(actualErr.Error()))
}
