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

// Package testutil contains shared test functionality
package testutil

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/soco/neo4j-rest-driver/neo4j/db"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/errorutil"
)

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Expected no error but was %T: %s", err, err)
	}
}

func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected an error but it wasn't")
	}
}

func AssertValidationError(t *testing.T, err error) {
	t.Helper()
	AssertError(t, err)
	var e *errorutil.ValidationError
	if !errors.As(err, &e) {
		t.Errorf("Expected validation error but was %T: %s", err, err)
	}
}

func AssertTransportError(t *testing.T, err error) {
	t.Helper()
	AssertError(t, err)
	var e *errorutil.TransportError
	if !errors.As(err, &e) {
		t.Errorf("Expected transport error but was %T: %s", err, err)
	}
}

func AssertProtocolError(t *testing.T, err error, status int) {
	t.Helper()
	AssertError(t, err)
	var e *db.ProtocolError
	if !errors.As(err, &e) {
		t.Errorf("Expected protocol error but was %T: %s", err, err)
		return
	}
	if e.Status != status {
		t.Errorf("Expected status %d but was %d", status, e.Status)
	}
}

func AssertNotFoundError(t *testing.T, err error) {
	t.Helper()
	AssertError(t, err)
	var e *errorutil.NotFoundError
	if !errors.As(err, &e) {
		t.Errorf("Expected not found error but was %T: %s", err, err)
	}
}

func AssertContractViolation(t *testing.T, err error) {
	t.Helper()
	AssertError(t, err)
	var e *errorutil.ContractViolationError
	if !errors.As(err, &e) {
		t.Errorf("Expected contract violation but was %T: %s", err, err)
	}
}

func AssertNil(t *testing.T, x any) {
	t.Helper()
	if !isNil(x) {
		t.Errorf("Expected nil but was %T: %s", x, x)
	}
}

func AssertNotNil(t *testing.T, x any) {
	t.Helper()
	if isNil(x) {
		t.Fatal("Expected not nil")
	}
}

// isNil is true for nil and for typed nils of nillable kinds, values never are.
func isNil(x any) bool {
	if x == nil {
		return true
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	}
	return false
}

func AssertTrue(t *testing.T, b bool) {
	t.Helper()
	if !b {
		t.Error("Expected true but was false")
	}
}

func AssertFalse(t *testing.T, b bool) {
	t.Helper()
	if b {
		t.Error("Expected false but was true")
	}
}

func AssertLen(t *testing.T, x any, el int) {
	t.Helper()
	al := reflect.ValueOf(x).Len()
	if al != el {
		t.Errorf("Expected length %d but was %d", el, al)
	}
}

func AssertStringEqual(t *testing.T, as, es string) {
	t.Helper()
	if as != es {
		t.Errorf("'%s' != '%s'", as, es)
	}
}

func AssertStringNotEmpty(t *testing.T, s string) {
	t.Helper()
	if s == "" {
		t.Errorf("Expected non empty string")
	}
}

func AssertStringContain(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Errorf("Expected %s to contain %s", s, sub)
	}
}

func AssertIntEqual(t *testing.T, ai, ei int) {
	t.Helper()
	if ai != ei {
		t.Errorf("%d != %d", ai, ei)
	}
}

func AssertInt64Equal(t *testing.T, ai, ei int64) {
	t.Helper()
	if ai != ei {
		t.Errorf("%d != %d", ai, ei)
	}
}

func AssertDeepEquals(t *testing.T, x, y any) {
	t.Helper()
	if !reflect.DeepEqual(x, y) {
		t.Errorf("Expected %+v to equal %+v", x, y)
	}
}

// AssertJSONValues compares raw JSON values with their textual form.
func AssertJSONValues(t *testing.T, values []json.RawMessage, expected ...string) {
	t.Helper()
	actual := make([]string, len(values))
	for i, v := range values {
		actual[i] = string(v)
	}
	if expected == nil {
		expected = []string{}
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected values %v but was %v", expected, actual)
	}
}
