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

package log

import (
	"strconv"
	"sync/atomic"
)

// Logger is used throughout the driver for logging purposes.
// Driver client can implement this interface and provide an implementation
// upon driver creation.
//
// All logging functions takes a name and id that corresponds to the name of
// the logging component and it's identity, for example "driver" and "1" to
// indicate who is logging and what instance.
//
// The HTTP transport logs as "http" with the identity of the driver that owns
// it, the query executor as "cypher" and index operations as "index".
type Logger interface {
	Error(name string, id string, err error)
	Errorf(name string, id string, msg string, args ...any)
	Warnf(name string, id string, msg string, args ...any)
	Infof(name string, id string, msg string, args ...any)
	Debugf(name string, id string, msg string, args ...any)
}

// Component names used by the driver when logging.
const (
	Driver = "driver"
	Http   = "http"
	Cypher = "cypher"
	Index  = "index"
	Entity = "entity"
)

// Void is a Logger that discards everything. It is used when no logger has been configured.
type Void struct{}

func (l Void) Error(name, id string, err error)                {}
func (l Void) Errorf(name, id string, msg string, args ...any) {}
func (l Void) Warnf(name, id string, msg string, args ...any)  {}
func (l Void) Infof(name, id string, msg string, args ...any)  {}
func (l Void) Debugf(name, id string, msg string, args ...any) {}

var id uint32

// NewId returns a new identity to be used when logging, unique for the life time of the process.
func NewId() string {
	return strconv.FormatUint(uint64(atomic.AddUint32(&id, 1)), 10)
}
