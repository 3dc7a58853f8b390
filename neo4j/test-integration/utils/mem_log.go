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

package utils

import (
	"fmt"
	"sync"
)

// MemoryLogging is a log.Logger keeping every line, prefixed by component name and id.
type MemoryLogging struct {
	mut      sync.Mutex
	Errors   []string
	Warnings []string
	Infos    []string
	Debugs   []string
}

func (log *MemoryLogging) Error(name, id string, err error) {
	log.add(&log.Errors, name, id, err.Error())
}

func (log *MemoryLogging) Errorf(name, id string, message string, args ...any) {
	log.add(&log.Errors, name, id, fmt.Sprintf(message, args...))
}

func (log *MemoryLogging) Warnf(name, id string, message string, args ...any) {
	log.add(&log.Warnings, name, id, fmt.Sprintf(message, args...))
}

func (log *MemoryLogging) Infof(name, id string, message string, args ...any) {
	log.add(&log.Infos, name, id, fmt.Sprintf(message, args...))
}

func (log *MemoryLogging) Debugf(name, id string, message string, args ...any) {
	log.add(&log.Debugs, name, id, fmt.Sprintf(message, args...))
}

func (log *MemoryLogging) add(lines *[]string, name, id, line string) {
	log.mut.Lock()
	defer log.mut.Unlock()
	*lines = append(*lines, fmt.Sprintf("[%s %s] %s", name, id, line))
}
