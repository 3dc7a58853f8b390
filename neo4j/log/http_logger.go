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
	"fmt"
	"io"
	"os"
	"time"
)

// HttpLogger receives every request sent to and every response received from
// the database REST interface. The context is the correlation id of the
// request so that a client line can be paired with its server line.
type HttpLogger interface {
	LogClientMessage(context string, msg string, args ...any)
	LogServerMessage(context string, msg string, args ...any)
}

// ConsoleHttpLogger writes wire messages to Out, stdout if nil.
type ConsoleHttpLogger struct {
	Out io.Writer
}

func (chl *ConsoleHttpLogger) LogClientMessage(id, msg string, args ...any) {
	chl.logHttpMessage("C", id, msg, args)
}

func (chl *ConsoleHttpLogger) LogServerMessage(id, msg string, args ...any) {
	chl.logHttpMessage("S", id, msg, args)
}

func (chl *ConsoleHttpLogger) logHttpMessage(src, id string, msg string, args []any) {
	out := chl.Out
	if out == nil {
		out = os.Stdout
	}
	_, _ = fmt.Fprintf(out, "%s   HTTP  %s%s: %s\n", time.Now().Format(timeFormat), formatId(id), src, fmt.Sprintf(msg, args...))
}

func formatId(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf("[%s] ", id)
}
