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

// Level is the type that default logging implementations use for available
// log levels
type Level int

const (
	// ERROR is the level that error messages are written
	ERROR Level = 1
	// WARNING is the level that warning messages are written
	WARNING = 2
	// INFO is the level that info messages are written
	INFO = 3
	// DEBUG is the level that debug messages are written
	DEBUG = 4
)

// ToConsole returns a Console logger with all levels up to and including level enabled.
func ToConsole(level Level) *Console {
	return &Console{
		Errors: level >= ERROR,
		Warns:  level >= WARNING,
		Infos:  level >= INFO,
		Debugs: level >= DEBUG,
	}
}

// Console writes log lines formatted as
//
//	2020-05-03 12:39:45.001  ERROR  [http 1] Post "http://localhost:7474/db/data/cypher": connection refused
//	2020-05-03 12:39:45.001   INFO  [driver 1] Created driver for http://localhost:7474/db/data
//	2020-05-03 12:39:45.001   WARN  [index 1] Index people already deleted
//
// Errors go to Err (stderr if nil), everything else to Out (stdout if nil).
type Console struct {
	Errors bool
	Infos  bool
	Warns  bool
	Debugs bool
	Out    io.Writer
	Err    io.Writer
}

const timeFormat = "2006-01-02 15:04:05.000"

func (l *Console) Error(name, id string, err error) {
	if !l.Errors {
		return
	}
	l.write(l.errOut(), "ERROR", name, id, err.Error())
}

func (l *Console) Errorf(name, id string, msg string, args ...any) {
	if !l.Errors {
		return
	}
	l.write(l.errOut(), "ERROR", name, id, fmt.Sprintf(msg, args...))
}

func (l *Console) Warnf(name, id string, msg string, args ...any) {
	if !l.Warns {
		return
	}
	l.write(l.out(), " WARN", name, id, fmt.Sprintf(msg, args...))
}

func (l *Console) Infof(name, id string, msg string, args ...any) {
	if !l.Infos {
		return
	}
	l.write(l.out(), " INFO", name, id, fmt.Sprintf(msg, args...))
}

func (l *Console) Debugf(name, id string, msg string, args ...any) {
	if !l.Debugs {
		return
	}
	l.write(l.out(), "DEBUG", name, id, fmt.Sprintf(msg, args...))
}

func (l *Console) write(w io.Writer, level, name, id, msg string) {
	_, _ = fmt.Fprintf(w, "%s  %s  [%s %s] %s\n", time.Now().Format(timeFormat), level, name, id, msg)
}

func (l *Console) out() io.Writer {
	if l.Out == nil {
		return os.Stdout
	}
	return l.Out
}

func (l *Console) errOut() io.Writer {
	if l.Err == nil {
		return os.Stderr
	}
	return l.Err
}
