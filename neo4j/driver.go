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

// Package neo4j maps nodes, relationships and indexes onto a Neo4j database reached
// through its HTTP REST interface.
package neo4j

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/soco/neo4j-rest-driver/neo4j/db"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/cypher"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/errorutil"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/transport"
	"github.com/soco/neo4j-rest-driver/neo4j/log"
)

// Driver is the handle every node, relationship and index is bound to. It is created
// once with NewDriver and shared by reference, it is safe for concurrent use.
type Driver struct {
	target    url.URL
	config    *Config
	transport transport.Transport
	executor  *cypher.Executor
	log       log.Logger
	logId     string
	closed    atomic.Bool
	// Releases idle connections, nil when the transport was not built by the driver.
	release func()
}

// NewDriver is the entry point to the neo4j driver to create an instance of a Driver. It is the first
// function to be called in order to establish a connection to a neo4j database.
//
// The target is the root URL of the server, for example http://localhost:7474. When empty it is
// taken from the NEO4J_URL environment variable, DefaultTarget if that is not set either. Only the
// http and https schemes are supported.
//
// No request is sent until an operation is called on the driver, use GetVersion to verify that the
// server is reachable.
//
// The driver can be configured by passing configurers:
//
//	driver, err = NewDriver(target, func(config *neo4j.Config) {
//		config.Log = log.ToConsole(log.INFO)
//	})
func NewDriver(target string, configurers ...func(*Config)) (*Driver, error) {
	parsed, err := parseTarget(ResolveTarget(target))
	if err != nil {
		return nil, err
	}

	// Apply client hooks for setting up configuration
	config := defaultConfig()
	for _, configurer := range configurers {
		configurer(config)
	}
	if err := validateAndNormaliseConfig(config); err != nil {
		return nil, err
	}

	logId := log.NewId()
	client := newHttpClient(config)
	base := *parsed
	base.Path = strings.TrimRight(parsed.Path, "/") + config.BasePath
	t := transport.New(transport.Config{
		BaseURL:    base.String(),
		Client:     client,
		UserAgent:  config.UserAgent,
		Log:        config.Log,
		HttpLogger: config.HttpLogger,
		LogId:      logId,
	})
	d := newDriver(parsed, t, config, logId)
	if config.HttpClient == nil {
		// Connections of a client given by the application are not ours to close
		d.release = t.Close
	}
	d.log.Infof(log.Driver, d.logId, "Created driver for %s", base.String())
	return d, nil
}

func newDriver(target *url.URL, t transport.Transport, config *Config, logId string) *Driver {
	return &Driver{
		target:    *target,
		config:    config,
		transport: t,
		executor:  cypher.NewExecutor(t, config.Log, logId),
		log:       config.Log,
		logId:     logId,
	}
}

// Target returns the url this driver is bootstrapped
func (d *Driver) Target() url.URL {
	return d.target
}

// Close the driver. Operations called after Close fail with a ValidationError.
// Closing an already closed driver is a no-op.
func (d *Driver) Close(ctx context.Context) error {
	if !d.closed.CompareAndSwap(false, true) {
		return nil
	}
	if d.release != nil {
		d.release()
	}
	d.log.Infof(log.Driver, d.logId, "Closed")
	return nil
}

// begin is called first by every operation that reaches the server.
func (d *Driver) begin(ctx context.Context) error {
	if ctx == nil {
		return &errorutil.ContractViolationError{Argument: "ctx"}
	}
	if d.closed.Load() {
		return usageError("Trying to use a closed driver")
	}
	return nil
}

type serverInfo struct {
	Version string `json:"neo4j_version"`
}

// GetVersion returns the version the server reports at the root of the REST interface.
func (d *Driver) GetVersion(ctx context.Context) (string, error) {
	if err := d.begin(ctx); err != nil {
		return "", err
	}
	res, err := d.transport.Send(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return "", err
	}
	if res.Status != http.StatusOK {
		return "", res.Unexpected()
	}
	var info serverInfo
	if err := res.Decode(&info); err != nil {
		return "", err
	}
	return info.Version, nil
}

// Execute runs a Cypher statement and returns its result per column. Values must be bound
// through params, structural parts of the statement such as relationship types can not.
//
// Null values are dropped from the column they appear in, see db.Columns.
func (d *Driver) Execute(ctx context.Context, query string, params map[string]any) (db.Columns, error) {
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	return d.executor.Execute(ctx, query, params)
}
