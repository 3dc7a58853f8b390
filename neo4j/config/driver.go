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

package config

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/soco/neo4j-rest-driver/neo4j/log"
)

// A Config contains options that can be used to customize certain
// aspects of the driver
type Config struct {
	// BasePath is the path of the REST interface on the server, every endpoint
	// is relative to it.
	//
	// default: /db/data
	BasePath string
	// TlsConfig defines the TLS configuration used for https targets.
	//
	// This is considered an advanced setting, use it at your own risk.
	//
	// default: nil
	TlsConfig *tls.Config
	// Logging target the driver will send its log outputs
	//
	// Possible to use custom logger (implement log.Logger interface) or
	// use log.ToConsole.
	//
	// default: No Op Logger (log.Void)
	Log log.Logger
	// HttpLogger receives every request and response exchanged with the server.
	//
	// default: nil
	HttpLogger log.HttpLogger
	// Maximum amount of time to wait for a TCP connection to the server to be
	// established. A 0 value means no timeout. Negative values are normalised to 0.
	//
	// Requests themselves are only bounded by the context given to each operation.
	//
	// default: 5 * time.Second
	SocketConnectTimeout time.Duration
	// Whether to enable TCP keep alive on connections.
	//
	// default: true
	SocketKeepalive bool
	// Sent as User-Agent header on every request.
	//
	// default: neo4j.UserAgent
	UserAgent string
	// HttpClient replaces the client the driver would otherwise build from the
	// settings above. TlsConfig, SocketConnectTimeout and SocketKeepalive are
	// ignored when it is set.
	//
	// default: nil
	HttpClient *http.Client
}
