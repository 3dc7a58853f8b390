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
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/soco/neo4j-rest-driver/neo4j/config"
	"github.com/soco/neo4j-rest-driver/neo4j/log"
)

type Config = config.Config

const (
	// TargetEnv is the environment variable consulted when no target is given.
	TargetEnv = "NEO4J_URL"
	// DefaultTarget is used when neither a target nor TargetEnv is given.
	DefaultTarget = "http://localhost:7474"
	// DefaultBasePath is where the REST interface lives on the server.
	DefaultBasePath = "/db/data"
	UserAgent       = "neo4j-rest-driver/1.0"
)

func defaultConfig() *Config {
	return &Config{
		BasePath:             DefaultBasePath,
		Log:                  log.Void{},
		SocketConnectTimeout: 5 * time.Second,
		SocketKeepalive:      true,
		UserAgent:            UserAgent,
	}
}

func validateAndNormaliseConfig(config *Config) error {
	if config.Log == nil {
		config.Log = log.Void{}
	}

	// Base path
	if config.BasePath != "" && !strings.HasPrefix(config.BasePath, "/") {
		return &ValidationError{Message: "Base path must start with '/'"}
	}
	config.BasePath = strings.TrimRight(config.BasePath, "/")

	// Socket Connect Timeout
	if config.SocketConnectTimeout < 0 {
		config.SocketConnectTimeout = 0
	}

	return nil
}

// ResolveTarget picks the server URL: target when given, the value of the
// NEO4J_URL environment variable when set, DefaultTarget otherwise.
func ResolveTarget(target string) string {
	if target != "" {
		return target
	}
	if env := os.Getenv(TargetEnv); env != "" {
		return env
	}
	return DefaultTarget
}

func parseTarget(target string) (*url.URL, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid target: " + err.Error()}
	}
	switch parsed.Scheme {
	case "http", "https":
	default:
		return nil, &ValidationError{Message: "URI scheme " + parsed.Scheme + " is not supported, use http or https"}
	}
	if parsed.Host == "" {
		return nil, &ValidationError{Message: "Target " + target + " has no host"}
	}
	return parsed, nil
}

func newHttpClient(config *Config) *http.Client {
	if config.HttpClient != nil {
		return config.HttpClient
	}
	dialer := &net.Dialer{Timeout: config.SocketConnectTimeout}
	if !config.SocketKeepalive {
		dialer.KeepAlive = -1
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	if config.TlsConfig != nil {
		transport.TLSClientConfig = config.TlsConfig
	}
	return &http.Client{Transport: transport}
}
