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

package dbserver

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/soco/neo4j-rest-driver/neo4j"
	"github.com/soco/neo4j-rest-driver/neo4j/config"
)

var (
	mut    sync.Mutex
	server *DbServer
)

type DbServer struct {
	URL     string
	Version Version
}

// Available tells whether a server to test against has been given through NEO4J_URL.
func Available() bool {
	return os.Getenv(neo4j.TargetEnv) != ""
}

func GetDbServer(ctx context.Context) DbServer {
	mut.Lock()
	defer mut.Unlock()

	if server == nil {
		vars := map[string]string{
			neo4j.TargetEnv:      neo4j.DefaultTarget,
			"TEST_NEO4J_VERSION": "",
		}

		for k := range vars {
			if envVal, exists := os.LookupEnv(k); exists {
				vars[k] = envVal
				fmt.Printf("Using %s=%s from environment\n", k, envVal)
			}
		}

		server = &DbServer{URL: vars[neo4j.TargetEnv]}

		envVersion := VersionOf(vars["TEST_NEO4J_VERSION"])
		setServerVersion(ctx, server, envVersion)

		server.deleteData(ctx)
	}
	return *server
}

// setServerVersion assigns a specific Neo4j version to the DbServer instance.
// It prefers the environment variable TEST_NEO4J_VERSION when available.
// Otherwise, it asks the server for its version.
func setServerVersion(ctx context.Context, server *DbServer, envVersion Version) {
	if envVersion != noVersion && envVersion != defaultVersion {
		server.Version = envVersion
		return
	}
	driver := server.Driver()
	defer driver.Close(ctx)
	version, err := driver.GetVersion(ctx)
	if err != nil {
		panic(fmt.Sprintf("Unable to determine version from %s: %s", server.URL, err))
	}
	server.Version = VersionOf(version)
}

func (s DbServer) deleteData(ctx context.Context) {
	driver := s.Driver()
	defer driver.Close(ctx)

	if _, err := driver.Execute(ctx, "MATCH (n) DETACH DELETE n", nil); err != nil {
		panic(err)
	}
	for _, list := range []func(context.Context) ([]*neo4j.Index, error){driver.ListNodeIndexes, driver.ListRelationshipIndexes} {
		indexes, err := list(ctx)
		if err != nil {
			panic(err)
		}
		for _, index := range indexes {
			if err := index.Delete(ctx); err != nil && !neo4j.IsNotFoundError(err) {
				panic(err)
			}
		}
	}
}

func (s DbServer) Driver(configurers ...func(*config.Config)) *neo4j.Driver {
	driver, err := neo4j.NewDriver(s.URL, configurers...)
	if err != nil {
		panic(err)
	}
	return driver
}
