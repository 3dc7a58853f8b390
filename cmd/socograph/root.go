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

package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/soco/neo4j-rest-driver/neo4j"
)

type globalFlags struct {
	url        string
	configFile string
	logLevel   string
}

// app holds what every command needs, resolved before the command runs.
type app struct {
	flags    globalFlags
	settings settings
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "socograph",
		Short: "Inspect and edit a Neo4j graph over its REST interface",
		Long: `socograph talks to the /db/data REST interface of a Neo4j server.

The server is taken from --url, the url of the config file, the NEO4J_URL
environment variable or http://localhost:7474, in that order.`,
		PersistentPreRunE: a.load,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVar(&a.flags.url, "url", "", "Neo4j server URL")
	root.PersistentFlags().StringVar(&a.flags.configFile, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "Driver log level (error, warn, info, debug)")

	root.AddCommand(a.versionCmd())
	root.AddCommand(a.queryCmd())
	root.AddCommand(a.indexCmd())
	root.AddCommand(a.nodeCmd())
	return root
}

func (a *app) load(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(a.flags.configFile)
	if err != nil {
		return err
	}
	if a.flags.url != "" {
		s.URL = a.flags.url
	}
	if a.flags.logLevel != "" {
		s.LogLevel = a.flags.logLevel
	}
	a.settings = s
	return nil
}

// withDriver runs fn with a driver bound to the resolved server, closing it afterwards.
func (a *app) withDriver(cmd *cobra.Command, fn func(ctx context.Context, driver *neo4j.Driver) error) error {
	configurer, err := a.settings.configurer()
	if err != nil {
		return err
	}
	driver, err := neo4j.NewDriver(a.settings.URL, configurer)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.settings.Timeout)
		defer cancel()
	}
	defer driver.Close(ctx)
	return fn(ctx, driver)
}

func printJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
