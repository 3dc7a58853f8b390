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
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soco/neo4j-rest-driver/neo4j"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDriver(cmd, func(ctx context.Context, driver *neo4j.Driver) error {
				version, err := driver.GetVersion(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			})
		},
	}
}

func (a *app) queryCmd() *cobra.Command {
	var params []string
	cmd := &cobra.Command{
		Use:   "query CYPHER",
		Short: "Run a Cypher statement and print its columns",
		Long: `Run a Cypher statement and print the values of each column.

Parameters are given as name=value where value is JSON, a plain string
when it is not:

  socograph query 'MATCH (n) WHERE n.name = {name} RETURN n' --param name=ann`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bound, err := parseProperties(params)
			if err != nil {
				return err
			}
			return a.withDriver(cmd, func(ctx context.Context, driver *neo4j.Driver) error {
				columns, err := driver.Execute(ctx, args[0], bound)
				if err != nil {
					return err
				}
				return printJSON(cmd, columns)
			})
		},
	}
	cmd.Flags().StringArrayVar(&params, "param", nil, "Parameter as name=value, repeatable")
	return cmd
}

func (a *app) indexCmd() *cobra.Command {
	var relationships bool
	scope := func() neo4j.IndexScope {
		if relationships {
			return neo4j.RelationshipScope
		}
		return neo4j.NodeScope
	}

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage node and relationship indexes",
	}
	cmd.PersistentFlags().BoolVar(&relationships, "relationships", false, "Work on relationship indexes instead of node indexes")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDriver(cmd, func(ctx context.Context, driver *neo4j.Driver) error {
				list := driver.ListNodeIndexes
				if scope() == neo4j.RelationshipScope {
					list = driver.ListRelationshipIndexes
				}
				indexes, err := list(ctx)
				if err != nil {
					return err
				}
				for _, index := range indexes {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", index.Name(), index.Type(), index.Provider())
				}
				return nil
			})
		},
	})

	var spec neo4j.IndexSpec
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec.Name = args[0]
			return a.withDriver(cmd, func(ctx context.Context, driver *neo4j.Driver) error {
				create := driver.CreateNodeIndex
				if scope() == neo4j.RelationshipScope {
					create = driver.CreateRelationshipIndex
				}
				index, err := create(ctx, spec)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s index %s (%s, %s)\n", index.Scope(), index.Name(), index.Type(), index.Provider())
				return nil
			})
		},
	}
	create.Flags().Var((*indexTypeFlag)(&spec.Type), "type", "Index type, exact or fulltext")
	create.Flags().StringVar(&spec.Provider, "provider", "", "Index provider (default "+neo4j.DefaultIndexProvider+")")
	_ = create.MarkFlagRequired("type")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete NAME",
		Short: "Delete an index, the indexed entities are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDriver(cmd, func(ctx context.Context, driver *neo4j.Driver) error {
				if err := driver.NewIndex(args[0], scope()).Delete(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s index %s\n", scope(), args[0])
				return nil
			})
		},
	})

	query := &cobra.Command{
		Use:   "query NAME [EXPRESSION]",
		Short: "Search an index, everything when no expression is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expression := ""
			if len(args) == 2 {
				expression = args[1]
			}
			return a.withDriver(cmd, func(ctx context.Context, driver *neo4j.Driver) error {
				entities, err := driver.NewIndex(args[0], scope()).Query(ctx, expression)
				if err != nil {
					return err
				}
				return printJSON(cmd, describe(entities))
			})
		},
	}
	cmd.AddCommand(query)
	return cmd
}

func (a *app) nodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Read and create nodes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Print a node and its properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid node id '%s'", args[0])
			}
			return a.withDriver(cmd, func(ctx context.Context, driver *neo4j.Driver) error {
				node, err := driver.GetNodeById(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, describe([]neo4j.Entity{node})[0])
			})
		},
	})

	var props []string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bag, err := parseProperties(props)
			if err != nil {
				return err
			}
			return a.withDriver(cmd, func(ctx context.Context, driver *neo4j.Driver) error {
				node, err := driver.CreateNode(ctx, bag)
				if err != nil {
					return err
				}
				return printJSON(cmd, describe([]neo4j.Entity{node})[0])
			})
		},
	}
	create.Flags().StringArrayVar(&props, "prop", nil, "Property as name=value, repeatable")
	cmd.AddCommand(create)
	return cmd
}

type indexTypeFlag neo4j.IndexType

func (f *indexTypeFlag) String() string { return string(*f) }
func (f *indexTypeFlag) Type() string   { return "type" }

func (f *indexTypeFlag) Set(value string) error {
	switch neo4j.IndexType(value) {
	case neo4j.IndexExact, neo4j.IndexFulltext:
		*f = indexTypeFlag(value)
		return nil
	}
	return fmt.Errorf("must be %s or %s", neo4j.IndexExact, neo4j.IndexFulltext)
}

// parseProperties parses name=value pairs, value is JSON or else a plain string.
func parseProperties(pairs []string) (map[string]any, error) {
	props := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, raw, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("expected name=value but got '%s'", pair)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		props[name] = value
	}
	return props, nil
}

type entityView struct {
	Id         int64          `json:"id"`
	Type       string         `json:"type,omitempty"`
	Properties map[string]any `json:"properties"`
}

func describe(entities []neo4j.Entity) []entityView {
	views := make([]entityView, len(entities))
	for i, entity := range entities {
		id, _ := entity.Id()
		views[i] = entityView{Id: id, Properties: entity.GetProperties()}
		if rel, ok := entity.(*neo4j.Relationship); ok {
			views[i].Type = rel.Type()
		}
	}
	return views
}
