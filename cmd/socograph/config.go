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
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/soco/neo4j-rest-driver/neo4j"
	neo4jlog "github.com/soco/neo4j-rest-driver/neo4j/log"
)

// settings are read from the YAML file given by --config, then overridden by SOCOGRAPH_*
// environment variables and finally by command line flags.
type settings struct {
	// URL of the server. When empty the driver falls back to NEO4J_URL and then to its default.
	URL      string        `yaml:"url"`
	BasePath string        `yaml:"base_path"`
	LogLevel string        `yaml:"log_level"`
	HttpLog  bool          `yaml:"http_log"`
	Timeout  time.Duration `yaml:"timeout"`
}

func defaultSettings() settings {
	return settings{
		BasePath: neo4j.DefaultBasePath,
		Timeout:  30 * time.Second,
	}
}

func loadSettings(path string) (settings, error) {
	s := defaultSettings()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return s, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	s.LogLevel = getEnv("SOCOGRAPH_LOG_LEVEL", s.LogLevel)
	s.HttpLog = getEnv("SOCOGRAPH_HTTP_LOG", s.HttpLog)
	s.Timeout = time.Duration(getEnv("SOCOGRAPH_TIMEOUT_SECONDS", int(s.Timeout/time.Second))) * time.Second
	return s, nil
}

// configurer turns the settings into driver configuration.
func (s settings) configurer() (func(*neo4j.Config), error) {
	level, err := parseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	return func(config *neo4j.Config) {
		if s.BasePath != "" {
			config.BasePath = s.BasePath
		}
		if level > 0 {
			config.Log = neo4jlog.ToConsole(level)
		}
		if s.HttpLog {
			config.HttpLogger = &neo4jlog.ConsoleHttpLogger{Out: os.Stderr}
		}
	}, nil
}

func parseLevel(level string) (neo4jlog.Level, error) {
	switch strings.ToLower(level) {
	case "", "off":
		return 0, nil
	case "error":
		return neo4jlog.ERROR, nil
	case "warn", "warning":
		return neo4jlog.WARNING, nil
	case "info":
		return neo4jlog.INFO, nil
	case "debug":
		return neo4jlog.DEBUG, nil
	}
	return 0, fmt.Errorf("unknown log level '%s'", level)
}

// getEnv is a generic function to get an environment variable and convert it to the type T.
// defaultValue is used if the environment variable is not set or if conversion fails.
func getEnv[T any](key string, defaultValue T) T {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var value T
	switch any(value).(type) {
	case string:
		return any(valueStr).(T)
	case int:
		intValue, err := strconv.Atoi(valueStr)
		if err != nil {
			log.Printf("Warning: Failed to convert %s to int, using default value. Error: %v", key, err)
			return defaultValue
		}
		return any(intValue).(T)
	case bool:
		boolValue, err := strconv.ParseBool(valueStr)
		if err != nil {
			log.Printf("Warning: Failed to convert %s to bool, using default value. Error: %v", key, err)
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		log.Printf("Warning: Unsupported type for environment variable %s.", key)
		return defaultValue
	}
}
