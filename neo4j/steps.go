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
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/soco/neo4j-rest-driver/neo4j/internal/errorutil"
)

// Step is one named part of an operation made of several requests.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// StepError is returned by Steps when a step fails. The steps listed in Completed have taken
// effect in the database and are not undone.
type StepError struct {
	Step      string
	Index     int
	Completed []string
	Err       error
}

func (e *StepError) Error() string {
	if len(e.Completed) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (completed: %s)", e.Err.Error(), strings.Join(e.Completed, ", "))
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Steps runs the steps in order and stops at the first one that fails. There is no
// transaction spanning the steps, the caller decides what to do with the state left by
// the steps that completed:
//
//	err := neo4j.Steps(ctx,
//		neo4j.Step{Name: "create", Run: func(ctx context.Context) (err error) {
//			node, err = driver.CreateNode(ctx, props)
//			return err
//		}},
//		neo4j.Step{Name: "index", Run: func(ctx context.Context) error {
//			return node.Index(ctx, "people", "name", props["name"])
//		}},
//	)
func Steps(ctx context.Context, steps ...Step) error {
	if ctx == nil {
		return &errorutil.ContractViolationError{Argument: "ctx"}
	}
	for _, step := range steps {
		if step.Run == nil {
			return &errorutil.ContractViolationError{Argument: "step " + step.Name}
		}
	}

	completed := make([]string, 0, len(steps))
	for i, step := range steps {
		err := ctx.Err()
		if err != nil {
			err = errorutil.WrapError(err)
		} else {
			err = step.Run(ctx)
		}
		if err != nil {
			return &StepError{
				Step:      step.Name,
				Index:     i,
				Completed: completed,
				Err:       errors.Wrapf(err, "step %d (%s) failed", i, step.Name),
			}
		}
		completed = append(completed, step.Name)
	}
	return nil
}
