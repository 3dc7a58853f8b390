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

package test

import (
	"encoding/json"
	"strings"

	"github.com/golang/mock/gomock"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
)

type omegaMatcherWrapper struct {
	matcher gomega.OmegaMatcher
}

// WrapMatcher lets a gomega matcher be used as argument matcher in gomock expectations,
// for example to match the body sent to a mocked transport.
func WrapMatcher(matcher gomega.OmegaMatcher) gomock.Matcher {
	return &omegaMatcherWrapper{matcher: matcher}
}

func (wrapper *omegaMatcherWrapper) Matches(actual any) bool {
	result, err := wrapper.matcher.Match(actual)
	if err != nil {
		return false
	}
	return result
}

func (wrapper *omegaMatcherWrapper) String() string {
	return wrapper.matcher.FailureMessage("<actual>")
}

// SentJSON matches a request body passed to a mocked transport by its JSON
// encoding, the text the server would receive. HTML characters are not escaped
// so Cypher arrows can be matched as written.
func SentJSON(matcher types.GomegaMatcher) gomock.Matcher {
	return WrapMatcher(gomega.WithTransform(func(body any) string {
		var b strings.Builder
		encoder := json.NewEncoder(&b)
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(body); err != nil {
			return ""
		}
		return strings.TrimSuffix(b.String(), "\n")
	}, matcher))
}
