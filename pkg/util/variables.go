/*
Copyright 2026 The KodeRover Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package util

import (
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
)

const secretEnvMask = "********"

func MaskSecret(secrets []string, message string) string {
	out := message

	for _, val := range secrets {
		if len(val) == 0 {
			continue
		}
		out = strings.Replace(out, val, secretEnvMask, -1)
	}
	return out
}

// Masker redacts literal secrets and regex matches from log lines.
type Masker struct {
	secrets  []string
	patterns []*regexp.Regexp
}

func NewMasker() *Masker {
	return &Masker{}
}

func (m *Masker) AddSecret(secret string) {
	if strings.TrimSpace(secret) == "" || lo.Contains(m.secrets, secret) {
		return
	}
	m.secrets = append(m.secrets, secret)
	// longest first so that a secret containing another one is masked whole
	sort.SliceStable(m.secrets, func(i, j int) bool {
		return len(m.secrets[i]) > len(m.secrets[j])
	})
}

func (m *Masker) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	m.patterns = append(m.patterns, re)
	return nil
}

func (m *Masker) Mask(message string) string {
	if m == nil {
		return message
	}
	out := MaskSecret(m.secrets, message)
	for _, re := range m.patterns {
		out = re.ReplaceAllString(out, secretEnvMask)
	}
	return out
}

// VariableEnvName converts a job variable name into an env var name,
// e.g. agent.buildDirectory -> AGENT_BUILDDIRECTORY.
func VariableEnvName(name string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", " ", "_", "-", "_").Replace(name))
}

// VariablesToEnvs renders job variables as sorted KEY=value pairs.
func VariablesToEnvs(variables map[string]string) []string {
	keys := lo.Keys(variables)
	sort.Strings(keys)
	return lo.Map(keys, func(key string, _ int) string {
		return VariableEnvName(key) + "=" + variables[key]
	})
}
