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

package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type MaskType int

const (
	MaskTypeUnknown  MaskType = 0
	MaskTypeVariable MaskType = 1
	MaskTypeRegex    MaskType = 2
)

var maskTypeNames = map[MaskType]string{
	MaskTypeVariable: "variable",
	MaskTypeRegex:    "regex",
}

func (t MaskType) String() string {
	if name, ok := maskTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// MaskCode is the compact wire form of a mask type: either the numeric code or the name.
type MaskCode string

func (c *MaskCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = MaskCode(s)
		return nil
	}
	if string(data) == "null" {
		*c = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = MaskCode(n.String())
	return nil
}

// Decode resolves the wire code into a MaskType.
func (c MaskCode) Decode() MaskType {
	s := strings.TrimSpace(string(c))
	if n, err := strconv.Atoi(s); err == nil {
		if _, ok := maskTypeNames[MaskType(n)]; ok {
			return MaskType(n)
		}
		return MaskTypeUnknown
	}
	for t, name := range maskTypeNames {
		if strings.EqualFold(name, s) {
			return t
		}
	}
	return MaskTypeUnknown
}

// MaskHint declares a value that must never reach the logs.
// For variable hints Value names the variable, for regex hints it is the pattern.
type MaskHint struct {
	Code  MaskCode `json:"type"  yaml:"type"`
	Value string   `json:"value" yaml:"value"`

	Type MaskType `json:"-" yaml:"-"`
}

// DecodeMaskHints resolves the type of every mask hint of the job in place.
func DecodeMaskHints(job *JobRequest) {
	if job == nil || job.Environment == nil {
		return
	}
	for _, hint := range job.Environment.Mask {
		if hint == nil {
			continue
		}
		hint.Type = hint.Code.Decode()
	}
}
