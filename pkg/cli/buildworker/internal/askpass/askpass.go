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

package askpass

import (
	"strings"

	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common"
)

// Enabled reports whether the process was started by git as its askpass helper.
func Enabled(getenv func(string) string) bool {
	return getenv(common.EnvAskPassMode) != ""
}

// Answer replies to a git credential prompt such as "Username for 'https://example.org': "
// from the credentials scoped to the calling git process.
func Answer(prompt string, getenv func(string) string) string {
	if strings.Contains(strings.ToLower(prompt), "username") {
		return getenv(common.EnvAskPassUsername)
	}
	return getenv(common.EnvAskPassPassword)
}
