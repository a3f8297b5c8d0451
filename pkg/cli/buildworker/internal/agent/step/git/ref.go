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

package git

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common"
)

const branchRefPrefix = "refs/heads/"

// TranslateRef maps a branch head to its remote-tracking name, since a fresh clone or
// fetch only has the branch tip under refs/remotes/origin.
// e.g. refs/heads/release -> refs/remotes/origin/release
// Any other ref is returned unchanged.
func TranslateRef(ref string) string {
	name := plumbing.ReferenceName(ref)
	if !name.IsBranch() {
		return ref
	}
	branch := strings.TrimPrefix(ref, branchRefPrefix)
	return plumbing.NewRemoteReferenceName(common.DefaultRemoteName, branch).String()
}
