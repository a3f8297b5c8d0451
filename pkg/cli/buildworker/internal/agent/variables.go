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

package agent

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common/types"
)

type BuildPaths struct {
	WorkingDirectory string
	BuildDirectory   string
	StagingDirectory string
}

// ResolveBuildPaths derives the build and staging directories of a job and writes them into
// its variables. The build directory is <workFolder>/<system>/<sha256 of the job identity>,
// where the identity is collectionId:definitionId followed by :<url> for every endpoint.
func ResolveBuildPaths(env *types.JobEnvironment, workFolder string) *BuildPaths {
	if env.Variables == nil {
		env.Variables = map[string]string{}
	}
	vars := env.Variables

	identity := []string{vars[common.SysVarCollectionID], vars[common.SysVarDefinitionID]}
	identity = append(identity, lo.FilterMap(env.Endpoints, func(e *types.Endpoint, _ int) (string, bool) {
		if e == nil {
			return "", false
		}
		return e.URL, true
	})...)
	sum := sha256.Sum256([]byte(strings.Join(identity, common.HashSeparator)))

	buildDir := filepath.Join(workFolder, vars[common.SysVarSystem], hex.EncodeToString(sum[:]))
	paths := &BuildPaths{
		WorkingDirectory: workFolder,
		BuildDirectory:   buildDir,
		StagingDirectory: filepath.Join(buildDir, common.StagingDirName),
	}

	vars[common.AgentVarWorkingDirectory] = paths.WorkingDirectory
	vars[common.AgentVarBuildDirectory] = paths.BuildDirectory
	vars[common.BuildVarStagingDirectory] = paths.StagingDirectory
	return paths
}
