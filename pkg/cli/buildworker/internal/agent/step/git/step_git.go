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
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common/types"
)

type GitStep struct {
	spec         *RepoSyncOptions
	synchronizer *Synchronizer
	logger       *zap.SugaredLogger
}

// NewGitStep decodes the step spec into RepoSyncOptions. A relative or empty localPath is
// placed under buildDir; creds fill in when the spec carries none.
func NewGitStep(spec interface{}, buildDir string, creds *types.Credentials, synchronizer *Synchronizer, logger *zap.SugaredLogger) (*GitStep, error) {
	gitStep := &GitStep{synchronizer: synchronizer, logger: logger}
	yamlBytes, err := yaml.Marshal(spec)
	if err != nil {
		return gitStep, fmt.Errorf("marshal spec %+v failed", spec)
	}
	if err := yaml.Unmarshal(yamlBytes, &gitStep.spec); err != nil {
		return gitStep, fmt.Errorf("unmarshal spec %s to git spec failed", yamlBytes)
	}
	if gitStep.spec == nil {
		gitStep.spec = &RepoSyncOptions{}
	}

	switch {
	case gitStep.spec.LocalPath == "":
		gitStep.spec.LocalPath = filepath.Join(buildDir, common.DefaultSourceDirName)
	case !filepath.IsAbs(gitStep.spec.LocalPath):
		gitStep.spec.LocalPath = filepath.Join(buildDir, gitStep.spec.LocalPath)
	}
	if gitStep.spec.Creds.Empty() {
		gitStep.spec.Creds = creds
	}
	return gitStep, nil
}

func (s *GitStep) Run(ctx context.Context) error {
	start := time.Now()
	s.logger.Infof("Start syncing %s.", s.spec.RepoLocation)
	defer func() {
		s.logger.Infof("Git sync ended. Duration: %.2f seconds.", time.Since(start).Seconds())
	}()
	return s.synchronizer.GetCode(ctx, s.spec)
}
