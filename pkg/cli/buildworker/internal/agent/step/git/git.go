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
	"os"
	"path/filepath"

	"go.uber.org/zap"

	errhelper "github.com/koderover/buildworker/pkg/cli/buildworker/helper/error"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common/types"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/executor"
	"github.com/koderover/buildworker/pkg/tool/metrics"
)

// RepoSyncOptions describes the working copy a job wants.
type RepoSyncOptions struct {
	RepoLocation string             `json:"repoLocation" yaml:"repoLocation"`
	LocalPath    string             `json:"localPath"    yaml:"localPath"`
	Ref          string             `json:"ref"          yaml:"ref"`
	Clean        bool               `json:"clean"        yaml:"clean"`
	Submodules   bool               `json:"submodules"   yaml:"submodules"`
	Creds        *types.Credentials `json:"creds,omitempty" yaml:"creds,omitempty"`
}

// Synchronizer brings a local git working copy to a requested ref.
// It is not safe to call GetCode concurrently on the same LocalPath.
type Synchronizer struct {
	executor executor.Executor
	logger   *zap.SugaredLogger
	askPass  string
	recorder *metrics.Recorder

	// directories a clean must never remove
	protected []string
}

// NewSynchronizer creates a Synchronizer. askPass is the program git runs to answer
// credential prompts; recorder may be nil.
func NewSynchronizer(exec executor.Executor, logger *zap.SugaredLogger, askPass string, recorder *metrics.Recorder) *Synchronizer {
	return &Synchronizer{
		executor: exec,
		logger:   logger,
		askPass:  askPass,
		recorder: recorder,
	}
}

// Protect refuses cleaning when the parent of LocalPath is one of dirs. Empty entries are
// ignored.
func (s *Synchronizer) Protect(dirs ...string) *Synchronizer {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if abs, err := filepath.Abs(dir); err == nil {
			s.protected = append(s.protected, abs)
		}
	}
	return s
}

func (s *Synchronizer) isProtected(dir string) bool {
	if dir == filepath.Dir(dir) {
		return true
	}
	for _, p := range s.protected {
		if dir == p {
			return true
		}
	}
	return false
}

// GetCode clones or fetches RepoLocation into LocalPath and checks out Ref.
// Nothing on disk is touched unless git is installed and an existing checkout at
// LocalPath was cloned from RepoLocation.
func (s *Synchronizer) GetCode(ctx context.Context, opts *RepoSyncOptions) error {
	if opts == nil {
		return errhelper.Precondition("getCode", "repo sync options are nil")
	}
	if _, err := s.executor.LookPath(gitExecutable); err != nil {
		return errhelper.New(errhelper.KindPrecondition, "lookPath", errhelper.ErrGitNotInstalled)
	}
	if opts.RepoLocation == "" {
		return errhelper.Precondition("getCode", "repoLocation is empty")
	}
	if opts.LocalPath == "" {
		return errhelper.Precondition("getCode", "localPath is empty")
	}

	ref := opts.Ref
	if ref == "" {
		ref = common.DefaultRef
	}
	ref = TranslateRef(ref)

	repoPath, err := filepath.Abs(opts.LocalPath)
	if err != nil {
		return errhelper.Filesystem("abs", err)
	}
	parentDir, folder := filepath.Dir(repoPath), filepath.Base(repoPath)

	exists := RepoExists(repoPath)
	if exists {
		same, err := IsRepoOriginURL(repoPath, opts.RepoLocation)
		if err != nil {
			return errhelper.New(errhelper.KindPrecondition, "checkOrigin", err)
		}
		if !same {
			return errhelper.Precondition("checkOrigin", "%s is not a clone of %s", repoPath, opts.RepoLocation)
		}
	}

	if opts.Clean && s.isProtected(parentDir) {
		return errhelper.Precondition("clean", "refusing to clean %s, set localPath to a dedicated directory", parentDir)
	}
	if opts.Clean {
		s.logger.Infof("Cleaning %s", parentDir)
		if err := os.RemoveAll(parentDir); err != nil {
			return errhelper.Filesystem("clean", err)
		}
		exists = false
	}
	if err := os.MkdirAll(parentDir, os.ModePerm); err != nil {
		return errhelper.Filesystem("mkdir", err)
	}

	creds := s.credentialEnv(opts.Creds)
	steps := []namedCommand{{name: "version", cmd: Version()}}
	if exists {
		s.logger.Infof("Fetching into existing repository %s", repoPath)
		steps = append(steps, namedCommand{name: "fetch", cmd: Fetch(repoPath, creds)})
	} else {
		s.logger.Infof("Cloning %s into %s", opts.RepoLocation, repoPath)
		steps = append(steps, namedCommand{name: "clone", cmd: Clone(parentDir, opts.RepoLocation, folder, creds)})
	}
	steps = append(steps, namedCommand{name: "checkout", cmd: Checkout(repoPath, ref)})
	if opts.Submodules {
		steps = append(steps,
			namedCommand{name: "submoduleInit", cmd: SubmoduleInit(repoPath)},
			namedCommand{name: "submoduleUpdate", cmd: SubmoduleUpdate(repoPath, creds)},
		)
	}

	return s.runSequence(ctx, steps)
}

// credentialEnv builds the askpass environment for network steps. It is attached to single
// commands and never exported to the worker's own environment.
func (s *Synchronizer) credentialEnv(creds *types.Credentials) []string {
	env := []string{fmt.Sprintf("%s=0", common.EnvGitTerminalPrompt)}
	if creds.Empty() || s.askPass == "" {
		return env
	}
	return append(env,
		fmt.Sprintf("%s=%s", common.EnvGitAskPass, s.askPass),
		fmt.Sprintf("%s=1", common.EnvAskPassMode),
		fmt.Sprintf("%s=%s", common.EnvAskPassUsername, creds.Username),
		fmt.Sprintf("%s=%s", common.EnvAskPassPassword, creds.Password),
	)
}
