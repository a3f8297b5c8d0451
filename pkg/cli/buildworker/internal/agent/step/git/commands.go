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
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/executor"
)

const gitExecutable = "git"

// Version returns command: git --version
func Version() *executor.Command {
	return &executor.Command{
		Name:         gitExecutable,
		Args:         []string{"--version"},
		FailOnStderr: true,
	}
}

// Clone returns command: git clone --quiet $URL $FOLDER, run from the parent directory
func Clone(parentDir, repoURL, folder string, env []string) *executor.Command {
	return &executor.Command{
		Name:         gitExecutable,
		Args:         []string{"clone", "--quiet", repoURL, folder},
		Dir:          parentDir,
		Env:          env,
		FailOnStderr: true,
	}
}

// Fetch returns command: git fetch
// git reports progress on stderr, so stderr output is not a failure here.
func Fetch(repoDir string, env []string) *executor.Command {
	return &executor.Command{
		Name: gitExecutable,
		Args: []string{"fetch"},
		Dir:  repoDir,
		Env:  env,
	}
}

// Checkout returns command: git checkout --quiet $REF
func Checkout(repoDir, ref string) *executor.Command {
	return &executor.Command{
		Name:         gitExecutable,
		Args:         []string{"checkout", "--quiet", ref},
		Dir:          repoDir,
		FailOnStderr: true,
	}
}

// SubmoduleInit returns command: git submodule --quiet init
func SubmoduleInit(repoDir string) *executor.Command {
	return &executor.Command{
		Name:         gitExecutable,
		Args:         []string{"submodule", "--quiet", "init"},
		Dir:          repoDir,
		FailOnStderr: true,
	}
}

// SubmoduleUpdate returns command: git submodule --quiet update --recursive
func SubmoduleUpdate(repoDir string, env []string) *executor.Command {
	return &executor.Command{
		Name:         gitExecutable,
		Args:         []string{"submodule", "--quiet", "update", "--recursive"},
		Dir:          repoDir,
		Env:          env,
		FailOnStderr: true,
	}
}
