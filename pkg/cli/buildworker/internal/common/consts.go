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

package common

// message types
const (
	MessageTypeJob = "job"
)

// system variables, read from the job
const (
	SysVarSystem       = "system"
	SysVarCollectionID = "system.collectionId"
	SysVarDefinitionID = "system.definitionId"
)

// agent and build variables, written into the job
const (
	AgentVarWorkingDirectory = "agent.workingDirectory"
	AgentVarBuildDirectory   = "agent.buildDirectory"
	BuildVarStagingDirectory = "build.stagingDirectory"
)

const (
	StagingDirName = "staging"
	// DefaultSourceDirName is used by git steps that do not name a local path.
	DefaultSourceDirName = "s"
	HashSeparator        = ":"
)

// askpass env, scoped to a single git invocation
const (
	EnvGitAskPass        = "GIT_ASKPASS"
	EnvAskPassUsername   = "altusername"
	EnvAskPassPassword   = "altpassword"
	EnvGitTerminalPrompt = "GIT_TERMINAL_PROMPT"
	// EnvAskPassMode tells the worker binary it was started by git as askpass helper.
	EnvAskPassMode       = "BUILDWORKER_ASKPASS"
)

// step types
const (
	StepTypeGit   = "git"
	StepTypeShell = "shell"
)

const (
	DefaultRemoteName = "origin"
	DefaultRef        = "refs/heads/master"
)
