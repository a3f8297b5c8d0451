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

package script

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/executor"
)

const shell = "bash"

type ShellStep struct {
	spec     *StepShellSpec
	dir      string
	envs     []string
	executor executor.Executor
	logger   *zap.SugaredLogger
}

type StepShellSpec struct {
	Scripts []string `json:"scripts" yaml:"scripts,omitempty"`
	Script  string   `json:"script"  yaml:"script"`
}

func (s *StepShellSpec) content() string {
	scripts := append([]string{}, s.Scripts...)
	if s.Script != "" {
		scripts = append(scripts, s.Script)
	}
	return strings.Join(scripts, "\n")
}

func NewShellStep(spec interface{}, dir string, envs []string, exec executor.Executor, logger *zap.SugaredLogger) (*ShellStep, error) {
	shellStep := &ShellStep{dir: dir, envs: envs, executor: exec, logger: logger}
	yamlBytes, err := yaml.Marshal(spec)
	if err != nil {
		return shellStep, fmt.Errorf("marshal spec %+v failed", spec)
	}
	if err := yaml.Unmarshal(yamlBytes, &shellStep.spec); err != nil {
		return shellStep, fmt.Errorf("unmarshal spec %s to script spec failed", yamlBytes)
	}
	if shellStep.spec == nil {
		shellStep.spec = &StepShellSpec{}
	}
	return shellStep, nil
}

func (s *ShellStep) Run(ctx context.Context) error {
	content := s.spec.content()
	if content == "" {
		s.logger.Infof("No script to execute.")
		return nil
	}

	start := time.Now()
	s.logger.Infof("Executing user script.")
	defer func() {
		s.logger.Infof("Script Execution ended. Duration: %.2f seconds.", time.Since(start).Seconds())
	}()

	return s.executor.Run(ctx, &executor.Command{
		Name:         shell,
		Args:         []string{"-c", content},
		Dir:          s.dir,
		Env:          s.envs,
		DisableTrace: true,
	})
}
