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

package step

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	errhelper "github.com/koderover/buildworker/pkg/cli/buildworker/helper/error"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/agent/step/git"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/agent/step/script"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common/types"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/executor"
	"github.com/koderover/buildworker/pkg/tool/metrics"
	"github.com/koderover/buildworker/pkg/util"
)

// StepContext carries what every step of one job needs.
type StepContext struct {
	Executor  executor.Executor
	Logger    *zap.SugaredLogger
	Variables map[string]string
	Creds     *types.Credentials
	AskPass   string
	Recorder  *metrics.Recorder
}

func (c *StepContext) BuildDirectory() string {
	return c.Variables[common.AgentVarBuildDirectory]
}

type Step interface {
	Run(ctx context.Context) error
}

func RunStep(ctx context.Context, stepTask *types.StepTask, sc *StepContext) (err error) {
	var stepInstance Step

	if stepTask == nil {
		return errhelper.New(errhelper.KindRunner, "runStep", fmt.Errorf("step is nil"))
	}

	switch stepTask.Type {
	case common.StepTypeGit:
		synchronizer := git.NewSynchronizer(sc.Executor, sc.Logger, sc.AskPass, sc.Recorder).
			Protect(sc.Variables[common.AgentVarWorkingDirectory])
		stepInstance, err = git.NewGitStep(stepTask.Spec, sc.BuildDirectory(), sc.Creds, synchronizer, sc.Logger)
		if err != nil {
			return err
		}
	case common.StepTypeShell:
		stepInstance, err = script.NewShellStep(stepTask.Spec, sc.BuildDirectory(), util.VariablesToEnvs(sc.Variables), sc.Executor, sc.Logger)
		if err != nil {
			return err
		}
	default:
		err := fmt.Errorf("step type: %s does not match any known type", stepTask.Type)
		sc.Logger.Error(err)
		return err
	}

	start := time.Now()
	defer func() {
		sc.Recorder.ObserveStep(stepTask.Type, time.Since(start), err)
	}()
	return stepInstance.Run(ctx)
}
