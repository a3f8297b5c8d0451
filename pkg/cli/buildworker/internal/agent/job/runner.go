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

package job

import (
	"context"
	"fmt"

	errhelper "github.com/koderover/buildworker/pkg/cli/buildworker/helper/error"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/agent/step"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common/types"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/executor"
	"github.com/koderover/buildworker/pkg/tool/metrics"
)

// Runner executes the job described by a JobContext.
type Runner interface {
	Run(ctx context.Context, jobCtx *JobContext) (types.TaskResult, error)
}

// StepRunner runs the job's steps in order. Once a step fails only the steps marked
// onFailure still run, and the first failure is returned.
type StepRunner struct {
	Executor executor.Executor
	AskPass  string
	Recorder *metrics.Recorder
}

func NewStepRunner(exec executor.Executor, askPass string, recorder *metrics.Recorder) *StepRunner {
	return &StepRunner{Executor: exec, AskPass: askPass, Recorder: recorder}
}

func (r *StepRunner) Run(ctx context.Context, jobCtx *JobContext) (types.TaskResult, error) {
	if jobCtx == nil || jobCtx.Job == nil {
		return types.TaskResultFailed, errhelper.New(errhelper.KindRunner, "run", errhelper.ErrJobIsNil)
	}

	sc := &step.StepContext{
		Executor:  r.Executor,
		Logger:    jobCtx.Logger,
		Variables: jobCtx.Variables(),
		Creds:     jobCtx.Creds,
		AskPass:   r.AskPass,
		Recorder:  r.Recorder,
	}

	hasFailed := false
	var respErr error
	for i, stepTask := range jobCtx.Job.Steps {
		if ctx.Err() != nil {
			return types.TaskResultCanceled, fmt.Errorf("job %s canceled: %w", jobCtx.Job.JobName, ctx.Err())
		}
		if hasFailed && (stepTask == nil || !stepTask.OnFailure) {
			continue
		}
		if stepTask != nil {
			jobCtx.Logger.Infof("Step %d: %s", i+1, stepTask.Name)
		}
		if err := step.RunStep(ctx, stepTask, sc); err != nil {
			if !hasFailed {
				respErr = err
			}
			hasFailed = true
		}
	}

	if hasFailed {
		return types.TaskResultFailed, respErr
	}
	return types.TaskResultSucceeded, nil
}
