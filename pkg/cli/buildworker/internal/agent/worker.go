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
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	errhelper "github.com/koderover/buildworker/pkg/cli/buildworker/helper/error"
	"github.com/koderover/buildworker/pkg/cli/buildworker/helper/log"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/agent/job"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/agent/reporter"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common/types"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/executor"
	"github.com/koderover/buildworker/pkg/util"
)

type State string

const (
	StateIdle              State = "Idle"
	StateMessageReceived   State = "MessageReceived"
	StateVariablesResolved State = "VariablesResolved"
	StateRunning           State = "Running"
	StateReportingResult   State = "ReportingResult"
	StateExited            State = "Exited"
	StateCrashExited       State = "CrashExited"
)

// FeedbackChannelFactory opens the channel a job reports through; logger is already masked
// for that job.
type FeedbackChannelFactory func(agentURL, taskURL string, jobInfo *types.JobInfo, token string, agentCtx *AgentContext, logger *zap.SugaredLogger) (reporter.FeedbackChannel, error)

// RunnerFactory creates the runner for one job; logger is already masked for that job.
type RunnerFactory func(agentCtx *AgentContext, logger *zap.SugaredLogger) job.Runner

// Worker handles exactly one job message per process.
type Worker struct {
	AgentCtx           *AgentContext
	NewFeedbackChannel FeedbackChannelFactory
	NewRunner          RunnerFactory

	mu    sync.Mutex
	state State
}

func NewWorker(agentCtx *AgentContext) *Worker {
	return &Worker{
		AgentCtx:           agentCtx,
		NewFeedbackChannel: NewServiceFeedbackChannel,
		NewRunner:          NewStepRunner,
		state:              StateIdle,
	}
}

func NewServiceFeedbackChannel(agentURL, taskURL string, jobInfo *types.JobInfo, token string, agentCtx *AgentContext, logger *zap.SugaredLogger) (reporter.FeedbackChannel, error) {
	return reporter.NewServiceChannel(&reporter.ServiceChannelConfig{
		AgentURL:   agentURL,
		TaskURL:    taskURL,
		Token:      token,
		JobInfo:    jobInfo,
		Timeout:    agentCtx.FeedbackTimeout,
		MaxElapsed: agentCtx.FeedbackMaxElapsed,
	}, logger)
}

func NewStepRunner(agentCtx *AgentContext, logger *zap.SugaredLogger) job.Runner {
	return job.NewStepRunner(executor.NewOSExecutor(logger), agentCtx.AskPass, agentCtx.Recorder)
}

func (w *Worker) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Worker) setState(s State) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = s
}

// MarkCrashed records that the process is going down without reporting.
func (w *Worker) MarkCrashed() {
	w.setState(StateCrashExited)
}

// Run executes the job carried by msg and reports its result. Messages of other types are
// ignored. A failing job is reported as a task result and does not make Run fail; Run only
// returns an error when the job can not be reported at all, and onFinished is then not called.
func (w *Worker) Run(ctx context.Context, msg *types.JobMessage, onFinished func()) error {
	if msg == nil || msg.MessageType != common.MessageTypeJob {
		return nil
	}
	w.setState(StateMessageReceived)

	jobReq := msg.Data
	if jobReq == nil {
		return errhelper.New(errhelper.KindRunner, "run", errhelper.ErrJobIsNil)
	}
	settings := &types.AgentSettings{}
	var creds *types.Credentials
	if msg.Config != nil {
		if msg.Config.Settings != nil {
			settings = msg.Config.Settings
		}
		creds = msg.Config.Creds
	}
	if jobReq.Environment == nil {
		jobReq.Environment = &types.JobEnvironment{}
	}
	auth := jobReq.Authorization
	if auth == nil {
		auth = &types.JobAuthorization{}
	}

	types.DecodeMaskHints(jobReq)
	ResolveBuildPaths(jobReq.Environment, settings.WorkFolder)
	w.setState(StateVariablesResolved)

	masker := w.buildMasker(jobReq, creds, auth.Token)
	logger := log.WithMask(w.AgentCtx.Logger, masker.Mask)
	logger.Infof("Running job: %s", jobReq.JobName)

	feedback, err := w.NewFeedbackChannel(settings.ServerURL, auth.ServerURL, types.JobInfoFromJob(jobReq), auth.Token, w.AgentCtx, logger)
	if err != nil {
		return errors.Wrapf(err, "failed to open feedback channel for job %s", jobReq.JobName)
	}
	jobCtx := job.NewJobContext(jobReq, feedback, creds, masker, logger)
	runner := w.NewRunner(w.AgentCtx, logger)

	w.setState(StateRunning)
	result, runErr := runner.Run(ctx, jobCtx)
	logger.Info("Job Completed")
	if runErr != nil {
		logger.Errorf("Job failed: %v", runErr)
		if result == types.TaskResultSucceeded {
			result = types.TaskResultFailed
		}
	}

	w.setState(StateReportingResult)
	finishErr := jobCtx.FinishJob(ctx, result, runErr)
	w.AgentCtx.Recorder.ObserveJob(result.String())
	logger.Infof("Job Finished: %s", result)
	if finishErr != nil {
		logger.Errorf("Failed to report job result: %v", finishErr)
	}

	w.setState(StateExited)
	if onFinished != nil {
		onFinished()
	}
	return nil
}

func (w *Worker) buildMasker(jobReq *types.JobRequest, creds *types.Credentials, token string) *util.Masker {
	masker := util.NewMasker()
	for _, hint := range jobReq.Environment.Mask {
		if hint == nil {
			continue
		}
		switch hint.Type {
		case types.MaskTypeVariable:
			masker.AddSecret(jobReq.Variable(hint.Value))
		case types.MaskTypeRegex:
			if err := masker.AddPattern(hint.Value); err != nil {
				w.AgentCtx.Logger.Warnf("ignoring invalid mask pattern: %v", err)
			}
		}
	}
	if !creds.Empty() {
		masker.AddSecret(creds.Password)
	}
	masker.AddSecret(token)
	return masker
}
