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
	"errors"
	"time"

	"go.uber.org/zap"

	errhelper "github.com/koderover/buildworker/pkg/cli/buildworker/helper/error"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/agent/reporter"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common/types"
	"github.com/koderover/buildworker/pkg/util"
)

// JobContext is the execution context of one job.
type JobContext struct {
	Job      *types.JobRequest
	Feedback reporter.FeedbackChannel
	// Creds are handed to the subprocesses that need them, never exported process-wide.
	Creds     *types.Credentials
	Masker    *util.Masker
	Logger    *zap.SugaredLogger
	StartTime time.Time
}

func NewJobContext(job *types.JobRequest, feedback reporter.FeedbackChannel, creds *types.Credentials, masker *util.Masker, logger *zap.SugaredLogger) *JobContext {
	return &JobContext{
		Job:       job,
		Feedback:  feedback,
		Creds:     creds,
		Masker:    masker,
		Logger:    logger,
		StartTime: time.Now(),
	}
}

func (c *JobContext) Variables() map[string]string {
	if c.Job == nil || c.Job.Environment == nil {
		return nil
	}
	return c.Job.Environment.Variables
}

// FinishJob reports the terminal result. The error text is masked before it leaves the process.
func (c *JobContext) FinishJob(ctx context.Context, result types.TaskResult, jobErr error) error {
	if c.Feedback == nil {
		return errhelper.New(errhelper.KindRunner, "finishJob", errors.New("feedback channel is nil"))
	}
	return c.Feedback.FinishJob(ctx, &types.JobResult{
		JobInfo:    types.JobInfoFromJob(c.Job),
		Result:     result,
		Error:      c.Masker.Mask(errhelper.ErrHandler(jobErr)),
		StartTime:  c.StartTime.Unix(),
		FinishTime: time.Now().Unix(),
	})
}
