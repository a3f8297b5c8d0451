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

package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/koderover/buildworker/pkg/cli/buildworker/config"
	errhelper "github.com/koderover/buildworker/pkg/cli/buildworker/helper/error"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/agent"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/agent/job"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/agent/reporter"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common/types"
	"github.com/koderover/buildworker/pkg/tool/metrics"
)

type recordingChannel struct {
	results []*types.JobResult
}

func (c *recordingChannel) FinishJob(_ context.Context, result *types.JobResult) error {
	c.results = append(c.results, result)
	return nil
}

type runnerFunc func(ctx context.Context, jobCtx *job.JobContext) (types.TaskResult, error)

func (f runnerFunc) Run(ctx context.Context, jobCtx *job.JobContext) (types.TaskResult, error) {
	return f(ctx, jobCtx)
}

type harness struct {
	worker   *agent.Worker
	channel  *recordingChannel
	logs     *observer.ObservedLogs
	logger   *zap.SugaredLogger
	jobNames []string

	mu     sync.Mutex
	exits  []int
	exited chan int
}

func newHarness(t *testing.T, run runnerFunc) *harness {
	core, logs := observer.New(zapcore.DebugLevel)
	h := &harness{
		channel: &recordingChannel{},
		logs:    logs,
		logger:  zap.New(core).Sugar(),
		exited:  make(chan int, 4),
	}

	exitFunc = func(code int) {
		h.mu.Lock()
		h.exits = append(h.exits, code)
		h.mu.Unlock()
		h.exited <- code
	}
	t.Cleanup(func() { exitFunc = os.Exit })

	h.worker = agent.NewWorker(&agent.AgentContext{Logger: h.logger, Recorder: metrics.NewRecorder()})
	h.worker.NewFeedbackChannel = func(string, string, *types.JobInfo, string, *agent.AgentContext, *zap.SugaredLogger) (reporter.FeedbackChannel, error) {
		return h.channel, nil
	}
	h.worker.NewRunner = func(*agent.AgentContext, *zap.SugaredLogger) job.Runner {
		return runnerFunc(func(ctx context.Context, jobCtx *job.JobContext) (types.TaskResult, error) {
			h.jobNames = append(h.jobNames, jobCtx.Job.JobName)
			if run == nil {
				return types.TaskResultSucceeded, nil
			}
			return run(ctx, jobCtx)
		})
	}
	return h
}

func (h *harness) serve(stdin string) error {
	return serve(context.Background(), h.worker, strings.NewReader(stdin), h.logger, metrics.NewRecorder())
}

func (h *harness) exitCodes() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]int(nil), h.exits...)
}

func (h *harness) fatalLogs() int {
	return h.logs.FilterField(zap.String("kind", string(errhelper.KindProcessFatal))).Len()
}

const jobStream = `{"messageType":"ping"}
{"messageType":"job","config":{"settings":{"workFolder":"/work"}},"data":{"jobId":"1","jobName":"first","environment":{"variables":{"system":"build"}}}}
{"messageType":"job","data":{"jobId":"2","jobName":"second"}}`

func TestServeRunsFirstJob(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.serve(jobStream))

	assert.Equal(t, []string{"first"}, h.jobNames)
	assert.Equal(t, []int{0}, h.exits)
	require.Len(t, h.channel.results, 1)
	assert.Equal(t, types.TaskResultSucceeded, h.channel.results[0].Result)
	assert.Equal(t, agent.StateExited, h.worker.State())
}

func TestServeWithoutJob(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.serve(`{"messageType":"ping"}`))
	assert.Empty(t, h.jobNames)
	assert.Empty(t, h.exits)
	assert.Equal(t, agent.StateIdle, h.worker.State())
}

func TestServeMalformedMessage(t *testing.T) {
	h := newHarness(t, nil)

	assert.Error(t, h.serve(`{"messageType":`))
	assert.Empty(t, h.exits)
}

func TestServePanicBypassesReporting(t *testing.T) {
	h := newHarness(t, func(context.Context, *job.JobContext) (types.TaskResult, error) {
		panic("runner exploded")
	})

	require.NoError(t, h.serve(jobStream))

	assert.Equal(t, []int{1}, h.exits)
	assert.Empty(t, h.channel.results)
	assert.Equal(t, agent.StateCrashExited, h.worker.State())
	assert.Equal(t, 1, h.fatalLogs())
}

func TestServeInterruptBypassesReporting(t *testing.T) {
	release := make(chan struct{})
	h := newHarness(t, func(context.Context, *job.JobContext) (types.TaskResult, error) {
		assert.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))
		// os.Exit would not return, hold the job until the test has looked
		<-release
		return types.TaskResultSucceeded, nil
	})

	served := make(chan error, 1)
	go func() { served <- h.serve(jobStream) }()

	select {
	case code := <-h.exited:
		assert.Equal(t, 1, code)
	case <-time.After(10 * time.Second):
		t.Fatal("worker did not exit on SIGINT")
	}
	assert.Equal(t, agent.StateCrashExited, h.worker.State())
	assert.Empty(t, h.channel.results)
	assert.Equal(t, []int{1}, h.exitCodes())
	assert.Equal(t, 1, h.fatalLogs())

	close(release)
	require.NoError(t, <-served)
}

func TestServeMessageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	content := `messageType: job
config:
  settings:
    workFolder: /work
data:
  jobId: "9"
  jobName: from-file
  environment:
    variables:
      system.collectionId: C1
    mask:
      - type: 1
        value: system.collectionId
  steps:
    - name: build
      type: shell
      spec:
        script: make
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	viper.Set(config.KeyMessageFile, path)
	t.Cleanup(func() { viper.Set(config.KeyMessageFile, "") })

	var steps []*types.StepTask
	var mask []*types.MaskHint
	h := newHarness(t, func(_ context.Context, jobCtx *job.JobContext) (types.TaskResult, error) {
		steps = jobCtx.Job.Steps
		mask = jobCtx.Job.Environment.Mask
		return types.TaskResultSucceeded, nil
	})

	require.NoError(t, h.serve(""))

	assert.Equal(t, []string{"from-file"}, h.jobNames)
	require.Len(t, steps, 1)
	assert.Equal(t, "shell", steps[0].Type)
	require.Len(t, mask, 1)
	assert.Equal(t, types.MaskTypeVariable, mask[0].Type)
	assert.Equal(t, []int{0}, h.exits)
}

func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestExecuteAnswersAskPass(t *testing.T) {
	getenv := envOf(map[string]string{
		"BUILDWORKER_ASKPASS": "1",
		"altusername":         "builder",
		"altpassword":         "s3cret",
	})

	out := &bytes.Buffer{}
	require.NoError(t, execute([]string{"Username for 'https://example.org': "}, getenv, out))
	assert.Equal(t, "builder\n", out.String())

	out.Reset()
	// the prompt is not a subcommand, cobra would reject it
	require.NoError(t, execute([]string{"Password for 'https://builder@example.org': "}, getenv, out))
	assert.Equal(t, "s3cret\n", out.String())
}

func TestAskPassCommand(t *testing.T) {
	t.Setenv("altusername", "builder")
	t.Setenv("altpassword", "s3cret")

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, execute([]string{"askpass", "Password for 'https://builder@example.org': "}, envOf(nil), out))
	assert.Equal(t, "s3cret\n", out.String())
}

func TestVersionCommand(t *testing.T) {
	config.BuildWorkerVersion = "v1.2.3"
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, execute([]string{"version"}, envOf(nil), out))
	assert.Contains(t, out.String(), "buildworker version v1.2.3")
}
