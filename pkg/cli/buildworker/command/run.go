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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/koderover/buildworker/pkg/cli/buildworker/config"
	errhelper "github.com/koderover/buildworker/pkg/cli/buildworker/helper/error"
	"github.com/koderover/buildworker/pkg/cli/buildworker/helper/log"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/agent"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common/types"
	"github.com/koderover/buildworker/pkg/tool/metrics"
)

const metricsJobName = "buildworker"

// exitFunc ends the process; replaced in tests.
var exitFunc = os.Exit

func init() {
	runCmd.Flags().String("message-file", "", "read the job message from this YAML or JSON file instead of stdin")
	runCmd.Flags().String("askpass-path", "", "program git runs for credentials, defaults to this binary")
	runCmd.Flags().Duration("feedback-timeout", 0, "timeout of a single result report request")
	runCmd.Flags().Duration("feedback-max-elapsed", 0, "give up reporting the result after this long")
	runCmd.Flags().String("pushgateway", "", "push job metrics to this Prometheus Pushgateway")

	_ = viper.BindPFlag(config.KeyMessageFile, runCmd.Flags().Lookup("message-file"))
	_ = viper.BindPFlag(config.KeyAskPassPath, runCmd.Flags().Lookup("askpass-path"))
	_ = viper.BindPFlag(config.KeyFeedbackTimeout, runCmd.Flags().Lookup("feedback-timeout"))
	_ = viper.BindPFlag(config.KeyFeedbackMaxElapsed, runCmd.Flags().Lookup("feedback-max-elapsed"))
	_ = viper.BindPFlag(config.KeyPushGateway, runCmd.Flags().Lookup("pushgateway"))

	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the job received on stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorker(cmd.Context(), cmd.InOrStdin())
	},
}

func newLogger() (*zap.SugaredLogger, error) {
	return log.New(&log.Config{
		Level:       config.LogLevel(),
		Console:     true,
		Filename:    config.LogFile(),
		MaxBackups:  config.LogMaxBackups(),
		NoCaller:    !config.EnableDebug(),
		Development: config.EnableDebug(),
	})
}

// runWorker waits for a job message and hands it to a worker. The process exits with 0 once
// the job result was reported. A panic or an interrupt exits with 1 without reporting, the
// agent treats the missing result as a failed job.
func runWorker(ctx context.Context, stdin io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := newLogger()
	if err != nil {
		return errors.Wrap(err, "failed to init logger")
	}

	recorder := metrics.NewRecorder()
	worker := agent.NewWorker(&agent.AgentContext{
		Logger:             logger,
		AskPass:            config.AskPassPath(),
		Recorder:           recorder,
		FeedbackTimeout:    config.FeedbackTimeout(),
		FeedbackMaxElapsed: config.FeedbackMaxElapsed(),
	})
	return serve(ctx, worker, stdin, logger, recorder)
}

func serve(ctx context.Context, worker *agent.Worker, stdin io.Reader, logger *zap.SugaredLogger, recorder *metrics.Recorder) error {
	stop := handleSignals(worker, logger)
	defer stop()

	defer func() {
		if r := recover(); r != nil {
			worker.MarkCrashed()
			fatal := errhelper.New(errhelper.KindProcessFatal, "panic", fmt.Errorf("%v", r))
			logger.With("kind", string(fatal.Kind)).Errorf("Worker panic error: %v", fatal)
			logger.Errorf("Worker panic stack: %s", string(debug.Stack()))
			_ = logger.Sync()
			exitFunc(1)
		}
	}()

	messages, err := openMessages(config.MessageFile(), stdin)
	if err != nil {
		return err
	}

	for {
		msg, err := messages.Next()
		if err == io.EOF {
			logger.Info("No job received, exiting.")
			return nil
		}
		if err != nil {
			return err
		}
		if msg.MessageType != common.MessageTypeJob {
			logger.Debugf("Ignoring message of type %q", msg.MessageType)
			continue
		}

		if err := worker.Run(ctx, msg, onFinished(msg, logger, recorder)); err != nil {
			worker.MarkCrashed()
			return err
		}
		return nil
	}
}

func onFinished(msg *types.JobMessage, logger *zap.SugaredLogger, recorder *metrics.Recorder) func() {
	return func() {
		grouping := map[string]string{}
		if msg.Data != nil && msg.Data.JobID != "" {
			grouping["job_id"] = msg.Data.JobID
		}
		if err := recorder.Push(config.PushGateway(), metricsJobName, grouping); err != nil {
			logger.Warnf("Failed to push metrics: %v", err)
		}
		_ = logger.Sync()
		exitFunc(0)
	}
}

// handleSignals ends the process on SIGINT and SIGTERM without reporting a result.
func handleSignals(worker *agent.Worker, logger *zap.SugaredLogger) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-ch:
			worker.MarkCrashed()
			fatal := errhelper.New(errhelper.KindProcessFatal, "signal", fmt.Errorf("received %s", sig))
			logger.With("kind", string(fatal.Kind)).Infof("Shutting down agent: %v", fatal)
			_ = logger.Sync()
			exitFunc(1)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}
