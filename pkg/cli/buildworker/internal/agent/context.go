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
	"time"

	"go.uber.org/zap"

	"github.com/koderover/buildworker/pkg/tool/metrics"
)

// AgentContext is built once per process and passed to everything that needs the agent.
type AgentContext struct {
	// Logger writes to the worker console; job loggers are derived from it.
	Logger   *zap.SugaredLogger
	AskPass  string
	Recorder *metrics.Recorder

	FeedbackTimeout    time.Duration
	FeedbackMaxElapsed time.Duration
}
