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

package reporter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common/types"
	"github.com/koderover/buildworker/pkg/tool/httpclient"
)

const (
	resultAPIPrefix = "/api/v1/jobs"
	requestIDHeader = "X-Request-ID"

	// backoff retries forever with a zero MaxElapsedTime
	defaultMaxElapsed = 2 * time.Minute
)

// FeedbackChannel reports job progress back to the controlling service.
type FeedbackChannel interface {
	FinishJob(ctx context.Context, result *types.JobResult) error
}

type ServiceChannelConfig struct {
	AgentURL   string
	TaskURL    string
	Token      string
	JobInfo    *types.JobInfo
	Timeout    time.Duration
	MaxElapsed time.Duration
}

// ServiceChannel posts job results to the task service over HTTP.
type ServiceChannel struct {
	client     *httpclient.Client
	jobInfo    *types.JobInfo
	maxElapsed time.Duration
	logger     *zap.SugaredLogger
}

func NewServiceChannel(cfg *ServiceChannelConfig, logger *zap.SugaredLogger) (*ServiceChannel, error) {
	if cfg == nil || cfg.JobInfo == nil {
		return nil, fmt.Errorf("reporter job info is nil")
	}
	host := cfg.TaskURL
	if host == "" {
		host = cfg.AgentURL
	}
	if host == "" {
		return nil, fmt.Errorf("no server url for job %s", cfg.JobInfo.JobID)
	}
	maxElapsed := cfg.MaxElapsed
	if maxElapsed <= 0 {
		maxElapsed = defaultMaxElapsed
	}

	return &ServiceChannel{
		client: httpclient.New(
			httpclient.SetHostURL(strings.TrimSuffix(host, "/")),
			httpclient.SetTimeout(cfg.Timeout),
			httpclient.SetAuthToken(cfg.Token),
		),
		jobInfo:    cfg.JobInfo,
		maxElapsed: maxElapsed,
		logger:     logger,
	}, nil
}

// FinishJob delivers the terminal result. Transport errors and 5xx responses are retried
// with exponential backoff until MaxElapsed, two minutes when unset.
func (c *ServiceChannel) FinishJob(ctx context.Context, result *types.JobResult) error {
	if result == nil {
		return fmt.Errorf("reporter result is nil")
	}
	url := fmt.Sprintf("%s/%s/result", resultAPIPrefix, c.jobInfo.JobID)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.maxElapsed

	attempt := 0
	operation := func() error {
		attempt++
		_, err := c.client.Post(url,
			httpclient.SetBody(result),
			httpclient.SetHeader(requestIDHeader, uuid.NewString()),
		)
		if err == nil {
			return nil
		}
		if !httpclient.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		c.logger.Warnf("attempt %d to report job %s failed: %s", attempt, c.jobInfo.JobName, err)
		return err
	}

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return errors.Wrapf(err, "failed to report result of job %s", c.jobInfo.JobName)
	}
	return nil
}
