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

package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// Recorder holds the metrics of one worker process. A nil Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	JobsTotal *prometheus.CounterVec
	StepTime  *prometheus.HistogramVec
	GitTime   *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		JobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buildworker_jobs_total",
				Help: "Number of jobs finished by the worker",
			},
			[]string{"result"},
		),
		StepTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "buildworker_step_duration_seconds",
				Help:    "Duration of job steps in seconds",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
			},
			[]string{"type", "status"},
		),
		GitTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "buildworker_git_command_duration_seconds",
				Help:    "Duration of git synchronization commands in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
			},
			[]string{"command", "status"},
		),
	}
	r.registry.MustRegister(r.JobsTotal, r.StepTime, r.GitTime)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) ObserveJob(result string) {
	if r == nil {
		return
	}
	r.JobsTotal.WithLabelValues(result).Inc()
}

func (r *Recorder) ObserveStep(stepType string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.StepTime.WithLabelValues(stepType, status(err)).Observe(d.Seconds())
}

func (r *Recorder) ObserveGitCommand(command string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.GitTime.WithLabelValues(command, status(err)).Observe(d.Seconds())
}

// Push sends the collected metrics to a Prometheus Pushgateway. Worker processes are too
// short-lived to be scraped.
func (r *Recorder) Push(gatewayURL, job string, grouping map[string]string) error {
	if r == nil || gatewayURL == "" {
		return nil
	}
	pusher := push.New(gatewayURL, job).Gatherer(r.registry)
	for name, value := range grouping {
		pusher = pusher.Grouping(name, value)
	}
	if err := pusher.Push(); err != nil {
		return errors.Wrapf(err, "push metrics to %s", gatewayURL)
	}
	return nil
}

func status(err error) string {
	if err != nil {
		return statusFailure
	}
	return statusSuccess
}
