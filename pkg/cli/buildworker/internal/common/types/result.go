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

package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

type TaskResult int

const (
	TaskResultSucceeded TaskResult = iota
	TaskResultSucceededWithIssues
	TaskResultFailed
	TaskResultCanceled
	TaskResultSkipped
	TaskResultAbandoned
)

var taskResultNames = []string{
	"succeeded",
	"succeededWithIssues",
	"failed",
	"canceled",
	"skipped",
	"abandoned",
}

func (r TaskResult) String() string {
	if r < 0 || int(r) >= len(taskResultNames) {
		return fmt.Sprintf("TaskResult(%d)", int(r))
	}
	return taskResultNames[r]
}

func (r TaskResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *TaskResult) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range taskResultNames {
		if strings.EqualFold(name, s) {
			*r = TaskResult(i)
			return nil
		}
	}
	return fmt.Errorf("unknown task result %q", s)
}

// JobResult is what the worker reports through the feedback channel.
type JobResult struct {
	JobInfo    *JobInfo   `json:"job"`
	Result     TaskResult `json:"result"`
	Error      string     `json:"error,omitempty"`
	StartTime  int64      `json:"startTime"`
	FinishTime int64      `json:"finishTime"`
}
