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

package git

import (
	"context"
	"time"

	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/executor"
)

type namedCommand struct {
	name string
	cmd  *executor.Command
}

// runSequence runs steps in order and stops at the first failure, returning its error as is.
func (s *Synchronizer) runSequence(ctx context.Context, steps []namedCommand) error {
	for _, step := range steps {
		start := time.Now()
		err := s.executor.Run(ctx, step.cmd)
		s.recorder.ObserveGitCommand(step.name, time.Since(start), err)
		if err != nil {
			s.logger.Errorf("git %s failed: %v", step.name, err)
			return err
		}
	}
	return nil
}
