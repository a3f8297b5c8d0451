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

package executor

import (
	"context"
	"fmt"
	"sync"
)

// FakeExecutor records commands instead of running them.
type FakeExecutor struct {
	mu sync.Mutex

	// Paths maps executable names to LookPath results; unknown names are not found.
	Paths map[string]string
	// Handler, when set, decides the outcome of every command.
	Handler func(c *Command) error
	Calls   []*Command
}

func NewFakeExecutor(executables ...string) *FakeExecutor {
	f := &FakeExecutor{Paths: map[string]string{}}
	for _, name := range executables {
		f.Paths[name] = "/usr/bin/" + name
	}
	return f
}

func (f *FakeExecutor) LookPath(file string) (string, error) {
	if p, ok := f.Paths[file]; ok {
		return p, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", file)
}

func (f *FakeExecutor) Run(_ context.Context, c *Command) error {
	f.mu.Lock()
	f.Calls = append(f.Calls, c)
	handler := f.Handler
	f.mu.Unlock()

	if handler != nil {
		return handler(c)
	}
	return nil
}

// CommandLines returns the recorded calls rendered as command lines.
func (f *FakeExecutor) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, c.String())
	}
	return lines
}
