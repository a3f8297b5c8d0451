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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	errhelper "github.com/koderover/buildworker/pkg/cli/buildworker/helper/error"
)

// Command describes one subprocess invocation. Env is appended to the worker's
// environment and applies to this invocation only.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
	// FailOnStderr treats any stderr output as a failure even on exit code 0.
	FailOnStderr bool
	// DisableTrace hides the command line from the job log.
	DisableTrace bool
}

func (c *Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, s := range append([]string{c.Name}, c.Args...) {
		if strings.ContainsAny(s, " \t\n") {
			s = fmt.Sprintf("%q", s)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

type Executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, cmd *Command) error
}

// OSExecutor runs commands as child processes and streams their output into the logger.
type OSExecutor struct {
	logger *zap.SugaredLogger
}

func NewOSExecutor(logger *zap.SugaredLogger) *OSExecutor {
	return &OSExecutor{logger: logger}
}

func (e *OSExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (e *OSExecutor) Run(ctx context.Context, c *Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = os.Environ()
	if c.Dir != "" {
		cmd.Env = append(cmd.Env, "PWD="+c.Dir)
	}
	cmd.Env = append(cmd.Env, c.Env...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if !c.DisableTrace {
		e.logger.Infof("[command]%s", c)
	}
	if err := cmd.Start(); err != nil {
		return &errhelper.SubprocessError{Command: c.String(), ExitCode: -1, Stderr: err.Error()}
	}

	var errOut lockedBuilder
	g := new(errgroup.Group)
	g.Go(func() error {
		return e.drain(stdout, nil)
	})
	g.Go(func() error {
		return e.drain(stderr, &errOut)
	})
	drainErr := g.Wait()
	waitErr := cmd.Wait()

	stderrText := strings.TrimSpace(errOut.String())
	if waitErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if stderrText == "" {
			stderrText = waitErr.Error()
		}
		return &errhelper.SubprocessError{Command: c.String(), ExitCode: exitCode, Stderr: stderrText}
	}
	if drainErr != nil {
		return drainErr
	}
	if c.FailOnStderr && stderrText != "" {
		return &errhelper.SubprocessError{Command: c.String(), Stderr: stderrText}
	}
	return nil
}

// drain reads pipe until EOF so the child never blocks on a full pipe. Lines have no
// length limit.
func (e *OSExecutor) drain(pipe io.Reader, capture *lockedBuilder) error {
	reader := bufio.NewReader(pipe)
	for {
		lineBytes, err := reader.ReadBytes('\n')
		if len(lineBytes) > 0 {
			line := strings.TrimRight(string(lineBytes), "\r\n")
			e.logger.Info(line)
			if capture != nil {
				capture.WriteLine(line)
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			// keep the pipe empty, the child may still be writing
			_, _ = io.Copy(io.Discard, reader)
			return err
		}
	}
}

type lockedBuilder struct {
	mu sync.Mutex
	sb strings.Builder
}

func (b *lockedBuilder) WriteLine(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

func (b *lockedBuilder) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}
