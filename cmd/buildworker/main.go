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

package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/koderover/buildworker/pkg/cli/buildworker/command"
	"github.com/koderover/buildworker/pkg/cli/buildworker/config"
)

var (
	BuildWorkerVersion = ""
	BuildGoVersion     = ""
	BuildCommit        = ""
	BuildTime          = ""
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "Worker panic error: %v\n", err)
			fmt.Fprintf(os.Stderr, "Worker panic stack: %s\n", string(debug.Stack()))
			os.Exit(1)
		}
	}()

	config.BuildWorkerVersion = BuildWorkerVersion
	config.BuildGoVersion = BuildGoVersion
	config.BuildCommit = BuildCommit
	config.BuildTime = BuildTime

	if err := command.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run buildworker, error: %s\n", err)
		os.Exit(1)
	}
}
