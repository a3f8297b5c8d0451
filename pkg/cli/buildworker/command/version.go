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
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/koderover/buildworker/pkg/cli/buildworker/config"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of buildworker",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "buildworker version %s %s/%s\n\n", config.BuildWorkerVersion, runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "Build Time: %s\n", config.BuildTime)
		fmt.Fprintf(out, "Build Commit: %s\n", config.BuildCommit)
		fmt.Fprintf(out, "Build Go Version: %s\n", config.BuildGoVersion)
	},
}
