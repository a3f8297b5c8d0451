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
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/koderover/buildworker/pkg/cli/buildworker/config"
	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/askpass"
)

var rootCmd = &cobra.Command{
	Use:   "buildworker",
	Short: "Per-job worker of the build agent",
	Long: `buildworker receives one job from the build agent, prepares its build directories,
syncs the git sources, runs the job steps and reports the result before exiting.`,
	SilenceUsage: true,
}

// Execute executes the root command. When git started the binary as its askpass helper,
// the prompt is answered instead.
func Execute() error {
	return execute(os.Args[1:], os.Getenv, os.Stdout)
}

func execute(args []string, getenv func(string) string, out io.Writer) error {
	// git runs $GIT_ASKPASS with the prompt as its only argument
	if askpass.Enabled(getenv) {
		prompt := ""
		if len(args) > 0 {
			prompt = args[0]
		}
		_, err := fmt.Fprintln(out, askpass.Answer(prompt, getenv))
		return err
	}
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "also write JSON logs to this file, rotated")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFile, rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag(config.KeyEnableDebug, rootCmd.PersistentFlags().Lookup("debug"))
}
