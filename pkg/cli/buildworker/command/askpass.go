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
	"os"

	"github.com/spf13/cobra"

	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/askpass"
)

func init() {
	rootCmd.AddCommand(askpassCmd)
}

var askpassCmd = &cobra.Command{
	Use:    "askpass [prompt]",
	Short:  "Answer a git credential prompt from the calling git process env",
	Args:   cobra.MaximumNArgs(1),
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		prompt := ""
		if len(args) > 0 {
			prompt = args[0]
		}
		fmt.Fprintln(cmd.OutOrStdout(), askpass.Answer(prompt, os.Getenv))
	},
}
