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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	BuildWorkerVersion = ""
	BuildGoVersion     = ""
	BuildCommit        = ""
	BuildTime          = ""
)

const EnvPrefix = "BUILDWORKER"

// viper keys
const (
	KeyLogLevel           = "log.level"
	KeyLogFile            = "log.file"
	KeyLogMaxBackups      = "log.max_backups"
	KeyMessageFile        = "message.file"
	KeyAskPassPath        = "askpass.path"
	KeyFeedbackTimeout    = "feedback.timeout"
	KeyFeedbackMaxElapsed = "feedback.max_elapsed"
	KeyPushGateway        = "metrics.pushgateway"
	KeyEnableDebug        = "debug"
)

func init() {
	SetDefaults(viper.GetViper())
}

// SetDefaults registers defaults and the env binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogMaxBackups, 10)
	v.SetDefault(KeyFeedbackTimeout, 30*time.Second)
	v.SetDefault(KeyFeedbackMaxElapsed, 2*time.Minute)
}

func LogLevel() string {
	if viper.GetBool(KeyEnableDebug) {
		return "debug"
	}
	return viper.GetString(KeyLogLevel)
}

// LogFile is empty when file logging is disabled.
func LogFile() string {
	return viper.GetString(KeyLogFile)
}

func LogMaxBackups() int {
	return viper.GetInt(KeyLogMaxBackups)
}

func MessageFile() string {
	return viper.GetString(KeyMessageFile)
}

// AskPassPath is the helper git runs to answer credential prompts. It defaults to
// this binary, which implements the askpass subcommand.
func AskPassPath() string {
	if p := viper.GetString(KeyAskPassPath); p != "" {
		return p
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Clean(exe)
}

func FeedbackTimeout() time.Duration {
	return viper.GetDuration(KeyFeedbackTimeout)
}

func FeedbackMaxElapsed() time.Duration {
	return viper.GetDuration(KeyFeedbackMaxElapsed)
}

func PushGateway() string {
	return viper.GetString(KeyPushGateway)
}

func EnableDebug() bool {
	return viper.GetBool(KeyEnableDebug)
}
