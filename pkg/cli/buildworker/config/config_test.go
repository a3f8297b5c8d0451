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
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	assert.Equal(t, "info", v.GetString(KeyLogLevel))
	assert.Equal(t, 10, v.GetInt(KeyLogMaxBackups))
	assert.Equal(t, 30*time.Second, v.GetDuration(KeyFeedbackTimeout))
	assert.Equal(t, 2*time.Minute, v.GetDuration(KeyFeedbackMaxElapsed))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BUILDWORKER_FEEDBACK_MAX_ELAPSED", "5s")
	t.Setenv("BUILDWORKER_METRICS_PUSHGATEWAY", "http://pushgateway:9091")

	v := viper.New()
	SetDefaults(v)
	assert.Equal(t, 5*time.Second, v.GetDuration(KeyFeedbackMaxElapsed))
	assert.Equal(t, "http://pushgateway:9091", v.GetString(KeyPushGateway))
}

func TestGetters(t *testing.T) {
	viper.Set(KeyEnableDebug, true)
	viper.Set(KeyAskPassPath, "/opt/askpass")
	t.Cleanup(func() {
		viper.Set(KeyEnableDebug, false)
		viper.Set(KeyAskPassPath, "")
	})

	assert.Equal(t, "debug", LogLevel())
	assert.True(t, EnableDebug())
	assert.Equal(t, "/opt/askpass", AskPassPath())
}
