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

package log

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level       string
	Console     bool
	Filename    string
	NoCaller    bool
	Development bool
	MaxBackups  int

	// ConsoleWriter overrides stdout for the console core.
	ConsoleWriter io.Writer
}

// New builds the worker logger: a console core and, when Filename is set, a JSON file
// core rotated by lumberjack.
func New(cfg *Config) (*zap.SugaredLogger, error) {
	var l = new(zapcore.Level)
	if err := l.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, err
	}

	core := zapcore.NewNopCore()
	if cfg.Console {
		w := cfg.ConsoleWriter
		if w == nil {
			w = os.Stdout
		}
		core = zapcore.NewCore(getConsoleEncoder(), zapcore.AddSync(w), l)
	}

	if cfg.Filename != "" {
		fileCore := zapcore.NewCore(getJSONEncoder(), zapcore.AddSync(getLumberjackLogger(cfg.Filename, cfg.MaxBackups)), l)
		core = zapcore.NewTee(core, fileCore)
	}

	var opts []zap.Option
	opts = append(opts, zap.AddStacktrace(zap.DPanicLevel))
	if !cfg.NoCaller {
		opts = append(opts, zap.AddCaller())
	}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}

	return zap.New(core, opts...).Sugar(), nil
}

// WithMask returns a logger that runs every message and string field through mask.
func WithMask(logger *zap.SugaredLogger, mask func(string) string) *zap.SugaredLogger {
	return logger.Desugar().WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return NewMaskCore(core, mask)
	})).Sugar()
}

func getJSONEncoder() zapcore.Encoder {
	return getEncoder(true)
}

func getConsoleEncoder() zapcore.Encoder {
	return getEncoder(false)
}

func lastNthIndexString(s string, sub string, index int) string {
	r := strings.Split(s, sub)
	if len(r) < index {
		return s
	}
	return strings.Join(r[len(r)-index:], "/")
}

func customCallerEncoder(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(lastNthIndexString(caller.String(), "/", 3))
}

func getEncoder(jsonFormat bool) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	encoderConfig.EncodeCaller = customCallerEncoder

	if jsonFormat {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func getLumberjackLogger(filename string, maxBackup int) *lumberjack.Logger {
	// keep 10 backups if not set to avoid run out of disk space
	if maxBackup == 0 {
		maxBackup = 10
	}
	return &lumberjack.Logger{
		Filename:   filename,
		MaxBackups: maxBackup,
	}
}
