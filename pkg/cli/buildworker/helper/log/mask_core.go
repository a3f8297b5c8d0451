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
	"go.uber.org/zap/zapcore"
)

type maskCore struct {
	zapcore.Core
	mask func(string) string
}

// NewMaskCore wraps core so that no message or string field leaves it unmasked.
func NewMaskCore(core zapcore.Core, mask func(string) string) zapcore.Core {
	if mask == nil {
		return core
	}
	return &maskCore{Core: core, mask: mask}
}

func (c *maskCore) With(fields []zapcore.Field) zapcore.Core {
	return &maskCore{Core: c.Core.With(c.maskFields(fields)), mask: c.mask}
}

func (c *maskCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *maskCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	ent.Message = c.mask(ent.Message)
	return c.Core.Write(ent, c.maskFields(fields))
}

func (c *maskCore) maskFields(fields []zapcore.Field) []zapcore.Field {
	if len(fields) == 0 {
		return fields
	}
	out := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		switch f.Type {
		case zapcore.StringType:
			f.String = c.mask(f.String)
		case zapcore.ErrorType:
			if err, ok := f.Interface.(error); ok && err != nil {
				f = zapcore.Field{Key: f.Key, Type: zapcore.StringType, String: c.mask(err.Error())}
			}
		}
		out[i] = f
	}
	return out
}
