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
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common/types"
)

// messageSource yields the messages sent to the worker; io.EOF ends the stream.
type messageSource interface {
	Next() (*types.JobMessage, error)
}

// jsonStream reads concatenated JSON messages, as the agent writes them to stdin.
type jsonStream struct {
	decoder *json.Decoder
}

func newJSONStream(r io.Reader) *jsonStream {
	return &jsonStream{decoder: json.NewDecoder(r)}
}

func (s *jsonStream) Next() (*types.JobMessage, error) {
	msg := &types.JobMessage{}
	if err := s.decoder.Decode(msg); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.Wrap(err, "failed to decode message")
	}
	return msg, nil
}

// fileMessage holds a single message read from a YAML or JSON document.
type fileMessage struct {
	msg *types.JobMessage
}

func newFileMessage(path string) (*fileMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read message file %s", path)
	}
	msg := &types.JobMessage{}
	if err := yaml.Unmarshal(data, msg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse message file %s", path)
	}
	return &fileMessage{msg: msg}, nil
}

func (f *fileMessage) Next() (*types.JobMessage, error) {
	if f.msg == nil {
		return nil, io.EOF
	}
	msg := f.msg
	f.msg = nil
	return msg, nil
}

func openMessages(path string, stdin io.Reader) (messageSource, error) {
	if path != "" {
		return newFileMessage(path)
	}
	return newJSONStream(stdin), nil
}
