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

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskCodeDecode(t *testing.T) {
	cases := map[string]MaskType{
		"1":        MaskTypeVariable,
		"2":        MaskTypeRegex,
		"variable": MaskTypeVariable,
		"Regex":    MaskTypeRegex,
		"3":        MaskTypeUnknown,
		"":         MaskTypeUnknown,
		"secret":   MaskTypeUnknown,
	}
	for code, expected := range cases {
		assert.Equal(t, expected, MaskCode(code).Decode(), "code %q", code)
	}
}

func TestDecodeMaskHintsFromWire(t *testing.T) {
	raw := `{"jobId":"1","environment":{"variables":{"a":"b"},"mask":[{"type":1,"value":"a"},{"type":"regex","value":"x+"},{"type":null,"value":"c"}]}}`

	job := &JobRequest{}
	require.NoError(t, json.Unmarshal([]byte(raw), job))
	DecodeMaskHints(job)

	mask := job.Environment.Mask
	require.Len(t, mask, 3)
	assert.Equal(t, MaskTypeVariable, mask[0].Type)
	assert.Equal(t, MaskTypeRegex, mask[1].Type)
	assert.Equal(t, MaskTypeUnknown, mask[2].Type)
	assert.Equal(t, "b", job.Variable("a"))
	assert.Empty(t, job.Variable("missing"))
}

func TestTaskResultJSON(t *testing.T) {
	data, err := json.Marshal(&JobResult{Result: TaskResultSucceededWithIssues})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"result":"succeededWithIssues"`)

	var r TaskResult
	require.NoError(t, json.Unmarshal([]byte(`"Canceled"`), &r))
	assert.Equal(t, TaskResultCanceled, r)
	assert.Error(t, json.Unmarshal([]byte(`"exploded"`), &r))
	assert.Equal(t, "TaskResult(9)", TaskResult(9).String())
}

func TestCredentialsEmpty(t *testing.T) {
	var nilCreds *Credentials
	assert.True(t, nilCreds.Empty())
	assert.True(t, (&Credentials{}).Empty())
	assert.False(t, (&Credentials{Username: "u"}).Empty())
}
