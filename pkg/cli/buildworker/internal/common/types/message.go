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

// JobMessage is the envelope the orchestrator sends to a worker process.
type JobMessage struct {
	MessageType string              `json:"messageType" yaml:"messageType"`
	Config      *AgentConfiguration `json:"config"      yaml:"config"`
	Data        *JobRequest         `json:"data"        yaml:"data"`
}

type AgentConfiguration struct {
	Settings *AgentSettings `json:"settings"        yaml:"settings"`
	Creds    *Credentials   `json:"creds,omitempty" yaml:"creds,omitempty"`
}

type AgentSettings struct {
	AgentName  string `json:"agentName,omitempty" yaml:"agentName,omitempty"`
	WorkFolder string `json:"workFolder"          yaml:"workFolder"`
	ServerURL  string `json:"serverUrl"           yaml:"serverUrl"`
}

type Credentials struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

func (c *Credentials) Empty() bool {
	return c == nil || (c.Username == "" && c.Password == "")
}

type JobRequest struct {
	JobID         string            `json:"jobId"         yaml:"jobId"`
	JobName       string            `json:"jobName"       yaml:"jobName"`
	Environment   *JobEnvironment   `json:"environment"   yaml:"environment"`
	Authorization *JobAuthorization `json:"authorization" yaml:"authorization"`
	Steps         []*StepTask       `json:"steps"         yaml:"steps"`
}

type JobEnvironment struct {
	Variables map[string]string `json:"variables"           yaml:"variables"`
	Endpoints []*Endpoint       `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
	Mask      []*MaskHint       `json:"mask,omitempty"      yaml:"mask,omitempty"`
}

type Endpoint struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	URL  string `json:"url"            yaml:"url"`
}

type JobAuthorization struct {
	ServerURL string `json:"serverUrl"       yaml:"serverUrl"`
	Token     string `json:"token,omitempty" yaml:"token,omitempty"`
}

// StepTask is one unit of work for the job runner. Spec is decoded by the step itself.
type StepTask struct {
	Name      string      `json:"name"      yaml:"name"`
	Type      string      `json:"type"      yaml:"type"`
	OnFailure bool        `json:"onFailure" yaml:"onFailure"`
	Spec      interface{} `json:"spec"      yaml:"spec"`
}

type JobInfo struct {
	JobID   string `json:"jobId"`
	JobName string `json:"jobName"`
}

func JobInfoFromJob(job *JobRequest) *JobInfo {
	if job == nil {
		return &JobInfo{}
	}
	return &JobInfo{JobID: job.JobID, JobName: job.JobName}
}

// Variable returns the named job variable, empty when unset.
func (j *JobRequest) Variable(name string) string {
	if j == nil || j.Environment == nil || j.Environment.Variables == nil {
		return ""
	}
	return j.Environment.Variables[name]
}
