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

package agent

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common/types"
)

func newEnv(endpoints ...string) *types.JobEnvironment {
	env := &types.JobEnvironment{
		Variables: map[string]string{
			"system":              "build",
			"system.collectionId": "C1",
			"system.definitionId": "D1",
		},
	}
	for _, url := range endpoints {
		env.Endpoints = append(env.Endpoints, &types.Endpoint{Name: url, URL: url})
	}
	return env
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

var _ = Describe("ResolveBuildPaths", func() {
	It("derives the build and staging directories from the job identity", func() {
		env := newEnv()
		paths := ResolveBuildPaths(env, "/work")

		buildDir := filepath.Join("/work", "build", digest("C1:D1"))
		Expect(paths.BuildDirectory).To(Equal(buildDir))
		Expect(paths.StagingDirectory).To(Equal(filepath.Join(buildDir, "staging")))
		Expect(env.Variables).To(HaveKeyWithValue("agent.workingDirectory", "/work"))
		Expect(env.Variables).To(HaveKeyWithValue("agent.buildDirectory", buildDir))
		Expect(env.Variables).To(HaveKeyWithValue("build.stagingDirectory", filepath.Join(buildDir, "staging")))
	})

	It("appends endpoint urls to the identity in order", func() {
		paths := ResolveBuildPaths(newEnv("https://a.example.org", "https://b.example.org"), "/work")
		Expect(filepath.Base(paths.BuildDirectory)).To(Equal(digest("C1:D1:https://a.example.org:https://b.example.org")))
	})

	It("is idempotent", func() {
		env := newEnv("https://a.example.org")
		first := ResolveBuildPaths(env, "/work")
		second := ResolveBuildPaths(env, "/work")
		Expect(second).To(Equal(first))
	})

	It("hashes missing variables as empty strings", func() {
		env := &types.JobEnvironment{}
		paths := ResolveBuildPaths(env, "/work")
		Expect(paths.BuildDirectory).To(Equal(filepath.Join("/work", digest(":"))))
		Expect(env.Variables).To(HaveLen(3))
	})

	DescribeTable("changes the build directory when an endpoint changes",
		func(other []string) {
			base := ResolveBuildPaths(newEnv("https://a.example.org", "https://b.example.org"), "/work")
			changed := ResolveBuildPaths(newEnv(other...), "/work")
			Expect(changed.BuildDirectory).NotTo(Equal(base.BuildDirectory))
		},
		Entry("different url", []string{"https://a.example.org", "https://c.example.org"}),
		Entry("reordered", []string{"https://b.example.org", "https://a.example.org"}),
		Entry("removed", []string{"https://a.example.org"}),
		Entry("added", []string{"https://a.example.org", "https://b.example.org", "https://c.example.org"}),
	)
})
