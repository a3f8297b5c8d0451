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

package git

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = DescribeTable("TranslateRef",
	func(ref, expected string) {
		Expect(TranslateRef(ref)).To(Equal(expected))
	},
	Entry("branch head", "refs/heads/release", "refs/remotes/origin/release"),
	Entry("nested branch", "refs/heads/feature/login", "refs/remotes/origin/feature/login"),
	Entry("default ref", "refs/heads/master", "refs/remotes/origin/master"),
	Entry("tag", "refs/tags/v1.0.0", "refs/tags/v1.0.0"),
	Entry("pull request", "refs/pull/12/merge", "refs/pull/12/merge"),
	Entry("remote tracking", "refs/remotes/origin/dev", "refs/remotes/origin/dev"),
	Entry("commit sha", "3f2a9c1", "3f2a9c1"),
)

var _ = DescribeTable("SameRepoURL",
	func(a, b string, expected bool) {
		Expect(SameRepoURL(a, b)).To(Equal(expected))
	},
	Entry("identical", "https://example.org/repo.git", "https://example.org/repo.git", true),
	Entry("case of scheme and host", "HTTPS://EXAMPLE.org/repo.git", "https://example.org/repo.git", true),
	Entry("case of path", "https://example.org/Team/Repo.git", "https://example.org/team/repo.git", true),
	Entry("trailing slash", "https://example.org/repo.git/", "https://example.org/repo.git", true),
	Entry("user info ignored", "https://builder@example.org/repo.git", "https://example.org/repo.git", true),
	Entry("different repo", "https://example.org/repo.git", "https://example.org/other.git", false),
	Entry("different host", "https://example.org/repo.git", "https://example.com/repo.git", false),
	Entry("scp-like", "git@example.org:team/repo.git", "git@example.org:Team/Repo.git", true),
	Entry("scp-like vs https", "git@example.org:team/repo.git", "https://example.org/team/repo.git", false),
)

var _ = Describe("OriginURL", func() {
	var repoPath string

	BeforeEach(func() {
		repoPath = filepath.Join(GinkgoT().TempDir(), "s")
		Expect(os.MkdirAll(filepath.Join(repoPath, ".git"), os.ModePerm)).To(Succeed())
	})

	It("reads the origin url", func() {
		config := "[core]\n\tbare = false\n[remote \"origin\"]\n\turl = https://example.org/repo.git\n"
		Expect(os.WriteFile(filepath.Join(repoPath, ".git", "config"), []byte(config), 0644)).To(Succeed())

		origin, err := OriginURL(repoPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(origin).To(Equal("https://example.org/repo.git"))
		Expect(RepoExists(repoPath)).To(BeTrue())
	})

	It("keeps # and ; inside the url", func() {
		url := "https://example.org/repo;v=2.git#main"
		config := "[remote \"origin\"]\n\turl = " + url + "\n\tfetch = +refs/heads/*:refs/remotes/origin/*\n"
		Expect(os.WriteFile(filepath.Join(repoPath, ".git", "config"), []byte(config), 0644)).To(Succeed())

		origin, err := OriginURL(repoPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(origin).To(Equal(url))

		same, err := IsRepoOriginURL(repoPath, url)
		Expect(err).NotTo(HaveOccurred())
		Expect(same).To(BeTrue())

		same, err = IsRepoOriginURL(repoPath, "https://example.org/repo")
		Expect(err).NotTo(HaveOccurred())
		Expect(same).To(BeFalse())
	})

	It("returns empty without an origin remote", func() {
		config := "[remote \"upstream\"]\n\turl = https://example.org/repo.git\n"
		Expect(os.WriteFile(filepath.Join(repoPath, ".git", "config"), []byte(config), 0644)).To(Succeed())

		same, err := IsRepoOriginURL(repoPath, "https://example.org/repo.git")
		Expect(err).NotTo(HaveOccurred())
		Expect(same).To(BeFalse())
	})

	It("returns empty without a config file", func() {
		origin, err := OriginURL(repoPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(origin).To(BeEmpty())
	})
})
