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
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/koderover/buildworker/pkg/cli/buildworker/internal/common"
)

var originSection = `remote "` + common.DefaultRemoteName + `"`

// RepoExists reports whether repoPath holds git metadata.
func RepoExists(repoPath string) bool {
	_, err := os.Stat(filepath.Join(repoPath, ".git"))
	return err == nil
}

// OriginURL reads the origin url recorded in repoPath/.git/config.
// It returns an empty string if the config or the origin remote is missing.
func OriginURL(repoPath string) (string, error) {
	configPath := filepath.Join(repoPath, ".git", "config")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return "", nil
	}

	// git only treats # and ; as comments at the start of a line
	cfg, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:         true,
		SkipUnrecognizableLines: true,
		IgnoreInlineComment:     true,
	}, configPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse %s", configPath)
	}

	section, err := cfg.GetSection(originSection)
	if err != nil {
		return "", nil
	}
	return section.Key("url").String(), nil
}

// IsRepoOriginURL reports whether the checkout at repoPath was cloned from repoURL.
func IsRepoOriginURL(repoPath, repoURL string) (bool, error) {
	origin, err := OriginURL(repoPath)
	if err != nil {
		return false, err
	}
	if origin == "" {
		return false, nil
	}
	return SameRepoURL(origin, repoURL), nil
}

// SameRepoURL compares scheme, host and path case-insensitively. User info, query and a
// trailing slash are ignored. Values that are not absolute URLs (scp-like addresses, local
// paths) are compared as case-insensitive strings.
func SameRepoURL(a, b string) bool {
	return strings.EqualFold(normalizeRepoURL(a), normalizeRepoURL(b))
}

func normalizeRepoURL(raw string) string {
	s := strings.TrimSpace(raw)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.TrimSuffix(s, "/")
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + strings.TrimSuffix(u.Path, "/")
}
