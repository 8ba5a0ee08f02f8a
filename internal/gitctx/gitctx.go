// Package gitctx collects the version control metadata attached to a publish.
package gitctx

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inovacc/supergraph/internal/application"
	"gopkg.in/ini.v1"
)

// Environment variables that override what is read from the repository
var (
	EnvBranch    = application.EnvPrefix + "_VCS_BRANCH"
	EnvCommit    = application.EnvPrefix + "_VCS_COMMIT"
	EnvAuthor    = application.EnvPrefix + "_VCS_AUTHOR"
	EnvRemoteURL = application.EnvPrefix + "_VCS_REMOTE_URL"
)

// Context is sent to the registry with every publish
type Context struct {
	Branch    string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	Author    string `json:"committer,omitempty" yaml:"committer,omitempty"`
	RemoteURL string `json:"remoteUrl,omitempty" yaml:"remote_url,omitempty"`
}

// Detect reads the repository containing dir and applies the environment
// overrides. A directory outside any repository yields only the overrides.
func Detect(dir string) (Context, error) {
	var ctx Context

	gitDir, err := findGitDir(dir)
	if err == nil {
		ctx, err = fromGitDir(gitDir)
	} else if errors.Is(err, errNoRepository) {
		err = nil
	}

	overrideFromEnv(&ctx)

	return ctx, err
}

var errNoRepository = errors.New("not a git repository")

func overrideFromEnv(ctx *Context) {
	if v := os.Getenv(EnvBranch); v != "" {
		ctx.Branch = v
	}

	if v := os.Getenv(EnvCommit); v != "" {
		ctx.Commit = v
	}

	if v := os.Getenv(EnvAuthor); v != "" {
		ctx.Author = v
	}

	if v := os.Getenv(EnvRemoteURL); v != "" {
		ctx.RemoteURL = sanitizeRemote(v)
	}
}

// findGitDir walks up from dir to the first .git directory, following the
// "gitdir:" indirection used by worktrees and submodules.
func findGitDir(dir string) (string, error) {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(cur, ".git")

		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return candidate, nil
			}

			return readGitFile(candidate)
		}

		next := filepath.Dir(cur)
		if next == cur {
			return "", errNoRepository
		}

		cur = next
	}
}

func readGitFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	target, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:")
	if !ok {
		return "", fmt.Errorf("unrecognized .git file: %s", path)
	}

	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}

	return target, nil
}

func fromGitDir(gitDir string) (Context, error) {
	var ctx Context

	head, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return ctx, fmt.Errorf("failed to read HEAD: %w", err)
	}

	if ref, ok := strings.CutPrefix(strings.TrimSpace(string(head)), "ref: "); ok {
		ctx.Branch = strings.TrimPrefix(ref, "refs/heads/")
		ctx.Commit = resolveRef(gitDir, ref)
	} else {
		ctx.Commit = strings.TrimSpace(string(head))
	}

	cfg, err := ini.Load(filepath.Join(gitDir, "config"))
	if err != nil {
		if os.IsNotExist(err) {
			return ctx, nil
		}

		return ctx, fmt.Errorf("failed to read git config: %w", err)
	}

	if remote := cfg.Section(`remote "origin"`).Key("url").String(); remote != "" {
		ctx.RemoteURL = sanitizeRemote(remote)
	}

	user := cfg.Section("user")
	ctx.Author = formatAuthor(user.Key("name").String(), user.Key("email").String())

	return ctx, nil
}

// resolveRef looks a ref up as a loose file first, then in packed-refs.
func resolveRef(gitDir, ref string) string {
	if data, err := os.ReadFile(filepath.Join(gitDir, filepath.FromSlash(ref))); err == nil {
		return strings.TrimSpace(string(data))
	}

	f, err := os.Open(filepath.Join(gitDir, "packed-refs"))
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "^") {
			continue
		}

		sha, name, ok := strings.Cut(line, " ")
		if ok && name == ref {
			return sha
		}
	}

	return ""
}

func formatAuthor(name, email string) string {
	switch {
	case name != "" && email != "":
		return fmt.Sprintf("%s <%s>", name, email)
	case name != "":
		return name
	default:
		return email
	}
}
