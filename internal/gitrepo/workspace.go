// Package gitrepo materializes repositories at specific commits into
// disposable on-disk workspaces by shelling out to git.
package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Synthetic branch names given to the two sides of a merge so that tool
// scripts can refer to them by a fixed name.
const (
	TempLeftBranch  = "TEMP_LEFT_BRANCH"
	TempRightBranch = "TEMP_RIGHT_BRANCH"
)

// Manager creates and destroys workspaces under a single scratch root.
// Workspace paths are fixed by (workspace name, repo slug), so access to a
// given workspace must not be concurrent; the evaluation pipeline is
// sequential by design.
type Manager struct {
	// Root is the scratch directory holding all workspaces, e.g. "./repos".
	Root string
	// CloneURLPrefix is prepended to a repository slug to form the clone
	// URL. Defaults to "https://github.com/".
	CloneURLPrefix string
	Logger         zerolog.Logger
}

// Workspace is one repository checked out under the scratch root. The
// working tree lives at <root>/<name>/<repo-slug>.
type Workspace struct {
	dir    string
	repo   string
	logger zerolog.Logger
}

// CleanAll removes the entire scratch root. Run this before every
// evaluation so a rerun of the same repository never sees leftover state.
func (m *Manager) CleanAll() error {
	return os.RemoveAll(m.Root)
}

// Acquire clones repoSlug into the workspace directory named name and
// returns a handle to the working tree. The target directory must not
// already exist (CleanAll guarantees that at the start of a run).
func (m *Manager) Acquire(ctx context.Context, repoSlug, name string) (*Workspace, error) {
	dir := filepath.Join(m.Root, name, filepath.FromSlash(repoSlug))
	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory: %w", err)
	}

	prefix := m.CloneURLPrefix
	if prefix == "" {
		prefix = "https://github.com/"
	}
	url := prefix + repoSlug + ".git"

	m.Logger.Info().Str("repo", repoSlug).Str("workspace", name).Msg("cloning repository")
	cmd := exec.CommandContext(ctx, "git", "clone", "--", url, dir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("exec `git clone` failed: %s. Output was:\n\n%s", err, out)
	}

	return &Workspace{dir: dir, repo: repoSlug, logger: m.Logger}, nil
}

// Dir returns the path of the working tree.
func (w *Workspace) Dir() string {
	return w.dir
}

// FileAt returns the absolute path of a repo-relative file in this
// workspace.
func (w *Workspace) FileAt(relPath string) string {
	return filepath.Join(w.dir, filepath.FromSlash(relPath))
}

// Fetch refreshes the remote refs. Required before checking out shas that
// may not be known to the local clone.
func (w *Workspace) Fetch(ctx context.Context) error {
	_, err := w.run(ctx, "fetch", "--all")
	return err
}

// CheckoutForce checks out ref, discarding any local state. Submodules are
// synchronized afterwards so the working tree fully matches the ref.
func (w *Workspace) CheckoutForce(ctx context.Context, ref string) error {
	if err := checkSpecArgSafety(ref); err != nil {
		return err
	}
	w.logger.Info().Str("repo", w.repo).Str("ref", ref).Msg("checking out")
	if _, err := w.run(ctx, "checkout", "--force", ref); err != nil {
		return err
	}
	return w.submoduleUpdate(ctx)
}

// CheckoutNewBranch creates (or resets) a branch at the current HEAD and
// switches to it.
func (w *Workspace) CheckoutNewBranch(ctx context.Context, name string) error {
	if err := checkSpecArgSafety(name); err != nil {
		return err
	}
	_, err := w.run(ctx, "checkout", "--force", "-B", name)
	return err
}

// MergeBase returns the best common ancestor of two refs.
func (w *Workspace) MergeBase(ctx context.Context, a, b string) (string, error) {
	if err := checkSpecArgSafety(a); err != nil {
		return "", err
	}
	if err := checkSpecArgSafety(b); err != nil {
		return "", err
	}
	out, err := w.run(ctx, "merge-base", a, b)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Toplevel returns the absolute path of the working tree root as git sees
// it. Tool scripts receive this path as their first argument.
func (w *Workspace) Toplevel(ctx context.Context) (string, error) {
	out, err := w.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Remove deletes the working tree.
func (w *Workspace) Remove() error {
	return os.RemoveAll(w.dir)
}

func (w *Workspace) submoduleUpdate(ctx context.Context) error {
	_, err := w.run(ctx, "submodule", "update", "--init", "--recursive")
	return err
}

func (w *Workspace) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = w.dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("exec `git %s` failed: %s. Output was:\n\n%s", args[0], err, out)
	}
	return string(out), nil
}

// checkSpecArgSafety returns a non-nil err if spec begins with a "-", which
// could cause it to be interpreted as a git command line argument.
func checkSpecArgSafety(spec string) error {
	if strings.HasPrefix(spec, "-") {
		return errors.New("invalid git revision spec (begins with '-')")
	}
	return nil
}
