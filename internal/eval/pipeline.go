package eval

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kilupskalvis/mergebench/internal/gitrepo"
	"github.com/kilupskalvis/mergebench/internal/models"
)

// Fixed workspace names under the scratch root. One merge-attempt
// workspace per tool under test, one for the programmer merge, one for the
// base version.
const (
	wsMergeAttempt    = "merge_attempt"
	wsMergeAttempt1   = "merge_attempt1"
	wsMergeAttempt2   = "merge_attempt2"
	wsProgrammerMerge = "programmer_merge"
	wsBase            = "base"
)

// ErrCheckoutFailed wraps git failures while materializing a workspace, so
// callers can report them as the Git_checkout_failed outcome state.
var ErrCheckoutFailed = errors.New("git checkout failed")

// RepoWorkspace is a repository materialized at a commit or synthetic
// branch. Implemented by *gitrepo.Workspace; tests substitute fakes.
type RepoWorkspace interface {
	Fetch(ctx context.Context) error
	CheckoutForce(ctx context.Context, ref string) error
	CheckoutNewBranch(ctx context.Context, name string) error
	MergeBase(ctx context.Context, a, b string) (string, error)
	Toplevel(ctx context.Context) (string, error)
	FileAt(relPath string) string
	Remove() error
}

// WorkspaceManager creates workspaces and destroys the scratch root.
type WorkspaceManager interface {
	CleanAll() error
	Acquire(ctx context.Context, repoSlug, name string) (RepoWorkspace, error)
}

// gitWorkspaces adapts *gitrepo.Manager to the WorkspaceManager interface.
type gitWorkspaces struct {
	m *gitrepo.Manager
}

// NewGitWorkspaces wraps a gitrepo.Manager for use by the pipeline.
func NewGitWorkspaces(m *gitrepo.Manager) WorkspaceManager {
	return gitWorkspaces{m: m}
}

func (g gitWorkspaces) CleanAll() error {
	return g.m.CleanAll()
}

func (g gitWorkspaces) Acquire(ctx context.Context, repoSlug, name string) (RepoWorkspace, error) {
	return g.m.Acquire(ctx, repoSlug, name)
}

// Pipeline wires the evaluation stages together. Each scenario runs
// start-to-finish (checkout, invoke, extract, diff, write) with no overlap
// of workspace usage; every run begins and ends by destroying the scratch
// root so reruns never observe stale state.
type Pipeline struct {
	Workspaces WorkspaceManager
	Invoker    ToolInvoker
	Comparator FileComparator
	Writer     RecordWriter
	Logger     zerolog.Logger
}

// Analyze evaluates a single tool on a scenario: reproduce the merge,
// extract the conflicting files, and diff each one against the base
// version and the programmer merge. The base version comes from the
// scenario's recorded base sha. Returns the persisted diff records; an
// empty result means the tool merged cleanly and nothing was diffed.
func (p *Pipeline) Analyze(ctx context.Context, tool models.Tool, sc *models.Scenario) ([]*models.DiffRecord, error) {
	if err := p.Workspaces.CleanAll(); err != nil {
		return nil, fmt.Errorf("failed to clean workspaces: %w", err)
	}
	defer p.Workspaces.CleanAll()

	attempt, err := p.prepareAttempt(ctx, sc, wsMergeAttempt)
	if err != nil {
		return nil, err
	}

	conflicts, err := p.runTool(ctx, tool, attempt)
	if err != nil {
		return nil, err
	}
	if len(conflicts) == 0 {
		p.Logger.Info().Str("scenario", sc.ID).Str("tool", tool.String()).Msg("clean merge, no conflict files to diff")
		return nil, nil
	}

	programmer, err := p.checkoutAt(ctx, sc, wsProgrammerMerge, sc.MergeSHA)
	if err != nil {
		return nil, err
	}
	base, err := p.checkoutAt(ctx, sc, wsBase, sc.BaseSHA)
	if err != nil {
		return nil, err
	}

	return p.diffAll(ctx, sc, tool, conflicts, base, attempt, programmer)
}

// ComparePair evaluates two competing tools side by side on a scenario.
// The base version is located via `git merge-base` of the two temp
// branches rather than the recorded base sha. The conflicting file set is
// taken from the first tool's output; both tools' merge attempts are then
// diffed for every file in it.
func (p *Pipeline) ComparePair(ctx context.Context, toolA, toolB models.Tool, sc *models.Scenario) ([]*models.DiffRecord, error) {
	if err := p.Workspaces.CleanAll(); err != nil {
		return nil, fmt.Errorf("failed to clean workspaces: %w", err)
	}
	defer p.Workspaces.CleanAll()

	attemptA, err := p.prepareAttempt(ctx, sc, wsMergeAttempt1)
	if err != nil {
		return nil, err
	}

	baseSHA, err := attemptA.MergeBase(ctx, gitrepo.TempLeftBranch, gitrepo.TempRightBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to find merge base: %w", err)
	}
	p.Logger.Info().Str("scenario", sc.ID).Str("base", baseSHA).Msg("found merge base")

	base, err := p.checkoutAt(ctx, sc, wsBase, baseSHA)
	if err != nil {
		return nil, err
	}

	conflicts, err := p.runTool(ctx, toolA, attemptA)
	if err != nil {
		return nil, err
	}
	if len(conflicts) == 0 {
		p.Logger.Info().Str("scenario", sc.ID).Str("tool", toolA.String()).Msg("clean merge, no conflict files to diff")
		return nil, nil
	}

	programmer, err := p.checkoutAt(ctx, sc, wsProgrammerMerge, sc.MergeSHA)
	if err != nil {
		return nil, err
	}

	attemptB, err := p.prepareAttempt(ctx, sc, wsMergeAttempt2)
	if err != nil {
		return nil, err
	}
	if _, err := p.runTool(ctx, toolB, attemptB); err != nil {
		return nil, err
	}

	records, err := p.diffAll(ctx, sc, toolA, conflicts, base, attemptA, programmer)
	if err != nil {
		return nil, err
	}
	recordsB, err := p.diffAll(ctx, sc, toolB, conflicts, base, attemptB, programmer)
	if err != nil {
		return nil, err
	}
	return append(records, recordsB...), nil
}

// prepareAttempt clones the repository and sets up the two synthetic
// branches a merge tool operates on: TEMP_LEFT_BRANCH at the left sha and
// TEMP_RIGHT_BRANCH at the right sha, leaving HEAD on the right branch.
func (p *Pipeline) prepareAttempt(ctx context.Context, sc *models.Scenario, name string) (RepoWorkspace, error) {
	ws, err := p.Workspaces.Acquire(ctx, sc.Repository, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	if err := ws.Fetch(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	if err := ws.CheckoutForce(ctx, sc.LeftSHA); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	if err := ws.CheckoutNewBranch(ctx, gitrepo.TempLeftBranch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	if err := ws.CheckoutForce(ctx, sc.RightSHA); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	if err := ws.CheckoutNewBranch(ctx, gitrepo.TempRightBranch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	return ws, nil
}

// checkoutAt clones the repository into workspace `name` at the given ref.
func (p *Pipeline) checkoutAt(ctx context.Context, sc *models.Scenario, name, ref string) (RepoWorkspace, error) {
	ws, err := p.Workspaces.Acquire(ctx, sc.Repository, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	if err := ws.Fetch(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	if err := ws.CheckoutForce(ctx, ref); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	return ws, nil
}

func (p *Pipeline) runTool(ctx context.Context, tool models.Tool, attempt RepoWorkspace) ([]string, error) {
	toplevel, err := attempt.Toplevel(ctx)
	if err != nil {
		return nil, err
	}
	out, err := p.Invoker.Invoke(ctx, tool, toplevel, gitrepo.TempLeftBranch, gitrepo.TempRightBranch)
	if err != nil {
		return nil, err
	}
	return ExtractConflicts(out), nil
}

func (p *Pipeline) diffAll(ctx context.Context, sc *models.Scenario, tool models.Tool, conflicts []string, base, attempt, programmer RepoWorkspace) ([]*models.DiffRecord, error) {
	var records []*models.DiffRecord
	for _, file := range conflicts {
		rec, err := p.Comparator.Compare(ctx, base.FileAt(file), attempt.FileAt(file), programmer.FileAt(file))
		if err != nil {
			return records, err
		}
		rec.ScenarioID = sc.ID
		rec.Tool = tool
		rec.File = file

		path, err := p.Writer.Write(rec)
		if err != nil {
			return records, err
		}
		p.Logger.Info().Str("scenario", sc.ID).Str("tool", tool.String()).Str("file", file).Str("path", path).Msg("diff results saved")
		records = append(records, rec)
	}
	return records, nil
}
