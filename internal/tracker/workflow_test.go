package tracker

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gittrack/internal/changelog"
	"gittrack/internal/config"
	"gittrack/internal/git"
	"gittrack/pkg/errors"
)

const dirtyStatus = " M main.go\n"

func seeded() []changelog.Change {
	return []changelog.Change{change("feature", "X", "main.go"), change("fix", "Y")}
}

// primeCommit expects a successful run up to and including the commit
func primeCommit(f *fixture, branch string) {
	f.gw.OnRepository(branch, dirtyStatus)
	f.gw.On("StageAll", mock.Anything).Return(true, nil).Once()
	f.gw.On("NothingStaged", mock.Anything).Return(false, nil).Once()
	f.gw.On("Commit", mock.Anything, "feat: X\n\n- main.go\n\nfix: Y").Return(true, nil).Once()
}

func TestCommitNothingRecorded(t *testing.T) {
	f := newFixture(t, nil)

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomeNothingRecorded, outcome)
	assert.Equal(t, "No changes to commit\n", f.out.String())
	f.gw.AssertNotCalled(t, "IsWorkTree", mock.Anything)
	f.gw.AssertNotCalled(t, "StageAll", mock.Anything)
	f.gw.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestCommitDryRun(t *testing.T) {
	f := newFixture(t, nil, seeded()...)

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, OutcomeDryRun, outcome)
	assert.Equal(t, "feat: X\n\n- main.go\n\nfix: Y\n", f.out.String())
	assert.Len(t, f.stored(t), 2)
}

func TestCommitNotARepository(t *testing.T) {
	f := newFixture(t, nil, seeded()...)
	f.gw.On("IsWorkTree", mock.Anything).Return(false, nil).Once()

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomeNotARepo, outcome)
	assert.Equal(t, "❌ Not in a git repository\n", f.out.String())
	assert.Len(t, f.stored(t), 2)
}

func TestCommitCleanTree(t *testing.T) {
	f := newFixture(t, nil, seeded()...)
	before, err := os.ReadFile(f.path)
	require.NoError(t, err)

	f.gw.On("IsWorkTree", mock.Anything).Return(true, nil).Once()
	f.gw.On("Status", mock.Anything).Return("", nil).Once()

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomeCleanTree, outcome)
	assert.Equal(t, "No git changes detected to commit\n", f.out.String())
	f.gw.AssertNotCalled(t, "StageAll", mock.Anything)
	f.gw.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
	f.gw.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	after, err := os.ReadFile(f.path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCommitStageFailed(t *testing.T) {
	f := newFixture(t, nil, seeded()...)
	f.gw.OnRepository("main", dirtyStatus)
	f.gw.On("StageAll", mock.Anything).Return(false, nil).Once()

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomeStageFailed, outcome)
	assert.Equal(t, "Staging changes...\n❌ Failed to stage changes\n", f.out.String())
	assert.Len(t, f.stored(t), 2)
}

func TestCommitNothingStaged(t *testing.T) {
	f := newFixture(t, nil, seeded()...)
	f.gw.OnRepository("main", dirtyStatus)
	f.gw.On("StageAll", mock.Anything).Return(true, nil).Once()
	f.gw.On("NothingStaged", mock.Anything).Return(true, nil).Once()

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomeNothingStaged, outcome)
	assert.Contains(t, f.out.String(), "❌ No changes were staged\n")
	f.gw.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestCommitEmptyMessage(t *testing.T) {
	cfg := config.Default()
	cfg.CommitTemplates["feature"] = ""
	f := newFixture(t, cfg, change("feature", "X"))
	f.gw.OnRepository("main", dirtyStatus)
	f.gw.On("StageAll", mock.Anything).Return(true, nil).Once()
	f.gw.On("NothingStaged", mock.Anything).Return(false, nil).Once()

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomeEmptyMessage, outcome)
	assert.Equal(t, "Staging changes...\n❌ Empty commit message, nothing to commit\n", f.out.String())
	f.gw.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
	assert.Len(t, f.stored(t), 1)
}

func TestCommitWhitespaceMessageReachesGit(t *testing.T) {
	cfg := config.Default()
	cfg.CommitTemplates["feature"] = "  "
	f := newFixture(t, cfg, change("feature", "X"))
	f.gw.OnRepository("main", dirtyStatus)
	f.gw.On("StageAll", mock.Anything).Return(true, nil).Once()
	f.gw.On("NothingStaged", mock.Anything).Return(false, nil).Once()
	f.gw.On("Commit", mock.Anything, "  ").Return(false, nil).Once()

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomeCommitFailed, outcome)
	assert.Contains(t, f.out.String(), "❌ Failed to commit changes\n")
	assert.Len(t, f.stored(t), 1)
}

func TestCommitFailed(t *testing.T) {
	f := newFixture(t, nil, seeded()...)
	f.gw.OnRepository("main", dirtyStatus)
	f.gw.On("StageAll", mock.Anything).Return(true, nil).Once()
	f.gw.On("NothingStaged", mock.Anything).Return(false, nil).Once()
	f.gw.On("Commit", mock.Anything, mock.Anything).Return(false, nil).Once()

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomeCommitFailed, outcome)
	assert.False(t, outcome.Committed())
	assert.Equal(t, "Staging changes...\nCommitting changes...\n❌ Failed to commit changes\n", f.out.String())
	assert.Len(t, f.tracker.Changes(), 2)
	assert.Len(t, f.stored(t), 2)
}

func TestCommitPushSkippedByFlag(t *testing.T) {
	f := newFixture(t, nil, seeded()...)
	primeCommit(f, "main")

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{NoPush: true})
	require.NoError(t, err)

	assert.Equal(t, OutcomePushSkipped, outcome)
	assert.Equal(t, "Staging changes...\nCommitting changes...\n✓ Successfully committed changes (push skipped)\n", f.out.String())
	f.gw.AssertNotCalled(t, "HasRemote", mock.Anything, mock.Anything)
	assert.Empty(t, f.tracker.Changes())
	assert.Empty(t, f.stored(t))
}

func TestCommitPushSkippedByConfig(t *testing.T) {
	cfg := config.Default()
	cfg.AutoPush = false
	f := newFixture(t, cfg, seeded()...)
	primeCommit(f, "main")

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomePushSkipped, outcome)
	f.gw.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.stored(t))
}

func TestCommitNoRemote(t *testing.T) {
	f := newFixture(t, nil, seeded()...)
	primeCommit(f, "main")
	f.gw.On("HasRemote", mock.Anything, git.DefaultRemote).Return(false, nil).Once()

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomeNoRemote, outcome)
	assert.True(t, outcome.Committed())
	assert.Equal(t, "Staging changes...\n"+
		"Committing changes...\n"+
		"Pushing to remote...\n"+
		"❌ Remote 'origin' not found\n"+
		"✓ Changes committed successfully (push skipped - no remote)\n", f.out.String())
	f.gw.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.tracker.Changes())
	assert.Empty(t, f.stored(t))
}

func TestCommitPushCreatesRemoteBranch(t *testing.T) {
	f := newFixture(t, nil, seeded()...)
	primeCommit(f, "feature/login")
	f.gw.On("HasRemote", mock.Anything, git.DefaultRemote).Return(true, nil).Once()
	f.gw.On("RemoteBranchExists", mock.Anything, git.DefaultRemote, "feature/login").Return(false, nil).Once()
	f.gw.On("Push", mock.Anything, git.DefaultRemote, "feature/login", true).Return(true, nil).Once()

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomePushed, outcome)
	assert.Contains(t, f.out.String(), "Creating new remote branch 'feature/login'...\n")
	assert.Contains(t, f.out.String(), "✓ Successfully pushed changes to feature/login\n")
	assert.Empty(t, f.stored(t))
}

func TestCommitPushUpdatesRemoteBranch(t *testing.T) {
	f := newFixture(t, nil, seeded()...)
	primeCommit(f, "main")
	f.gw.On("HasRemote", mock.Anything, git.DefaultRemote).Return(true, nil).Once()
	f.gw.On("RemoteBranchExists", mock.Anything, git.DefaultRemote, "main").Return(true, nil).Once()
	f.gw.On("Push", mock.Anything, git.DefaultRemote, "main", false).Return(true, nil).Once()

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomePushed, outcome)
	assert.NotContains(t, f.out.String(), "Creating new remote branch")
	assert.Empty(t, f.tracker.Changes())
}

func TestCommitPushFailedKeepsLog(t *testing.T) {
	f := newFixture(t, nil, seeded()...)
	before, err := os.ReadFile(f.path)
	require.NoError(t, err)

	primeCommit(f, "main")
	f.gw.On("HasRemote", mock.Anything, git.DefaultRemote).Return(true, nil).Once()
	f.gw.On("RemoteBranchExists", mock.Anything, git.DefaultRemote, "main").Return(true, nil).Once()
	f.gw.On("Push", mock.Anything, git.DefaultRemote, "main", false).Return(false, nil).Once()

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, OutcomePushFailed, outcome)
	assert.True(t, outcome.Committed())
	assert.Contains(t, f.out.String(), "❌ Failed to push changes to remote\n"+
		"  Your commits are saved locally. To push later, run:\n"+
		"  git push origin main\n")

	kept := f.tracker.Changes()
	require.Len(t, kept, 2)
	assert.Equal(t, "X", kept[0].Description)
	assert.Equal(t, "Y", kept[1].Description)
	after, err := os.ReadFile(f.path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCommitClearFailureIsFatal(t *testing.T) {
	tests := []struct {
		name     string
		opts     CommitOptions
		prime    func(f *fixture)
		expected Outcome
	}{
		{
			name:     "push skipped",
			opts:     CommitOptions{NoPush: true},
			prime:    func(f *fixture) {},
			expected: OutcomePushSkipped,
		},
		{
			name: "no remote",
			prime: func(f *fixture) {
				f.gw.On("HasRemote", mock.Anything, git.DefaultRemote).Return(false, nil).Once()
			},
			expected: OutcomeNoRemote,
		},
		{
			name: "pushed",
			prime: func(f *fixture) {
				f.gw.On("HasRemote", mock.Anything, git.DefaultRemote).Return(true, nil).Once()
				f.gw.On("RemoteBranchExists", mock.Anything, git.DefaultRemote, "main").Return(true, nil).Once()
				f.gw.On("Push", mock.Anything, git.DefaultRemote, "main", false).Return(true, nil).Once()
			},
			expected: OutcomePushed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil, seeded()...)
			primeCommit(f, "main")
			tt.prime(f)
			f.blockStore(t)

			outcome, err := f.tracker.CommitAndPush(context.Background(), tt.opts)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeChangeLogWrite, errors.GetErrorCode(err))
			assert.Equal(t, tt.expected, outcome)
			assert.True(t, outcome.Committed())
			assert.Len(t, f.tracker.Changes(), 2, "the log is only cleared once it is persisted")
		})
	}
}

func TestCommitBranchResolution(t *testing.T) {
	tests := []struct {
		name     string
		override string
		current  string
		curErr   error
		expected string
	}{
		{name: "override wins", override: "release", current: "main", expected: "release"},
		{name: "current branch", current: "develop", expected: "develop"},
		{name: "detached head uses default", current: "", expected: "trunk"},
		{name: "branch query failure uses default", curErr: fmt.Errorf("boom"), expected: "trunk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.DefaultBranch = "trunk"
			f := newFixture(t, cfg, seeded()...)

			f.gw.On("IsWorkTree", mock.Anything).Return(true, nil).Once()
			f.gw.On("Status", mock.Anything).Return(dirtyStatus, nil).Once()
			f.gw.On("CurrentBranch", mock.Anything).Return(tt.current, tt.curErr).Maybe()
			f.gw.On("StageAll", mock.Anything).Return(true, nil).Once()
			f.gw.On("NothingStaged", mock.Anything).Return(false, nil).Once()
			f.gw.On("Commit", mock.Anything, mock.Anything).Return(true, nil).Once()
			f.gw.On("HasRemote", mock.Anything, git.DefaultRemote).Return(true, nil).Once()
			f.gw.On("RemoteBranchExists", mock.Anything, git.DefaultRemote, tt.expected).Return(true, nil).Once()
			f.gw.On("Push", mock.Anything, git.DefaultRemote, tt.expected, false).Return(true, nil).Once()

			outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{Branch: tt.override})
			require.NoError(t, err)
			assert.Equal(t, OutcomePushed, outcome)
			if tt.override != "" {
				f.gw.AssertNotCalled(t, "CurrentBranch", mock.Anything)
			}
		})
	}
}

func TestCommitLaunchFailureIsFatal(t *testing.T) {
	f := newFixture(t, nil, seeded()...)
	launchErr := errors.GitLaunchError([]string{"rev-parse", "--git-dir"}, fmt.Errorf("executable not found"))
	f.gw.On("IsWorkTree", mock.Anything).Return(false, launchErr).Once()

	outcome, err := f.tracker.CommitAndPush(context.Background(), CommitOptions{})
	require.Error(t, err)

	assert.Equal(t, OutcomeAborted, outcome)
	assert.Equal(t, errors.ErrCodeGitLaunch, errors.GetErrorCode(err))
	assert.Empty(t, f.out.String())
	assert.Len(t, f.stored(t), 2)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "pushed", OutcomePushed.String())
	assert.Equal(t, "no-remote", OutcomeNoRemote.String())
	assert.Equal(t, "outcome(99)", Outcome(99).String())
	assert.False(t, OutcomeCleanTree.Committed())
}
