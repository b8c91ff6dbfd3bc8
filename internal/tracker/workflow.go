package tracker

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"gittrack/internal/git"
)

// Outcome is the terminal state of one CommitAndPush run
type Outcome int

const (
	// OutcomeAborted accompanies a fatal error
	OutcomeAborted Outcome = iota
	OutcomeNothingRecorded
	OutcomeDryRun
	OutcomeNotARepo
	OutcomeCleanTree
	OutcomeStageFailed
	OutcomeNothingStaged
	OutcomeEmptyMessage
	OutcomeCommitFailed
	OutcomeNoRemote
	OutcomePushSkipped
	OutcomePushFailed
	OutcomePushed
)

var outcomeNames = map[Outcome]string{
	OutcomeAborted:         "aborted",
	OutcomeNothingRecorded: "nothing-recorded",
	OutcomeDryRun:          "dry-run",
	OutcomeNotARepo:        "not-a-repo",
	OutcomeCleanTree:       "clean-tree",
	OutcomeStageFailed:     "stage-failed",
	OutcomeNothingStaged:   "nothing-staged",
	OutcomeEmptyMessage:    "empty-message",
	OutcomeCommitFailed:    "commit-failed",
	OutcomeNoRemote:        "no-remote",
	OutcomePushSkipped:     "push-skipped",
	OutcomePushFailed:      "push-failed",
	OutcomePushed:          "pushed",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Committed reports whether a commit landed in this run
func (o Outcome) Committed() bool {
	switch o {
	case OutcomeNoRemote, OutcomePushSkipped, OutcomePushFailed, OutcomePushed:
		return true
	}
	return false
}

// CommitOptions controls a CommitAndPush run
type CommitOptions struct {
	// Branch overrides the push target; the current branch is used when empty
	Branch string
	// NoPush suppresses the push even when auto_push is on
	NoPush bool
	// DryRun prints the message that would be committed and stops
	DryRun bool
}

// CommitAndPush stages everything, commits the rendered change log and
// optionally pushes. Ordinary failures are printed and reported through the
// Outcome; the returned error is non-nil only when git could not be run or
// the change log could not be written.
//
// The change log is cleared after every run that commits, except when the
// push fails, so the recorded changes survive for a retry.
func (t *Tracker) CommitAndPush(ctx context.Context, opts CommitOptions) (Outcome, error) {
	if len(t.changes) == 0 {
		t.out.Println("No changes to commit")
		return OutcomeNothingRecorded, nil
	}

	if opts.DryRun {
		t.out.Println(t.CommitMessage())
		return OutcomeDryRun, nil
	}

	isRepo, err := t.git.IsWorkTree(ctx)
	if err != nil {
		return OutcomeAborted, err
	}
	if !isRepo {
		t.out.Failure("Not in a git repository")
		return OutcomeNotARepo, nil
	}

	status, err := t.git.Status(ctx)
	if err != nil {
		return OutcomeAborted, err
	}
	if status == "" {
		t.out.Println("No git changes detected to commit")
		return OutcomeCleanTree, nil
	}

	branch := t.targetBranch(ctx, opts.Branch)
	log := t.log.WithField("branch", branch)

	t.out.Info("Staging changes...")
	staged, err := t.git.StageAll(ctx)
	if err != nil {
		return OutcomeAborted, err
	}
	if !staged {
		t.out.Failure("Failed to stage changes")
		return OutcomeStageFailed, nil
	}

	nothing, err := t.git.NothingStaged(ctx)
	if err != nil {
		return OutcomeAborted, err
	}
	if nothing {
		t.out.Failure("No changes were staged")
		return OutcomeNothingStaged, nil
	}

	message := t.CommitMessage()
	if isEmptyMessage(message) {
		t.out.Failure("Empty commit message, nothing to commit")
		return OutcomeEmptyMessage, nil
	}

	t.out.Info("Committing changes...")
	committed, err := t.git.Commit(ctx, message)
	if err != nil {
		return OutcomeAborted, err
	}
	if !committed {
		t.out.Failure("Failed to commit changes")
		return OutcomeCommitFailed, nil
	}
	log.WithField("changes", len(t.changes)).Info("committed recorded changes")

	if opts.NoPush || !t.cfg.AutoPush {
		t.out.Success("Successfully committed changes (push skipped)")
		return OutcomePushSkipped, t.clear()
	}

	outcome, err := t.push(ctx, branch, log)
	if err != nil || outcome == OutcomePushFailed {
		return outcome, err
	}
	return outcome, t.clear()
}

// targetBranch resolves the override, then the checked-out branch, then the
// configured default
func (t *Tracker) targetBranch(ctx context.Context, override string) string {
	if override != "" {
		return override
	}
	branch, err := t.git.CurrentBranch(ctx)
	if err != nil {
		t.log.WithError(err).Warn("could not determine current branch")
	}
	if err == nil && branch != "" {
		return branch
	}
	return t.cfg.DefaultBranch
}

func (t *Tracker) push(ctx context.Context, branch string, log logrus.FieldLogger) (Outcome, error) {
	t.out.Info("Pushing to remote...")

	hasRemote, err := t.git.HasRemote(ctx, git.DefaultRemote)
	if err != nil {
		return OutcomeAborted, err
	}
	if !hasRemote {
		t.out.Failure(fmt.Sprintf("Remote '%s' not found", git.DefaultRemote))
		t.out.Success("Changes committed successfully (push skipped - no remote)")
		return OutcomeNoRemote, nil
	}

	exists, err := t.git.RemoteBranchExists(ctx, git.DefaultRemote, branch)
	if err != nil {
		return OutcomeAborted, err
	}
	if !exists {
		t.out.Info(fmt.Sprintf("Creating new remote branch '%s'...", branch))
	}

	pushed, err := t.git.Push(ctx, git.DefaultRemote, branch, !exists)
	if err != nil {
		return OutcomeAborted, err
	}
	if !pushed {
		log.Warn("push failed; keeping recorded changes")
		t.out.Failure("Failed to push changes to remote")
		t.out.Println("  Your commits are saved locally. To push later, run:")
		t.out.Warning(fmt.Sprintf("  git push %s %s", git.DefaultRemote, branch))
		return OutcomePushFailed, nil
	}

	t.out.Success(fmt.Sprintf("Successfully pushed changes to %s", branch))
	return OutcomePushed, nil
}
