// Package git provides the version-control gateway used by the tracker.
//
// Two backends satisfy Gateway: CLIGateway shells out to the git executable
// once per call, NativeGateway uses go-git in process. Boolean results carry
// ordinary outcomes (a failed push, a missing remote); a non-nil error means
// the backend could not run at all and the invocation should stop.
package git

import "context"

// DefaultRemote is the only remote the tracker pushes to
const DefaultRemote = "origin"

// Gateway is the set of version-control capabilities the tracker needs
type Gateway interface {
	// ModifiedFiles lists tracked files with unstaged changes
	ModifiedFiles(ctx context.Context) ([]string, error)
	// CurrentBranch returns the checked-out branch, or "" when detached
	CurrentBranch(ctx context.Context) (string, error)
	// IsWorkTree reports whether the directory is inside a repository
	IsWorkTree(ctx context.Context) (bool, error)
	// Status returns machine-readable status; empty means clean
	Status(ctx context.Context) (string, error)
	// StageAll stages every change in the tree
	StageAll(ctx context.Context) (bool, error)
	// NothingStaged reports whether the index matches HEAD
	NothingStaged(ctx context.Context) (bool, error)
	// Commit records the index with message
	Commit(ctx context.Context, message string) (bool, error)
	// HasRemote reports whether the named remote is configured
	HasRemote(ctx context.Context, remote string) (bool, error)
	// RemoteBranchExists reports whether branch exists on remote
	RemoteBranchExists(ctx context.Context, remote, branch string) (bool, error)
	// Push sends branch to remote, creating upstream tracking when setUpstream is set
	Push(ctx context.Context, remote, branch string, setUpstream bool) (bool, error)
}
