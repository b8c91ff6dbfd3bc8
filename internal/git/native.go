package git

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"
)

// NativeOptions configures a NativeGateway
type NativeOptions struct {
	// Dir is the directory to open, searched upwards for .git; the process cwd when empty
	Dir string
	// Progress receives push progress, os.Stderr when nil
	Progress io.Writer
	Auth     *AuthResolver
	Log      logrus.FieldLogger
}

// NativeGateway implements Gateway with go-git, without the git executable
type NativeGateway struct {
	dir      string
	progress io.Writer
	auth     *AuthResolver
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewNativeGateway creates a go-git backed gateway
func NewNativeGateway(opts NativeOptions) *NativeGateway {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Progress == nil {
		opts.Progress = os.Stderr
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	log := opts.Log.WithField("backend", "native")
	if opts.Auth == nil {
		opts.Auth = NewAuthResolver(NewTokenStore(), log)
	}
	return &NativeGateway{
		dir:      opts.Dir,
		progress: opts.Progress,
		auth:     opts.Auth,
		log:      log,
		now:      time.Now,
	}
}

func (g *NativeGateway) open() (*git.Repository, error) {
	return git.PlainOpenWithOptions(g.dir, &git.PlainOpenOptions{DetectDotGit: true})
}

func (g *NativeGateway) status() (*git.Repository, git.Status, error) {
	repo, err := g.open()
	if err != nil {
		return nil, nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil, err
	}
	st, err := wt.Status()
	if err != nil {
		return nil, nil, err
	}
	return repo, st, nil
}

// ModifiedFiles lists tracked files whose worktree differs from the index
func (g *NativeGateway) ModifiedFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, st, err := g.status()
	if err != nil {
		// git diff outside a repository prints nothing useful either
		g.log.WithError(err).Debug("modified files unavailable")
		return []string{}, nil
	}

	files := []string{}
	for path, fs := range st {
		if fs.Worktree != git.Unmodified && fs.Worktree != git.Untracked {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// CurrentBranch returns the branch HEAD points at, including an unborn one
func (g *NativeGateway) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	repo, err := g.open()
	if err != nil {
		return "", nil
	}
	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", nil
	}
	if head.Type() == plumbing.SymbolicReference && head.Target().IsBranch() {
		return head.Target().Short(), nil
	}
	return "", nil
}

// IsWorkTree reports whether a repository can be opened from the directory
func (g *NativeGateway) IsWorkTree(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := g.open()
	return err == nil, nil
}

// Status renders changed entries as "XY path" lines, porcelain v1 style
func (g *NativeGateway) Status(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, st, err := g.status()
	if err != nil {
		g.log.WithError(err).Debug("status unavailable")
		return "", nil
	}
	return porcelain(st), nil
}

// StageAll is git add -A
func (g *NativeGateway) StageAll(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	repo, err := g.open()
	if err != nil {
		return false, nil
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, nil
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		g.log.WithError(err).Debug("stage failed")
		return false, nil
	}
	return true, nil
}

// NothingStaged reports whether no entry differs between index and HEAD
func (g *NativeGateway) NothingStaged(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, st, err := g.status()
	if err != nil {
		return true, nil
	}
	for _, fs := range st {
		if fs.Staging != git.Unmodified && fs.Staging != git.Untracked {
			return false, nil
		}
	}
	return true, nil
}

// Commit records the index. The author comes from user.name/user.email in
// the repository or global git config.
func (g *NativeGateway) Commit(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	repo, err := g.open()
	if err != nil {
		return false, nil
	}
	sig, err := g.signature(repo)
	if err != nil {
		g.log.WithError(err).Warn("cannot commit without an identity")
		return false, nil
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, nil
	}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: sig})
	if err != nil {
		g.log.WithError(err).Debug("commit failed")
		return false, nil
	}
	g.log.WithField("hash", hash.String()).Debug("committed")
	return true, nil
}

func (g *NativeGateway) signature(repo *git.Repository) (*object.Signature, error) {
	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return nil, err
	}
	name, email := cfg.Author.Name, cfg.Author.Email
	if name == "" {
		name = cfg.User.Name
	}
	if email == "" {
		email = cfg.User.Email
	}
	if name == "" || email == "" {
		return nil, fmt.Errorf("user.name and user.email must be configured")
	}
	return &object.Signature{Name: name, Email: email, When: g.now()}, nil
}

// HasRemote reports whether remote is configured
func (g *NativeGateway) HasRemote(ctx context.Context, remote string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	repo, err := g.open()
	if err != nil {
		return false, nil
	}
	_, err = repo.Remote(remote)
	return err == nil, nil
}

// RemoteBranchExists lists the remote's refs and looks for refs/heads/<branch>.
// An unreachable or empty remote counts as the branch being absent.
func (g *NativeGateway) RemoteBranchExists(ctx context.Context, remote, branch string) (bool, error) {
	repo, err := g.open()
	if err != nil {
		return false, nil
	}
	rem, err := repo.Remote(remote)
	if err != nil {
		return false, nil
	}

	refs, err := rem.ListContext(ctx, &git.ListOptions{Auth: g.auth.ForURL(remoteURL(rem))})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		g.log.WithError(err).WithField("remote", remote).Debug("ls-remote failed")
		return false, nil
	}

	want := plumbing.NewBranchReferenceName(branch)
	for _, ref := range refs {
		if ref.Name() == want {
			return true, nil
		}
	}
	return false, nil
}

// Push pushes refs/heads/<branch> to the same name on remote
func (g *NativeGateway) Push(ctx context.Context, remote, branch string, setUpstream bool) (bool, error) {
	repo, err := g.open()
	if err != nil {
		return false, nil
	}
	rem, err := repo.Remote(remote)
	if err != nil {
		return false, nil
	}

	ref := plumbing.NewBranchReferenceName(branch)
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{config.RefSpec(ref.String() + ":" + ref.String())},
		Auth:       g.auth.ForURL(remoteURL(rem)),
		Progress:   g.progress,
	})
	if f, ok := g.progress.(interface{ Flush() }); ok {
		f.Flush()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil && !stderrors.Is(err, git.NoErrAlreadyUpToDate) {
		g.log.WithError(err).WithField("remote", remote).Debug("push failed")
		fmt.Fprintf(g.progress, "error: %v\n", err)
		return false, nil
	}

	if setUpstream {
		if err := g.setUpstream(repo, remote, branch); err != nil {
			g.log.WithError(err).Warn("pushed, but could not record upstream tracking")
		}
	}
	return true, nil
}

func (g *NativeGateway) setUpstream(repo *git.Repository, remote, branch string) error {
	cfg, err := repo.Config()
	if err != nil {
		return err
	}
	cfg.Branches[branch] = &config.Branch{
		Name:   branch,
		Remote: remote,
		Merge:  plumbing.NewBranchReferenceName(branch),
	}
	return repo.SetConfig(cfg)
}

func remoteURL(rem *git.Remote) string {
	urls := rem.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

func porcelain(st git.Status) string {
	paths := make([]string, 0, len(st))
	for path, fs := range st {
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	for _, path := range paths {
		fs := st[path]
		fmt.Fprintf(&b, "%c%c %s\n", fs.Staging, fs.Worktree, path)
	}
	return b.String()
}
