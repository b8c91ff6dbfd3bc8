package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"gittrack/pkg/errors"
)

// CLIOptions configures a CLIGateway
type CLIOptions struct {
	// Binary is the git executable, "git" when empty
	Binary string
	// Dir is the working directory for every invocation, the process cwd when empty
	Dir string
	// Stdout and Stderr receive the output of commands the user should see
	// (add, commit, push). Queries are always captured.
	Stdout io.Writer
	Stderr io.Writer
	Log    logrus.FieldLogger
}

// CLIGateway runs the git executable for each capability
type CLIGateway struct {
	binary string
	dir    string
	stdout io.Writer
	stderr io.Writer
	log    logrus.FieldLogger
}

type runResult struct {
	stdout   string
	stderr   string
	exitCode int
}

func (r runResult) ok() bool {
	return r.exitCode == 0
}

// NewCLIGateway creates a gateway that shells out to git
func NewCLIGateway(opts CLIOptions) *CLIGateway {
	if opts.Binary == "" {
		opts.Binary = "git"
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return &CLIGateway{
		binary: opts.Binary,
		dir:    opts.Dir,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		log:    opts.Log.WithField("backend", "cli"),
	}
}

// run executes git with args. A non-zero exit is reported through the
// result; only a failure to start the process is returned as an error.
func (g *CLIGateway) run(ctx context.Context, passthrough bool, args ...string) (runResult, error) {
	cmd := exec.CommandContext(ctx, g.binary, args...)
	cmd.Dir = g.dir

	var stdout, stderr bytes.Buffer
	if passthrough {
		cmd.Stdout = io.MultiWriter(&stdout, g.stdout)
		cmd.Stderr = io.MultiWriter(&stderr, g.stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return runResult{}, errors.GitLaunchError(args, ctxErr)
	}

	res := runResult{stdout: stdout.String(), stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(err, &exitErr) {
			return runResult{}, errors.GitLaunchError(args, err)
		}
		res.exitCode = exitErr.ExitCode()
	}

	entry := g.log.WithFields(logrus.Fields{
		"args": strings.Join(args, " "),
		"exit": res.exitCode,
	})
	if res.exitCode != 0 && res.stderr != "" {
		entry = entry.WithField("stderr", strings.TrimSpace(res.stderr))
	}
	entry.Debug("git")

	return res, nil
}

// ModifiedFiles runs git diff --name-only. Outside a repository the
// command fails and the result is empty.
func (g *CLIGateway) ModifiedFiles(ctx context.Context) ([]string, error) {
	res, err := g.run(ctx, false, "diff", "--name-only")
	if err != nil {
		return nil, err
	}
	if !res.ok() {
		return []string{}, nil
	}
	return splitLines(res.stdout), nil
}

// CurrentBranch runs git branch --show-current
func (g *CLIGateway) CurrentBranch(ctx context.Context) (string, error) {
	res, err := g.run(ctx, false, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.stdout), nil
}

// IsWorkTree runs git rev-parse --git-dir
func (g *CLIGateway) IsWorkTree(ctx context.Context) (bool, error) {
	res, err := g.run(ctx, false, "rev-parse", "--git-dir")
	if err != nil {
		return false, err
	}
	return res.ok(), nil
}

// Status runs git status --porcelain
func (g *CLIGateway) Status(ctx context.Context) (string, error) {
	res, err := g.run(ctx, false, "status", "--porcelain")
	if err != nil {
		return "", err
	}
	return res.stdout, nil
}

// StageAll runs git add .
func (g *CLIGateway) StageAll(ctx context.Context) (bool, error) {
	res, err := g.run(ctx, true, "add", ".")
	if err != nil {
		return false, err
	}
	return res.ok(), nil
}

// NothingStaged runs git diff --cached --quiet, which exits 0 when the index matches HEAD
func (g *CLIGateway) NothingStaged(ctx context.Context) (bool, error) {
	res, err := g.run(ctx, false, "diff", "--cached", "--quiet")
	if err != nil {
		return false, err
	}
	return res.ok(), nil
}

// Commit runs git commit -m message
func (g *CLIGateway) Commit(ctx context.Context, message string) (bool, error) {
	res, err := g.run(ctx, true, "commit", "-m", message)
	if err != nil {
		return false, err
	}
	return res.ok(), nil
}

// HasRemote runs git remote get-url remote
func (g *CLIGateway) HasRemote(ctx context.Context, remote string) (bool, error) {
	res, err := g.run(ctx, false, "remote", "get-url", remote)
	if err != nil {
		return false, err
	}
	return res.ok(), nil
}

// RemoteBranchExists runs git ls-remote --heads remote branch
func (g *CLIGateway) RemoteBranchExists(ctx context.Context, remote, branch string) (bool, error) {
	res, err := g.run(ctx, false, "ls-remote", "--heads", remote, branch)
	if err != nil {
		return false, err
	}
	return len(res.stdout) > 0, nil
}

// Push runs git push [-u] remote branch
func (g *CLIGateway) Push(ctx context.Context, remote, branch string, setUpstream bool) (bool, error) {
	args := []string{"push"}
	if setUpstream {
		args = append(args, "-u")
	}
	args = append(args, remote, branch)

	res, err := g.run(ctx, true, args...)
	if err != nil {
		return false, err
	}
	return res.ok(), nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if lines == nil {
		return []string{}
	}
	return lines
}
