// Package tracker records changes between commits and turns them into a
// single structured commit.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"gittrack/internal/changelog"
	"gittrack/internal/config"
	"gittrack/internal/git"
	"gittrack/internal/ui"
)

// Options wires a Tracker to its stores and collaborators
type Options struct {
	Config  *config.Config
	Store   *changelog.Store
	Gateway git.Gateway
	Printer *ui.Printer
	Log     logrus.FieldLogger
}

// Tracker owns the in-memory change log for one invocation and is its only writer
type Tracker struct {
	cfg     *config.Config
	store   *changelog.Store
	changes []changelog.Change
	git     git.Gateway
	out     *ui.Printer
	log     logrus.FieldLogger
	now     func() time.Time
}

// New creates a tracker and loads the change log
func New(opts Options) (*Tracker, error) {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}

	changes, err := opts.Store.Load()
	if err != nil {
		return nil, err
	}

	return &Tracker{
		cfg:     opts.Config,
		store:   opts.Store,
		changes: changes,
		git:     opts.Gateway,
		out:     opts.Printer,
		log:     opts.Log.WithField("component", "tracker"),
		now:     time.Now,
	}, nil
}

// Config returns the loaded configuration
func (t *Tracker) Config() *config.Config {
	return t.cfg
}

// Changes returns a copy of the recorded changes in append order
func (t *Tracker) Changes() []changelog.Change {
	out := make([]changelog.Change, len(t.changes))
	copy(out, t.changes)
	return out
}

// AddChange records description under changeType, snapshotting the files
// currently modified in the working tree. An empty changeType means feature.
func (t *Tracker) AddChange(ctx context.Context, description, changeType string) (changelog.Change, error) {
	if changeType == "" {
		changeType = config.FallbackType
	}

	files, err := t.git.ModifiedFiles(ctx)
	if err != nil {
		return changelog.Change{}, err
	}
	if files == nil {
		files = []string{}
	}

	change := changelog.Change{
		Timestamp:   changelog.NewTimestamp(t.now()),
		Type:        changeType,
		Description: description,
		Files:       files,
	}

	t.changes = append(t.changes, change)
	if err := t.store.Save(t.changes); err != nil {
		t.changes = t.changes[:len(t.changes)-1]
		return changelog.Change{}, err
	}

	t.log.WithFields(logrus.Fields{
		"type":  changeType,
		"files": len(files),
	}).Debug("recorded change")

	t.out.Success(fmt.Sprintf("Recorded %s: %s", changeType, description))
	if len(files) > 0 {
		t.out.Println("  Modified files: " + strings.Join(files, ", "))
	}
	return change, nil
}

// clear empties the change log in memory and on disk
func (t *Tracker) clear() error {
	if err := t.store.Save([]changelog.Change{}); err != nil {
		return err
	}
	t.changes = []changelog.Change{}
	t.log.Debug("cleared change log")
	return nil
}
