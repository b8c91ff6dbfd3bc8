// Package changelog persists the ordered list of recorded changes.
package changelog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/sirupsen/logrus"

	"gittrack/internal/common"
	"gittrack/pkg/errors"
)

// Change is one recorded unit of work
type Change struct {
	Timestamp   Timestamp `json:"timestamp" yaml:"timestamp"`
	Type        string    `json:"type" yaml:"type"`
	Description string    `json:"description" yaml:"description"`
	Files       []string  `json:"files" yaml:"files"`
}

// Store reads and rewrites the change log file
type Store struct {
	path string
	log  logrus.FieldLogger
}

// NewStore creates a change log store backed by path
func NewStore(path string, log logrus.FieldLogger) *Store {
	return &Store{path: path, log: log.WithField("store", "changes")}
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// Load returns the recorded changes in append order. A missing file is an
// empty log and is not created until the first Save.
func (s *Store) Load() ([]Change, error) {
	exists, err := common.FileExists(s.path)
	if err != nil {
		return nil, errors.ChangeLogError(s.path, err)
	}
	if !exists {
		s.log.WithField("path", s.path).Debug("no change log yet")
		return []Change{}, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.ChangeLogError(s.path, err)
	}

	var changes []Change
	if err := json.Unmarshal(data, &changes); err != nil {
		return nil, errors.ChangeLogError(s.path, err)
	}
	if changes == nil {
		changes = []Change{}
	}

	s.log.WithFields(logrus.Fields{
		"path":    s.path,
		"changes": len(changes),
	}).Debug("loaded change log")
	return changes, nil
}

// Save replaces the whole change log with changes
func (s *Store) Save(changes []Change) error {
	out := make([]Change, len(changes))
	copy(out, changes)
	for i := range out {
		if out[i].Files == nil {
			out[i].Files = []string{}
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeChangeLogWrite, "Failed to encode recorded changes")
	}

	if err := writeStore(s.path, data); err != nil {
		return errors.Wrap(err, errors.ErrCodeChangeLogWrite, fmt.Sprintf("Failed to write %s", s.path)).
			WithSeverity(errors.SeverityCritical).
			WithContext("path", s.path)
	}

	s.log.WithFields(logrus.Fields{
		"path":    s.path,
		"changes": len(changes),
	}).Debug("saved change log")
	return nil
}

func writeStore(path string, data []byte) error {
	if err := common.EnsureDir(path); err != nil {
		return err
	}
	return renameio.WriteFile(path, data, common.FilePermissionNormal)
}
