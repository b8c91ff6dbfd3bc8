package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/renameio/v2"
	"github.com/sirupsen/logrus"

	"gittrack/internal/common"
	"gittrack/pkg/errors"
)

// FallbackType is the change type whose template is used for unknown types
const FallbackType = "feature"

// MessagePlaceholder is replaced by the change description in a template
const MessagePlaceholder = "{message}"

// Config is the operator-adjustable behaviour persisted in the config store
type Config struct {
	DefaultBranch   string            `json:"default_branch"`
	CommitTemplates map[string]string `json:"commit_templates"`
	AutoPush        bool              `json:"auto_push"`
}

// Default returns the built-in configuration written on first run
func Default() *Config {
	return &Config{
		DefaultBranch: "main",
		CommitTemplates: map[string]string{
			"feature":  "feat: {message}",
			"fix":      "fix: {message}",
			"docs":     "docs: {message}",
			"style":    "style: {message}",
			"refactor": "refactor: {message}",
			"test":     "test: {message}",
			"chore":    "chore: {message}",
		},
		AutoPush: true,
	}
}

// Template returns the template for changeType, falling back to the feature
// template. When the config has no feature entry either, the bare placeholder
// is used so the description passes through unchanged.
func (c *Config) Template(changeType string) string {
	if tmpl, ok := c.CommitTemplates[changeType]; ok {
		return tmpl
	}
	if tmpl, ok := c.CommitTemplates[FallbackType]; ok {
		return tmpl
	}
	return MessagePlaceholder
}

// Types returns the configured change types, feature first and the rest sorted
func (c *Config) Types() []string {
	types := make([]string, 0, len(c.CommitTemplates))
	if _, ok := c.CommitTemplates[FallbackType]; ok {
		types = append(types, FallbackType)
	}
	rest := make([]string, 0, len(c.CommitTemplates))
	for t := range c.CommitTemplates {
		if t != FallbackType {
			rest = append(rest, t)
		}
	}
	sort.Strings(rest)
	return append(types, rest...)
}

// Store loads the config store and seeds it on first run
type Store struct {
	path string
	log  logrus.FieldLogger
}

// NewStore creates a config store backed by path
func NewStore(path string, log logrus.FieldLogger) *Store {
	return &Store{path: path, log: log.WithField("store", "config")}
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// Load reads the config store. When the file is absent the defaults are
// written out immediately so later runs see a stable config. The file is
// never rewritten once it exists.
func (s *Store) Load() (*Config, error) {
	exists, err := common.FileExists(s.path)
	if err != nil {
		return nil, errors.ConfigError(s.path, err)
	}

	if !exists {
		cfg := Default()
		if err := s.write(cfg); err != nil {
			return nil, err
		}
		s.log.WithField("path", s.path).Info("wrote default configuration")
		return cfg, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.ConfigError(s.path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.ConfigError(s.path, err)
	}
	if cfg.CommitTemplates == nil {
		cfg.CommitTemplates = map[string]string{}
	}
	if _, ok := cfg.CommitTemplates[FallbackType]; !ok {
		s.log.WithField("path", s.path).Warnf("no %q template configured; unknown change types will use the bare description", FallbackType)
	}

	s.log.WithFields(logrus.Fields{
		"path":      s.path,
		"templates": len(cfg.CommitTemplates),
	}).Debug("loaded configuration")
	return &cfg, nil
}

func (s *Store) write(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigWrite, "Failed to encode default configuration")
	}
	if err := writeStore(s.path, data); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigWrite, fmt.Sprintf("Failed to write %s", s.path)).
			WithSeverity(errors.SeverityCritical).
			WithContext("path", s.path)
	}
	return nil
}

func writeStore(path string, data []byte) error {
	if err := common.EnsureDir(path); err != nil {
		return err
	}
	return renameio.WriteFile(path, data, common.FilePermissionNormal)
}
