package tracker

import (
	"strings"

	"gittrack/internal/changelog"
	"gittrack/internal/config"
)

// NoChangesMessage is returned by GenerateCommitMessage for an empty log
const NoChangesMessage = "No changes recorded"

// GenerateCommitMessage renders changes into one commit message. Each change
// becomes its type's template with {message} replaced by the description,
// followed by a "- file" list when files were recorded. Blocks are separated
// by a blank line.
func GenerateCommitMessage(cfg *config.Config, changes []changelog.Change) string {
	if len(changes) == 0 {
		return NoChangesMessage
	}

	blocks := make([]string, 0, len(changes))
	for _, change := range changes {
		block := strings.ReplaceAll(cfg.Template(change.Type), config.MessagePlaceholder, change.Description)
		if len(change.Files) > 0 {
			lines := make([]string, len(change.Files))
			for i, f := range change.Files {
				lines[i] = "- " + f
			}
			block += "\n\n" + strings.Join(lines, "\n")
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n")
}

// CommitMessage renders the current change log
func (t *Tracker) CommitMessage() string {
	return GenerateCommitMessage(t.cfg, t.changes)
}

// isEmptyMessage reports a message that must not reach git. Whitespace is
// left for git itself to reject.
func isEmptyMessage(message string) bool {
	return message == "" || message == NoChangesMessage
}
