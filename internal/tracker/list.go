package tracker

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"gittrack/internal/changelog"
	"gittrack/pkg/errors"
)

// List output formats
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the accepted --format values
var Formats = []string{FormatText, FormatTable, FormatJSON, FormatYAML}

// List prints the recorded changes. It never mutates the log or calls git.
func (t *Tracker) List(format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		t.listText()
		return nil
	case FormatTable:
		t.listTable()
		return nil
	case FormatJSON:
		return t.listJSON()
	case FormatYAML:
		return t.listYAML()
	default:
		return errors.InputError("format", fmt.Sprintf("%q is not one of %s", format, strings.Join(Formats, ", ")))
	}
}

func (t *Tracker) listText() {
	if len(t.changes) == 0 {
		t.out.Println("No changes recorded yet")
		return
	}

	t.out.Println("\nRecorded changes:")
	for i, change := range t.changes {
		t.out.Printf("%d. [%s] %s: %s\n", i+1, change.Timestamp.String(), change.Type, change.Description)
		if len(change.Files) > 0 {
			t.out.Println(t.out.Dim("   Files: " + strings.Join(change.Files, ", ")))
		}
	}
}

func (t *Tracker) listTable() {
	if len(t.changes) == 0 {
		t.out.Println("No changes recorded yet")
		return
	}

	rows := make([][]string, 0, len(t.changes))
	for i, change := range t.changes {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			change.Timestamp.String(),
			change.Type,
			change.Description,
			strings.Join(change.Files, "\n"),
		})
	}
	t.out.Table([]string{"#", "Timestamp", "Type", "Description", "Files"}, rows)
}

func (t *Tracker) exportable() []changelog.Change {
	out := t.Changes()
	for i := range out {
		if out[i].Files == nil {
			out[i].Files = []string{}
		}
	}
	return out
}

func (t *Tracker) listJSON() error {
	data, err := json.MarshalIndent(t.exportable(), "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "Failed to encode changes as JSON")
	}
	t.out.Println(string(data))
	return nil
}

func (t *Tracker) listYAML() error {
	enc := yaml.NewEncoder(t.out.Writer())
	enc.SetIndent(2)
	if err := enc.Encode(t.exportable()); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "Failed to encode changes as YAML")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "Failed to encode changes as YAML")
	}
	return nil
}
