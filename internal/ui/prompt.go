package ui

import (
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Prompter asks the user for input
type Prompter interface {
	Input(message, defaultValue, help string) (string, error)
	Select(message string, options []string, defaultValue string) (string, error)
	Password(message, help string) (string, error)
}

// SurveyPrompter implements Prompter on a terminal with survey
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter creates a prompter on the given terminal streams
func NewSurveyPrompter(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *SurveyPrompter {
	return &SurveyPrompter{
		opts: []survey.AskOpt{survey.WithStdio(in, out, errOut)},
	}
}

// NewStdPrompter creates a prompter on the process's standard streams
func NewStdPrompter() *SurveyPrompter {
	return NewSurveyPrompter(os.Stdin, os.Stdout, os.Stderr)
}

// Input displays a text input prompt; blank answers are rejected
func (s *SurveyPrompter) Input(message, defaultValue, help string) (string, error) {
	var result string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
		Help:    help,
	}

	err := survey.AskOne(prompt, &result, append(s.opts, survey.WithValidator(survey.Required))...)
	return strings.TrimSpace(result), err
}

// Select displays a selection prompt
func (s *SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	var result string
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 10,
	}
	if defaultValue != "" {
		prompt.Default = defaultValue
	}

	err := survey.AskOne(prompt, &result, s.opts...)
	return result, err
}

// Password displays a password input prompt
func (s *SurveyPrompter) Password(message, help string) (string, error) {
	var result string
	prompt := &survey.Password{
		Message: message,
		Help:    help,
	}

	err := survey.AskOne(prompt, &result, append(s.opts, survey.WithValidator(survey.Required))...)
	return result, err
}
