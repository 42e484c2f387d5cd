package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

// skipAnswer skips a cut when typed as its file name
const skipAnswer = "-"

// PromptNameResolver asks for the file name of every exported cut, offering
// the suggested name as the default
type PromptNameResolver struct {
	Prompter Prompter
}

// ResolveName implements editor.NameResolver
func (r *PromptNameResolver) ResolveName(ctx context.Context, index, total int, suggested string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	msg := fmt.Sprintf("Save cut %d of %d as (%s to skip):", index, total, skipAnswer)
	answer, err := r.Prompter.Input(msg, suggested)
	if err != nil {
		return "", false, fmt.Errorf("prompt cancelled: %w", err)
	}
	answer = strings.TrimSpace(answer)
	switch answer {
	case skipAnswer:
		return "", false, nil
	case "":
		return suggested, true, nil
	}
	return answer, true, nil
}
