//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-cutter/cmd"
	"media-cutter/infrastructure/config"

	"github.com/cucumber/godog"
)

// setupContext holds test state for setup and config scenarios
type setupContext struct {
	tempDir    string
	configPath string
	prompter   *MockPrompter
	output     *bytes.Buffer
	err        error
}

var SharedSetupContext *setupContext

func getSetupContext() *setupContext {
	return SharedSetupContext
}

func InitializeSetupScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "media-cutter-setup-*")
		if err != nil {
			return c, err
		}
		SharedSetupContext = &setupContext{
			tempDir:    tempDir,
			configPath: filepath.Join(tempDir, "config", "config.yaml"),
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if t := getSetupContext(); t != nil {
			os.RemoveAll(t.tempDir)
		}
		SharedSetupContext = nil
		return c, nil
	})

	ctx.Step(`^no configuration file exists$`, noConfigurationFileExists)
	ctx.Step(`^a configuration file exists$`, aConfigurationFileExists)
	ctx.Step(`^I answer the setup prompts with:$`, iAnswerTheSetupPromptsWith)
	ctx.Step(`^I decline to overwrite the configuration$`, iDeclineToOverwriteTheConfiguration)
	ctx.Step(`^I run setup$`, iRunSetup)
	ctx.Step(`^setup should succeed$`, setupShouldSucceed)
	ctx.Step(`^setup should fail with "([^"]*)"$`, setupShouldFailWith)
	ctx.Step(`^the setup output should contain "([^"]*)"$`, theSetupOutputShouldContain)
	ctx.Step(`^the saved configuration should have:$`, theSavedConfigurationShouldHave)

	ctx.Step(`^I set config "([^"]*)" to "([^"]*)"$`, iSetConfigTo)
	ctx.Step(`^I get config "([^"]*)"$`, iGetConfig)
	ctx.Step(`^the config command should succeed$`, setupShouldSucceed)
	ctx.Step(`^the config command should fail with "([^"]*)"$`, setupShouldFailWith)
	ctx.Step(`^the config output should contain "([^"]*)"$`, theSetupOutputShouldContain)
}

func noConfigurationFileExists() error {
	t := getSetupContext()
	if _, err := os.Stat(t.configPath); err == nil {
		return fmt.Errorf("config file unexpectedly exists at %s", t.configPath)
	}
	return nil
}

func aConfigurationFileExists() error {
	t := getSetupContext()
	cfg := config.Default()
	cfg.FFmpeg.Path = "/opt/original/ffmpeg"
	return config.Save(cfg, t.configPath)
}

// parseInputTable reads a prompt | answer table into input and confirm answers
func parseInputTable(table *godog.Table) ([]string, []bool) {
	var inputs []string
	var confirms []bool
	for _, row := range table.Rows[1:] {
		answer := row.Cells[1].Value
		switch strings.ToLower(answer) {
		case "yes":
			confirms = append(confirms, true)
		case "no":
			confirms = append(confirms, false)
		default:
			inputs = append(inputs, answer)
		}
	}
	return inputs, confirms
}

func iAnswerTheSetupPromptsWith(table *godog.Table) error {
	t := getSetupContext()
	inputs, confirms := parseInputTable(table)
	t.prompter = NewMockPrompter(inputs, confirms)
	return nil
}

func iDeclineToOverwriteTheConfiguration() error {
	getSetupContext().prompter = NewMockPrompter(nil, []bool{false})
	return nil
}

func iRunSetup() error {
	t := getSetupContext()
	if t.prompter == nil {
		t.prompter = NewMockPrompter(nil, nil)
	}
	t.err = cmd.RunSetupWithPrompter(t.prompter, t.configPath, t.output)
	return nil
}

func setupShouldSucceed() error {
	t := getSetupContext()
	if t.err != nil {
		return fmt.Errorf("expected success, got error: %v", t.err)
	}
	return nil
}

func setupShouldFailWith(msg string) error {
	t := getSetupContext()
	if t.err == nil {
		return fmt.Errorf("expected failure with %q, but it succeeded", msg)
	}
	if !strings.Contains(t.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, t.err.Error())
	}
	return nil
}

func theSetupOutputShouldContain(text string) error {
	t := getSetupContext()
	if !strings.Contains(t.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, t.output.String())
	}
	return nil
}

func theSavedConfigurationShouldHave(table *godog.Table) error {
	t := getSetupContext()
	cfg, err := config.Load(t.configPath)
	if err != nil {
		return fmt.Errorf("failed to load saved config: %w", err)
	}
	manager := config.NewConfigManager(cfg, t.configPath)
	for _, row := range table.Rows[1:] {
		key, want := row.Cells[0].Value, row.Cells[1].Value
		got, err := manager.Get(key)
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("%s: expected %q, got %q", key, want, got)
		}
	}
	return nil
}

func iSetConfigTo(key, value string) error {
	t := getSetupContext()
	cfg, err := config.Load(t.configPath)
	if err != nil {
		return err
	}
	t.err = cmd.RunConfigSetWithDependencies(cfg, t.configPath, key, value, t.output)
	return nil
}

func iGetConfig(key string) error {
	t := getSetupContext()
	cfg, err := config.Load(t.configPath)
	if err != nil {
		return err
	}
	t.err = cmd.RunConfigGetWithDependencies(cfg, t.configPath, key, t.output)
	return nil
}
