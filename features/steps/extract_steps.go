//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"media-cutter/application/convert"
	"media-cutter/cmd"

	"github.com/cucumber/godog"
)

// extractContext holds test state for extract-audio scenarios
type extractContext struct {
	runner      *recordingRunner
	fileChecker *mockFileChecker
	output      *bytes.Buffer
	err         error
}

var sharedExtractContext *extractContext

func getExtractContext() *extractContext {
	return sharedExtractContext
}

func InitializeExtractScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		sharedExtractContext = &extractContext{
			runner:      newRecordingRunner(),
			fileChecker: &mockFileChecker{existingFiles: make(map[string]bool)},
			output:      &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		sharedExtractContext = nil
		return c, nil
	})

	ctx.Step(`^a video "([^"]*)" exists$`, aVideoExists)
	ctx.Step(`^the audio encoder is unavailable$`, theAudioEncoderIsUnavailable)
	ctx.Step(`^I extract audio from "([^"]*)"$`, iExtractAudioFrom)
	ctx.Step(`^I extract audio from "([^"]*)" to "([^"]*)"$`, iExtractAudioFromTo)
	ctx.Step(`^the extraction should succeed$`, theExtractionShouldSucceed)
	ctx.Step(`^the extraction should fail with "([^"]*)"$`, theExtractionShouldFailWith)
	ctx.Step(`^the extraction output should contain "([^"]*)"$`, theExtractionOutputShouldContain)
	ctx.Step(`^the extraction command should be:$`, theExtractionCommandShouldBe)
}

func aVideoExists(path string) error {
	getExtractContext().fileChecker.existingFiles[path] = true
	return nil
}

func theAudioEncoderIsUnavailable() error {
	getExtractContext().runner.missing = true
	return nil
}

func iExtractAudioFrom(source string) error {
	return iExtractAudioFromTo(source, "")
}

func iExtractAudioFromTo(source, output string) error {
	t := getExtractContext()
	service := convert.NewService(t.runner.transcoder(), t.fileChecker, time.Second)
	t.err = cmd.RunExtractAudioWithDependencies(context.Background(), service, source, output, t.output)
	return nil
}

func theExtractionShouldSucceed() error {
	t := getExtractContext()
	if t.err != nil {
		return fmt.Errorf("expected extraction to succeed, got error: %v", t.err)
	}
	return nil
}

func theExtractionShouldFailWith(msg string) error {
	t := getExtractContext()
	if t.err == nil {
		return fmt.Errorf("expected extraction to fail with %q, but it succeeded", msg)
	}
	if !strings.Contains(t.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, t.err.Error())
	}
	return nil
}

func theExtractionOutputShouldContain(text string) error {
	t := getExtractContext()
	if !strings.Contains(t.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, t.output.String())
	}
	return nil
}

func theExtractionCommandShouldBe(doc *godog.DocString) error {
	return compareFirstCall(getExtractContext().runner, doc)
}
