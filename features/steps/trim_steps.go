//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"media-cutter/application/editor"
	"media-cutter/cmd"
	"media-cutter/domain/media"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog"
)

// trimContext holds test state for trim scenarios
type trimContext struct {
	runner      *recordingRunner
	fileChecker *mockFileChecker
	sourcePath  string
	cuts        []string
	outputDir   string
	output      *bytes.Buffer
	err         error
}

var sharedTrimContext *trimContext

func getTrimContext() *trimContext {
	return sharedTrimContext
}

func InitializeTrimScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		sharedTrimContext = &trimContext{
			runner:      newRecordingRunner(),
			fileChecker: &mockFileChecker{existingFiles: make(map[string]bool)},
			output:      &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		sharedTrimContext = nil
		return c, nil
	})

	ctx.Step(`^a source file "([^"]*)" exists$`, aSourceFileExists)
	ctx.Step(`^ffmpeg cannot be found$`, ffmpegCannotBeFound)
	ctx.Step(`^ffmpeg fails on output "([^"]*)"$`, ffmpegFailsOnOutput)
	ctx.Step(`^the cuts:$`, theCuts)
	ctx.Step(`^the output directory "([^"]*)"$`, theOutputDirectory)
	ctx.Step(`^I trim "([^"]*)"$`, iTrim)
	ctx.Step(`^the trim should succeed$`, theTrimShouldSucceed)
	ctx.Step(`^the trim should fail with "([^"]*)"$`, theTrimShouldFailWith)
	ctx.Step(`^the trim should fail with an unsupported format error$`, theTrimShouldFailWithAnUnsupportedFormatError)
	ctx.Step(`^the trim output should contain "([^"]*)"$`, theTrimOutputShouldContain)
	ctx.Step(`^the trimmed files should be:$`, theTrimmedFilesShouldBe)
	ctx.Step(`^the first trim command should be:$`, theFirstTrimCommandShouldBe)
}

func aSourceFileExists(path string) error {
	getTrimContext().fileChecker.existingFiles[path] = true
	return nil
}

func ffmpegCannotBeFound() error {
	getTrimContext().runner.missing = true
	return nil
}

func ffmpegFailsOnOutput(path string) error {
	getTrimContext().runner.failOn[path] = true
	return nil
}

func theCuts(table *godog.Table) error {
	t := getTrimContext()
	for _, row := range table.Rows[1:] {
		t.cuts = append(t.cuts, row.Cells[0].Value+"-"+row.Cells[1].Value)
	}
	return nil
}

func theOutputDirectory(dir string) error {
	getTrimContext().outputDir = dir
	return nil
}

func iTrim(source string) error {
	t := getTrimContext()
	t.sourcePath = source
	exporter := editor.NewExporter(t.runner.transcoder(), editor.WithExportLogger(zerolog.Nop()))
	t.err = cmd.RunTrimWithDependencies(
		context.Background(),
		exporter,
		t.fileChecker,
		t.sourcePath,
		t.cuts,
		t.outputDir,
		t.output,
	)
	return nil
}

func theTrimShouldSucceed() error {
	t := getTrimContext()
	if t.err != nil {
		return fmt.Errorf("expected trim to succeed, got error: %v\noutput:\n%s", t.err, t.output.String())
	}
	return nil
}

func theTrimShouldFailWith(msg string) error {
	t := getTrimContext()
	if t.err == nil {
		return fmt.Errorf("expected trim to fail with %q, but it succeeded", msg)
	}
	if !strings.Contains(t.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, t.err.Error())
	}
	return nil
}

func theTrimShouldFailWithAnUnsupportedFormatError() error {
	t := getTrimContext()
	if !errors.Is(t.err, media.ErrUnsupportedFormat) {
		return fmt.Errorf("expected unsupported format error, got %v", t.err)
	}
	return nil
}

func theTrimOutputShouldContain(text string) error {
	t := getTrimContext()
	if !strings.Contains(t.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, t.output.String())
	}
	return nil
}

func theTrimmedFilesShouldBe(table *godog.Table) error {
	return compareOutputs(getTrimContext().runner.outputs(), table)
}

func theFirstTrimCommandShouldBe(doc *godog.DocString) error {
	return compareFirstCall(getTrimContext().runner, doc)
}
