package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
)

func TestRun_ReportsErrorOnce(t *testing.T) {
	app := newApp()
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "broken",
		Action: func(*cli.Context) error { return errors.New("boom") },
	})
	var stderr bytes.Buffer

	code := run(context.Background(), app, []string{"storefront-e2e", "broken"}, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: boom\n", stderr.String())
}

func TestRun_Success(t *testing.T) {
	app := newApp()
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "noop",
		Action: func(*cli.Context) error { return nil },
	})
	var stderr bytes.Buffer

	assert.Zero(t, run(context.Background(), app, []string{"storefront-e2e", "noop"}, &stderr))
	assert.Empty(t, stderr.String())
}

func TestRunCommand_ResultsFlag(t *testing.T) {
	var results *cli.StringFlag
	for _, f := range RunCommand().Flags {
		if sf, ok := f.(*cli.StringFlag); ok && sf.Name == "results" {
			results = sf
		}
	}
	if assert.NotNil(t, results) {
		assert.Equal(t, "test-results", results.Value)
	}
}
