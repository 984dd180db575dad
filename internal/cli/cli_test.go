package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"system.arc"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "system.arc", cfg.SourcePath)
	assert.Empty(t, cfg.OptionsPath)
	// Unset log flags stay empty so downstream config merging can tell
	// "not given" from an explicit choice.
	assert.Empty(t, cfg.LogFormat)
	assert.Empty(t, cfg.LogLevel)
}

func TestParse_AllFlags(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{
		"-options", "opts.hcl",
		"-log-format", "JSON",
		"-log-level", "DEBUG",
		"models/",
	}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "models/", cfg.SourcePath)
	assert.Equal(t, "opts.hcl", cfg.OptionsPath)
	// Flag values are case-insensitive and normalized.
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_NoArgsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)
	require.NoError(t, err)

	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "SOURCE_PATH")
}

func TestParse_HelpFlag(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
}

func TestParse_TooManyArguments(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"a.arc", "b.arc"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "exactly one SOURCE_PATH")
}

func TestParse_InvalidLogFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-log-format", "xml", "a.arc"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "invalid log-format")
}

func TestParse_InvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-log-level", "verbose", "a.arc"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log-level")
}

func TestParse_UnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-bogus", "a.arc"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
