// Package testutil provides small helpers shared by the compiler test
// suites.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/arclang/internal/compiler"
	"github.com/vk/arclang/internal/ctxlog"
)

// QuietContext returns a context whose logger discards everything, so
// test output stays readable.
func QuietContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

// MustCompile runs the full pipeline over source and fails the test on
// any error.
func MustCompile(t *testing.T, source string) *compiler.Result {
	t.Helper()
	result, err := compiler.New(compiler.DefaultOptions()).Compile(QuietContext(), source)
	require.NoError(t, err)
	return result
}

// CompileErr runs the full pipeline over source and requires it to fail,
// returning the error for inspection.
func CompileErr(t *testing.T, source string) error {
	t.Helper()
	_, err := compiler.New(compiler.DefaultOptions()).Compile(QuietContext(), source)
	require.Error(t, err)
	return err
}
