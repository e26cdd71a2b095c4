package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{fmt.Errorf("write: %w", syscall.EPIPE), exitOK},
		{fmt.Errorf("x.csv: %w", context.Canceled), exitCanceled},
		{usagef("no input"), exitUsage},
		{errors.New("boom"), exitRuntime},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, exitCode(c.err, io.Discard), "%v", c.err)
	}
}

func TestNoArgsPrintsHelp(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := Run(nil, &out, &errBuf)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "pairing")
	assert.Contains(t, out.String(), "binding-at")
}

func TestUnknownCommandIsUsage(t *testing.T) {
	var errBuf bytes.Buffer
	code := Run([]string{"fold"}, io.Discard, &errBuf)
	assert.Equal(t, exitUsage, code)
	assert.True(t, strings.HasPrefix(errBuf.String(), "error:"))
}

func TestVersionJSON(t *testing.T) {
	var out bytes.Buffer
	code := Run([]string{"version", "--json"}, &out, io.Discard)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), `"version"`)
}

func TestBadConfigIsUsage(t *testing.T) {
	t.Setenv("MIRPAIR_FAILURE_POLICY", "explode")
	code := Run([]string{"pairing", "x.csv"}, io.Discard, io.Discard)
	assert.Equal(t, exitUsage, code)
}
