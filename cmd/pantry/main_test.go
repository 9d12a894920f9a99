package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"pantry/internal/freshness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var addedRe = regexp.MustCompile(`Added .+ \(([0-9a-f-]{36})\)`)

// run executes the CLI against a file slot in dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runWithOptions(t, dir, args...)
	return out, err
}

func runWithOptions(t *testing.T, dir string, args ...string) (string, *rootOptions, error) {
	t.Helper()
	t.Setenv("NOTIFY_WEBHOOK_URL", "")
	t.Setenv("EXPORT_STORAGE", "")
	t.Setenv("APP_TIMEZONE", "Local")

	var out, errOut bytes.Buffer
	opts := &rootOptions{}
	cmd := newRootCmd(opts)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--driver", "file", "--slot-dir", dir, "--slot-key", "cli_items"}, args...))
	err := execute(context.Background(), cmd, opts)
	return out.String(), opts, err
}

func addItem(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, append([]string{"add"}, args...)...)
	require.NoError(t, err)
	m := addedRe.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func TestCLI_EmptyList(t *testing.T) {
	out, err := run(t, t.TempDir(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Total 0")
	assert.Contains(t, out, emptyCollectionText)
}

func TestCLI_Lifecycle(t *testing.T) {
	dir := t.TempDir()
	soon := time.Now().AddDate(0, 0, 3).Format(freshness.DateLayout)
	past := time.Now().AddDate(0, 0, -2).Format(freshness.DateLayout)

	out, err := run(t, dir, "add", "Milk", "--qty", "2", "--category", "Dairy", "--expires", soon)
	require.NoError(t, err)
	assert.Contains(t, out, `"Milk" expires in 3 day(s), consider using soon.`)

	yogurt := addItem(t, dir, "Yogurt", "--expires", past)

	out, err = run(t, dir, "list", "--filter", "expired")
	require.NoError(t, err)
	assert.Contains(t, out, "Yogurt")
	assert.NotContains(t, out, "Milk")
	assert.Contains(t, out, "Total 2  Near 1  Expired 1  Consumed 0")

	out, err = run(t, dir, "toggle", yogurt)
	require.NoError(t, err)
	assert.Contains(t, out, "Yogurt is now consumed")

	out, err = run(t, dir, "list", "--filter", "expired")
	require.NoError(t, err)
	assert.Contains(t, out, emptyViewText)

	out, err = run(t, dir, "list", "--filter", "consumed")
	require.NoError(t, err)
	assert.Contains(t, out, "Yogurt")

	out, err = run(t, dir, "edit", yogurt, "--name", "Greek yogurt", "--qty", "zero")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated Greek yogurt")

	_, err = run(t, dir, "rm", yogurt)
	require.NoError(t, err)
	_, err = run(t, dir, "rm", yogurt)
	require.NoError(t, err)

	out, err = run(t, dir, "list", "-q", "yog")
	require.NoError(t, err)
	assert.Contains(t, out, "Total 1")
	assert.Contains(t, out, emptyViewText)
}

func TestCLI_AddRequiresName(t *testing.T) {
	_, err := run(t, t.TempDir(), "add", "  ")
	assert.ErrorContains(t, err, "item name is required")
}

func TestCLI_EditUnknown(t *testing.T) {
	_, err := run(t, t.TempDir(), "edit", "nope", "--name", "x")
	assert.ErrorContains(t, err, "record not found")
}

func TestCLI_ClosesAppAfterFailedCommand(t *testing.T) {
	_, opts, err := runWithOptions(t, t.TempDir(), "toggle", "missing")
	assert.ErrorContains(t, err, "record not found")
	assert.Nil(t, opts.app)

	_, opts, err = runWithOptions(t, t.TempDir(), "list")
	require.NoError(t, err)
	assert.Nil(t, opts.app)
}

func TestCLI_Export(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "export", "-o", "-")
	require.NoError(t, err)
	assert.Empty(t, out)

	addItem(t, dir, `Say "cheese"`, "--category", "Dairy")

	out, err = run(t, dir, "export", "-o", "-")
	require.NoError(t, err)
	assert.Equal(t,
		`"name","qty","category","purchaseDate","expiryDate","consumed"`+"\n"+
			`"Say ""cheese""","1","Dairy","","","false"`,
		out)

	target := filepath.Join(dir, "out.csv")
	out, err = run(t, dir, "export", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+target)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Say ""cheese"""`)

	_, err = run(t, dir, "export", "--share")
	assert.ErrorContains(t, err, "export sharing is not configured")
}

func TestCLI_UnknownDriver(t *testing.T) {
	var out bytes.Buffer
	opts := &rootOptions{}
	cmd := newRootCmd(opts)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--driver", "floppy", "list"})
	err := execute(context.Background(), cmd, opts)
	assert.ErrorContains(t, err, `unknown slot driver "floppy"`)
}
