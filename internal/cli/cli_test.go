package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/api/apitest"
	"github.com/idilsaglam/tada/internal/model"
)

// isolate keeps user and project config files and env out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("TADA_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"TADA_API_URL", "TADA_THEME", "TADA_LOG_FILE", "TADA_LOG_LEVEL", "TADA_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	t.Setenv("NO_COLOR", "1")
	work := t.TempDir()
	t.Chdir(work)
	return work
}

type result struct {
	code           int
	stdout, stderr string
}

func execute(t *testing.T, srv *apitest.Server, args ...string) result {
	t.Helper()
	if srv != nil {
		args = append([]string{"--api-url", srv.URL, "--theme", "mono"}, args...)
	}
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), args, &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func seeded(t *testing.T) *apitest.Server {
	t.Helper()
	srv := apitest.NewServer(
		model.Item{ID: "1", Description: "Buy milk"},
		model.Item{ID: "2", Description: "Walk the dog", IsCompleted: true},
	)
	t.Cleanup(srv.Close)
	return srv
}

func TestLs(t *testing.T) {
	isolate(t)
	srv := seeded(t)

	res := execute(t, srv, "ls")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, 1, srv.Calls(apitest.OpList))
	assert.Contains(t, res.stdout, "Showing 2/2 Item(s)")
	assert.Contains(t, res.stdout, "Buy milk")
	assert.Contains(t, res.stdout, "Walk the dog")
	assert.Contains(t, res.stdout, "[x]")
	assert.Contains(t, res.stdout, "50%")
}

func TestLsHideCompleted(t *testing.T) {
	isolate(t)
	srv := seeded(t)

	res := execute(t, srv, "ls", "--hide-completed")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Showing 1/2 Item(s)")
	assert.Contains(t, res.stdout, "Buy milk")
	assert.NotContains(t, res.stdout, "Walk the dog")
}

func TestLsGroup(t *testing.T) {
	isolate(t)
	srv := seeded(t)

	res := execute(t, srv, "ls", "--group")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Pending")
	assert.Contains(t, res.stdout, "Done")
}

func TestLsEmpty(t *testing.T) {
	isolate(t)
	srv := apitest.NewServer()
	defer srv.Close()

	res := execute(t, srv, "ls")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Showing 0/0 Item(s)")
	assert.Contains(t, res.stdout, "no items")
}

func TestLsFailure(t *testing.T) {
	isolate(t)
	srv := seeded(t)
	srv.Fail(apitest.OpList, http.StatusInternalServerError, "")

	res := execute(t, srv, "ls")
	assert.Equal(t, ExitError, res.code)
	assert.Contains(t, res.stderr, "Error fetching items")
	assert.Empty(t, res.stdout)
}

func TestAdd(t *testing.T) {
	isolate(t)
	srv := apitest.NewServer()
	defer srv.Close()

	res := execute(t, srv, "add", "Todo", "Item", "1")
	require.Equal(t, ExitOK, res.code, res.stderr)
	require.Equal(t, 1, srv.Calls(apitest.OpCreate))
	assert.JSONEq(t, `{"description":"Todo Item 1","isCompleted":false}`, srv.Bodies(apitest.OpCreate)[0])

	items := srv.Items()
	require.Len(t, items, 1)
	assert.Contains(t, res.stdout, "added "+items[0].ID.String()+" Todo Item 1")
}

func TestAddUsage(t *testing.T) {
	isolate(t)
	srv := apitest.NewServer()
	defer srv.Close()

	tests := []struct {
		name string
		args []string
	}{
		{"no args", []string{"add"}},
		{"blank", []string{"add", "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, srv, tt.args...)
			assert.Equal(t, ExitUsage, res.code)
			assert.Contains(t, res.stderr, "todo --help")
		})
	}
	assert.Zero(t, srv.Calls(apitest.OpCreate))
}

func TestAddFailure(t *testing.T) {
	isolate(t)
	srv := seeded(t)

	// The fake rejects a second pending item with the same description.
	res := execute(t, srv, "add", "Buy milk")
	assert.Equal(t, ExitError, res.code)
	assert.Contains(t, res.stderr, "Error adding item")
	assert.Len(t, srv.Items(), 2)
}

func TestDone(t *testing.T) {
	isolate(t)
	srv := seeded(t)

	res := execute(t, srv, "done", "1")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "completed: Buy milk")
	require.Equal(t, 1, srv.Calls(apitest.OpUpdate))
	assert.JSONEq(t, `{"id":"1","description":"Buy milk","isCompleted":true}`, srv.Bodies(apitest.OpUpdate)[0])
	assert.True(t, srv.Items()[0].IsCompleted)
}

func TestDoneAlreadyCompleted(t *testing.T) {
	isolate(t)
	srv := seeded(t)

	res := execute(t, srv, "done", "2")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "already completed: Walk the dog")
	assert.Zero(t, srv.Calls(apitest.OpUpdate))
}

func TestDoneUnknownID(t *testing.T) {
	isolate(t)
	srv := seeded(t)

	res := execute(t, srv, "done", "nope")
	assert.Equal(t, ExitError, res.code)
	assert.Contains(t, res.stderr, "no item with id nope")
	assert.Zero(t, srv.Calls(apitest.OpUpdate))
}

func TestDoneFailureShowsDetail(t *testing.T) {
	isolate(t)
	srv := seeded(t)
	srv.Fail(apitest.OpUpdate, http.StatusNotFound, "Not Found")

	res := execute(t, srv, "done", "1")
	assert.Equal(t, ExitError, res.code)
	assert.Contains(t, res.stderr, "request failed with status code 404: Not Found")
}

func TestUsageErrors(t *testing.T) {
	isolate(t)
	srv := seeded(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"frob"}},
		{"unknown flag", []string{"ls", "--frob"}},
		{"done without id", []string{"done"}},
		{"done with two ids", []string{"done", "1", "2"}},
		{"bad theme", []string{"ls", "--theme", "plaid"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, srv, tt.args...)
			assert.Equal(t, ExitUsage, res.code, res.stderr)
		})
	}
	assert.Zero(t, srv.Calls(apitest.OpList))
}

func TestBadAPIURL(t *testing.T) {
	isolate(t)
	res := execute(t, nil, "--api-url", "ftp://example.com", "ls")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "scheme must be http or https")
}

func TestProjectConfigFile(t *testing.T) {
	work := isolate(t)
	srv := seeded(t)
	body := "api_url = \"" + srv.URL + "\"\ntheme = \"mono\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(work, "tada.toml"), []byte(body), 0o600))

	res := execute(t, nil, "ls")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, 1, srv.Calls(apitest.OpList))
	assert.Contains(t, res.stdout, "Buy milk")
}

func TestLogFile(t *testing.T) {
	work := isolate(t)
	srv := seeded(t)
	logPath := filepath.Join(work, "logs", "tada.log")

	res := execute(t, srv, "--log-file", logPath, "--log-level", "debug", "ls")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Empty(t, res.stderr)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "items loaded")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitUsage, ExitCode(usagef("bad %s", "input")))
}
