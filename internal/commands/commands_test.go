package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mstodo/internal/commands"
	"mstodo/internal/config"
	"mstodo/internal/exitcode"
	"mstodo/internal/service"
	"mstodo/internal/testutil"
)

// runCommand is a helper to run a command with a FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	code = cmd.Run(context.Background(), cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "mstodo 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
	if !strings.Contains(stdout, "MSTODO_CLIENT_ID") {
		t.Error("help output should document the client ID variable")
	}
}

func TestListsCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("list1", "Groceries")
	svc.AddList("list2", "Work")

	stdout, stderr, code := runCommand(t, &commands.ListsCmd{}, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "Groceries\nWork\n" {
		t.Errorf("expected list names, got %q", stdout)
	}
}

func TestListsCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTaskListsErr = errors.New("boom")

	_, stderr, code := runCommand(t, &commands.ListsCmd{}, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, "backend error") {
		t.Errorf("expected backend error message, got %q", stderr)
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.LogoutCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("expected 'not logged in', got %q", stdout)
	}
}

func TestLogoutCommand_RemovesCache(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Dir: dir}
	cachePath := filepath.Join(dir, config.TokenCacheFile)
	if err := os.WriteFile(cachePath, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LogoutCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok', got %q", outBuf.String())
	}
	if _, err := os.Stat(cachePath); !errors.Is(err, os.ErrNotExist) {
		t.Error("token cache must be removed")
	}
}

func TestLoginCommand_MissingClientID(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.LoginCmd{}, nil, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "MSTODO_CLIENT_ID") {
		t.Errorf("expected setup instructions, got %q", stderr)
	}
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	svc := testutil.NewFakeService()
	cmd := &commands.ExportCmd{}
	cmd.SetFormat("yaml")
	cmd.SetOutDir(t.TempDir())

	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "unknown format") {
		t.Errorf("expected format error, got %q", stderr)
	}
}

func TestExportCommand_UnexpectedArgument(t *testing.T) {
	svc := testutil.NewFakeService()
	cmd := &commands.ExportCmd{}
	cmd.SetOutDir(t.TempDir())

	_, stderr, code := runCommand(t, cmd, svc, []string{"extra"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "unexpected argument") {
		t.Errorf("expected argument error, got %q", stderr)
	}
}

func TestExportCommand_MissingOutDir(t *testing.T) {
	svc := testutil.NewFakeService()
	cmd := &commands.ExportCmd{}
	cmd.SetOutDir(filepath.Join(t.TempDir(), "does-not-exist"))

	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "output directory not found") {
		t.Errorf("expected directory error, got %q", stderr)
	}
}

func TestExportCommand_WritesMarkdown(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("list1", "Groceries")
	svc.AddTask("list1", service.Task{ID: "t1", Title: "Buy milk", Status: "completed"})

	dir := t.TempDir()
	cmd := &commands.ExportCmd{}
	cmd.SetOutDir(dir)

	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr: %q)", exitcode.Success, code, stderr)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one exported file, got %d", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "Groceries_") || !strings.HasSuffix(name, ".md") {
		t.Errorf("unexpected filename: %q", name)
	}
	if !strings.HasPrefix(stdout, "Tasks for list 'Groceries' have been exported to Groceries_") {
		t.Errorf("expected completion notice, got %q", stdout)
	}
}

func TestExportCommand_TextFormat(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("list1", "Groceries")
	svc.AddTask("list1", service.Task{
		ID:     "t1",
		Title:  "Buy milk",
		Status: "completed",
		Body:   &service.ItemBody{ContentType: "html", Content: "<b>2%</b>"},
	})

	dir := t.TempDir()
	cmd := &commands.ExportCmd{}
	cmd.SetFormat("text")
	cmd.SetOutDir(dir)

	_, _, code := runCommand(t, cmd, svc, nil, true)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".txt") {
		t.Fatalf("expected one .txt file, got %v", entries)
	}

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "  Content: <b>2%</b>") {
		t.Errorf("plain output must keep raw HTML, got:\n%s", data)
	}
}

func TestExportCommand_QuietSuppressesNotices(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("list1", "Groceries")
	svc.AddTask("list1", service.Task{ID: "t1", Title: "Buy milk", Status: "completed"})

	cmd := &commands.ExportCmd{}
	cmd.SetOutDir(t.TempDir())

	stdout, _, code := runCommand(t, cmd, svc, nil, true)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("quiet run must print nothing, got %q", stdout)
	}
}

func TestExportCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTaskListsErr = errors.New("graph returned 500")

	cmd := &commands.ExportCmd{}
	cmd.SetOutDir(t.TempDir())

	_, stderr, code := runCommand(t, cmd, svc, nil, false)
	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, "backend error") {
		t.Errorf("expected backend error message, got %q", stderr)
	}
}
