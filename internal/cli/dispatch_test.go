package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"plptask/internal/app"
	"plptask/internal/cli"
	"plptask/internal/commands"
	"plptask/internal/config"
	"plptask/internal/exitcode"
	"plptask/internal/kv"
	"plptask/internal/posts"
	"plptask/internal/testutil"
)

// testFactory creates an app factory over storage. Every dispatch gets a
// fresh App, the way separate invocations of the binary do.
func testFactory(storage kv.Storage, baseURL string) cli.AppFactory {
	return func(ctx context.Context, cfg *config.Config) (*app.App, error) {
		return app.New(ctx, storage, posts.New(baseURL), cfg.Logger)
	}
}

// run dispatches cmd with a scratch config directory placed before args.
func run(t *testing.T, d *cli.Dispatcher, cmd string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	full := append([]string{cmd, "--config", t.TempDir()}, args...)
	code = d.Run(context.Background(), full, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(kv.NewMemory(), ""))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(kv.NewMemory(), ""))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, dispatcher, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, _, code := run(t, dispatcher, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "plptask 0.1.0\n" {
		t.Errorf("expected 'plptask 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--unknown"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(kv.NewMemory(), ""))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--filter"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -filter\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	storage := kv.NewMemory()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(storage, ""))

	var stdout, stderr bytes.Buffer
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Your Tasks (0)") {
		t.Errorf("expected list header, got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "No tasks yet. Add your first task above!") {
		t.Errorf("expected empty message, got %q", stdout.String())
	}
}

func TestDispatcher_TasksPersistAcrossInvocations(t *testing.T) {
	storage := kv.NewMemory()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(storage, ""))

	for _, text := range []string{"Buy milk", "Walk dog"} {
		if _, stderr, code := run(t, dispatcher, "add", text); code != exitcode.Success {
			t.Fatalf("add %q: exit %d, stderr %q", text, code, stderr)
		}
	}
	// "Buy milk" is second, newest first.
	if _, stderr, code := run(t, dispatcher, "done", "2"); code != exitcode.Success {
		t.Fatalf("done: exit %d, stderr %q", code, stderr)
	}

	stdout, _, code := run(t, dispatcher, "list", "--filter", "completed")
	if code != exitcode.Success {
		t.Fatalf("list: exit %d", code)
	}
	if !strings.Contains(stdout, "   2  [x] Buy milk\n") {
		t.Errorf("expected completed 'Buy milk' at position 2, got %q", stdout)
	}
	if strings.Contains(stdout, "Walk dog") {
		t.Errorf("active task shown under completed filter: %q", stdout)
	}
}

func TestDispatcher_FactoryErrorIsStorageError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (*app.App, error) {
		return nil, errors.New("database is locked")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, dispatcher, "list")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stderr != "error: storage error: database is locked\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_PostsCommand(t *testing.T) {
	server := testutil.NewPostsServer(t, testutil.SamplePosts(25))
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(kv.NewMemory(), server.URL))

	stdout, stderr, code := run(t, dispatcher, "posts", "--pages", "2")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "post 20\n") || strings.Contains(stdout, "post 21\n") {
		t.Errorf("expected posts 1-20, got %q", stdout)
	}
	if !strings.Contains(stdout, "20 of 25 posts loaded, more available.") {
		t.Errorf("expected pagination summary, got %q", stdout)
	}
}

func TestDispatcher_PostsBackendError(t *testing.T) {
	server := testutil.NewPostsServer(t, testutil.SamplePosts(5))
	server.SetFailStatus(503)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(kv.NewMemory(), server.URL))

	_, stderr, code := run(t, dispatcher, "posts")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: failed to fetch posts: HTTP 503\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_SQLiteEndToEnd(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)
	dir := t.TempDir()
	ctx := context.Background()

	var out, errOut bytes.Buffer
	if code := dispatcher.Run(ctx, []string{"add", "--config", dir, "Persist me"}, &out, &errOut); code != exitcode.Success {
		t.Fatalf("add: exit %d, stderr %q", code, errOut.String())
	}
	if code := dispatcher.Run(ctx, []string{"theme", "--config", dir, "dark"}, &out, &errOut); code != exitcode.Success {
		t.Fatalf("theme: exit %d, stderr %q", code, errOut.String())
	}

	out.Reset()
	if code := dispatcher.Run(ctx, []string{"list", "--config", dir}, &out, &errOut); code != exitcode.Success {
		t.Fatalf("list: exit %d, stderr %q", code, errOut.String())
	}
	if !strings.Contains(out.String(), "   1  [ ] Persist me\n") {
		t.Errorf("expected persisted task, got %q", out.String())
	}

	out.Reset()
	dispatcher.Run(ctx, []string{"theme", "--config", dir}, &out, &errOut)
	if out.String() != "dark\n" {
		t.Errorf("expected persisted dark theme, got %q", out.String())
	}
}
