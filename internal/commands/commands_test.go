package commands_test

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"todocli/internal/api"
	"todocli/internal/commands"
	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/session"
	"todocli/internal/testutil"
)

// runCommand executes cmd against a fresh session in a temp config dir
// and returns exit code, stdout and stderr.
func runCommand(t *testing.T, cmd commands.Command, svc api.Service, args ...string) (int, string, string) {
	t.Helper()
	cfg, err := config.New(t.TempDir(), "http://example.invalid")
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	store := session.NewFileStore(cfg.TokenPath())
	sess := session.NewManager(store, func(string) {})
	sess.Initialize()

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), cfg, sess, svc, args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestListCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", "", false)
	svc.AddTask(2, "Walk dog", "", true)

	code, out, _ := runCommand(t, &commands.ListCmd{}, svc)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.Contains(out, "1  [ ]  Buy milk") {
		t.Errorf("missing open task line, got:\n%s", out)
	}
	if !strings.Contains(out, "2  [x]") {
		t.Errorf("missing completed task line, got:\n%s", out)
	}
}

func TestListCmd_Empty(t *testing.T) {
	svc := testutil.NewFakeService()
	code, out, _ := runCommand(t, &commands.ListCmd{}, svc)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.Contains(out, "no tasks found") {
		t.Errorf("expected empty-list message, got:\n%s", out)
	}
}

func TestListCmd_OpenFilterKeepsNumbering(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "First", "", true)
	svc.AddTask(2, "Second", "", false)

	cmd := &commands.ListCmd{}
	cmd.SetOpenOnly(true)
	code, out, _ := runCommand(t, cmd, svc)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if strings.Contains(out, "First") {
		t.Errorf("completed task should be filtered, got:\n%s", out)
	}
	// Numbering follows the unfiltered list so refs stay stable.
	if !strings.Contains(out, "2  [ ]  Second") {
		t.Errorf("expected task numbered 2, got:\n%s", out)
	}
}

func TestListCmd_ServiceError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = &api.Error{Status: http.StatusInternalServerError, Detail: "boom"}

	code, _, errOut := runCommand(t, &commands.ListCmd{}, svc)
	if code != exitcode.BackendError {
		t.Errorf("expected backend error, got %d", code)
	}
	if !strings.Contains(errOut, "boom") {
		t.Errorf("expected server detail, got %q", errOut)
	}
}

func TestAddCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	code, out, _ := runCommand(t, &commands.AddCmd{}, svc, "Buy", "milk")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.Contains(out, "created 1") {
		t.Errorf("expected created id, got %q", out)
	}

	got, err := svc.GetTask(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Title != "Buy milk" {
		t.Errorf("expected joined title, got %q", got.Title)
	}
}

func TestAddCmd_WithDescription(t *testing.T) {
	svc := testutil.NewFakeService()
	cmd := &commands.AddCmd{}
	cmd.SetDescription("2 liters")
	code, _, _ := runCommand(t, cmd, svc, "Buy milk")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}

	got, _ := svc.GetTask(context.Background(), 1)
	if got.Description != "2 liters" {
		t.Errorf("expected description, got %q", got.Description)
	}
}

func TestAddCmd_TitleRequired(t *testing.T) {
	svc := testutil.NewFakeService()
	code, _, errOut := runCommand(t, &commands.AddCmd{}, svc)
	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(errOut, "title required") {
		t.Errorf("expected title error, got %q", errOut)
	}

	code, _, _ = runCommand(t, &commands.AddCmd{}, svc, "   ")
	if code != exitcode.UserError {
		t.Errorf("expected user error for blank title, got %d", code)
	}
}

func TestDoneCmd_Toggles(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", "", false)

	code, out, _ := runCommand(t, &commands.DoneCmd{}, svc, "1")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("expected ok, got %q", out)
	}
	if got, _ := svc.GetTask(context.Background(), 1); !got.Completed {
		t.Error("expected task completed after done")
	}

	// Running it again reopens the task.
	runCommand(t, &commands.DoneCmd{}, svc, "1")
	if got, _ := svc.GetTask(context.Background(), 1); got.Completed {
		t.Error("expected task reopened after second done")
	}
}

func TestDoneCmd_BadRef(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", "", false)

	cases := []struct {
		name string
		args []string
	}{
		{"missing", nil},
		{"non-numeric", []string{"abc"}},
		{"zero", []string{"0"}},
		{"out of range", []string{"9"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, errOut := runCommand(t, &commands.DoneCmd{}, svc, tc.args...)
			if code != exitcode.UserError {
				t.Errorf("expected user error, got %d (stderr %q)", code, errOut)
			}
		})
	}
}

func TestRmCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "First", "", false)
	svc.AddTask(2, "Second", "", false)

	code, _, _ := runCommand(t, &commands.RmCmd{}, svc, "1")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}

	remaining, _ := svc.ListTasks(context.Background())
	if len(remaining) != 1 || remaining[0].Title != "Second" {
		t.Errorf("expected only Second to remain, got %+v", remaining)
	}
}

func TestEditCmd_Title(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Old title", "keep me", false)

	cmd := &commands.EditCmd{}
	cmd.SetTitle("New title")
	code, _, _ := runCommand(t, cmd, svc, "1")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}

	got, _ := svc.GetTask(context.Background(), 1)
	if got.Title != "New title" {
		t.Errorf("expected new title, got %q", got.Title)
	}
	if got.Description != "keep me" {
		t.Errorf("description should be untouched, got %q", got.Description)
	}
}

func TestEditCmd_NothingToUpdate(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Title", "", false)

	code, _, errOut := runCommand(t, &commands.EditCmd{}, svc, "1")
	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(errOut, "nothing to update") {
		t.Errorf("expected nothing-to-update error, got %q", errOut)
	}
}

func TestEditCmd_BlankTitleRejected(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Title", "", false)

	cmd := &commands.EditCmd{}
	cmd.SetTitle("   ")
	code, _, errOut := runCommand(t, cmd, svc, "1")
	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(errOut, "title required") {
		t.Errorf("expected title error, got %q", errOut)
	}
}

func TestShowCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", "2 liters", true)

	code, out, _ := runCommand(t, &commands.ShowCmd{}, svc, "1")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	for _, want := range []string{"id:", "Buy milk", "2 liters", "completed"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRegisterCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	code, out, _ := runCommand(t, &commands.RegisterCmd{}, svc, "alice", "secret")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.Contains(out, "registered alice") {
		t.Errorf("expected registration message, got %q", out)
	}
}

func TestRegisterCmd_ArgsRequired(t *testing.T) {
	svc := testutil.NewFakeService()
	code, _, errOut := runCommand(t, &commands.RegisterCmd{}, svc, "alice")
	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(errOut, "username and password required") {
		t.Errorf("unexpected stderr: %q", errOut)
	}
}

func TestQuietSuppressesConfirmations(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Task", "", false)

	cfg, err := config.New(t.TempDir(), "http://example.invalid")
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	cfg.Quiet = true
	store := session.NewFileStore(cfg.TokenPath())
	sess := session.NewManager(store, func(string) {})
	sess.Initialize()

	var out, errOut bytes.Buffer
	code := (&commands.DoneCmd{}).Run(context.Background(), cfg, sess, svc, []string{"1"}, &out, &errOut)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output in quiet mode, got %q", out.String())
	}
}

func TestErrorExitCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", &api.Error{Status: http.StatusUnauthorized, Detail: "no"}, exitcode.AuthError},
		{"not found", &api.Error{Status: http.StatusNotFound, Detail: "gone"}, exitcode.UserError},
		{"server error", &api.Error{Status: http.StatusInternalServerError, Detail: "boom"}, exitcode.BackendError},
		{"transport", context.DeadlineExceeded, exitcode.BackendError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			svc.ListTasksErr = tc.err
			code, _, _ := runCommand(t, &commands.ListCmd{}, svc)
			if code != tc.want {
				t.Errorf("expected exit %d, got %d", tc.want, code)
			}
		})
	}
}

func TestRegistryLookup(t *testing.T) {
	for _, name := range []string{"list", "ls", "add", "create", "done", "toggle", "edit", "rm", "delete", "show", "login", "logout", "register", "help", "version"} {
		if _, ok := commands.DefaultRegistry.Lookup(name); !ok {
			t.Errorf("expected %q registered", name)
		}
	}
	if _, ok := commands.DefaultRegistry.Lookup("nope"); ok {
		t.Error("unexpected command 'nope'")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.ListCmd{}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := r.Register(&commands.ListCmd{}); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestTokenFileUnusedByReadOnlyCommands(t *testing.T) {
	// Commands talk to the service through svc; they never read the
	// token file themselves. A missing file must not break anything.
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Task", "", false)

	cfg, err := config.New(filepath.Join(t.TempDir(), "missing"), "http://example.invalid")
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	store := session.NewFileStore(cfg.TokenPath())
	sess := session.NewManager(store, func(string) {})
	sess.Initialize()

	var out, errOut bytes.Buffer
	code := (&commands.ListCmd{}).Run(context.Background(), cfg, sess, svc, nil, &out, &errOut)
	if code != exitcode.Success {
		t.Errorf("expected success, got %d (stderr %q)", code, errOut.String())
	}
}
