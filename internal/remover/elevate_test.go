package remover

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordedCall struct {
	name  string
	args  []string
	stdin string
}

// stubRunner captures commands and lets each test script the responses.
type stubRunner struct {
	calls  []recordedCall
	handle func(call recordedCall) error
}

func (r *stubRunner) run(_ context.Context, stdin []byte, name string, args ...string) error {
	call := recordedCall{name: name, args: args, stdin: string(stdin)}
	r.calls = append(r.calls, call)
	if r.handle != nil {
		return r.handle(call)
	}
	return nil
}

func testFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifact")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAdminSessionDeleteAuthorization(t *testing.T) {
	path := testFile(t)

	runner := &stubRunner{
		handle: func(call recordedCall) error {
			return os.RemoveAll(path)
		},
	}
	s := &AdminSession{goos: "darwin", runner: runner.run}

	if err := s.Delete(path); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("runner invoked %d times, want 1", len(runner.calls))
	}
	call := runner.calls[0]
	if call.name != "osascript" || len(call.args) != 2 || call.args[0] != "-e" {
		t.Fatalf("call = %+v, want osascript -e <script>", call)
	}
	script := call.args[1]
	if !strings.Contains(script, "with administrator privileges") {
		t.Errorf("script missing authorization clause: %q", script)
	}
	if !strings.Contains(script, "rm -rf "+path) {
		t.Errorf("script missing deletion of %q: %q", path, script)
	}
}

func TestAdminSessionDeleteSudo(t *testing.T) {
	path := testFile(t)

	runner := &stubRunner{
		handle: func(call recordedCall) error {
			if len(call.args) > 0 && call.args[0] == "-n" {
				return nil // cached passwordless session
			}
			return os.RemoveAll(path)
		},
	}
	s := &AdminSession{goos: "linux", runner: runner.run}

	if err := s.Delete(path); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	last := runner.calls[len(runner.calls)-1]
	if last.name != "sudo" {
		t.Fatalf("last call = %+v, want sudo", last)
	}
	joined := strings.Join(last.args, " ")
	if !strings.Contains(joined, "rm -rf -- "+path) {
		t.Errorf("sudo argv = %q, want single-argument rm with separator", joined)
	}
}

func TestAdminSessionPromptsOnceAndReuses(t *testing.T) {
	first := testFile(t)
	second := testFile(t)

	prompts := 0
	runner := &stubRunner{
		handle: func(call recordedCall) error {
			switch {
			case len(call.args) > 0 && call.args[0] == "-n":
				return errors.New("password required")
			case len(call.args) > 0 && call.args[len(call.args)-1] == "-v":
				if call.stdin != "hunter2\n" {
					return errors.New("Sorry, try again")
				}
				return nil
			default:
				return os.RemoveAll(call.args[len(call.args)-1])
			}
		},
	}
	s := &AdminSession{
		goos:   "linux",
		runner: runner.run,
		prompt: func() ([]byte, error) {
			prompts++
			return []byte("hunter2"), nil
		},
	}

	if err := s.Delete(first); err != nil {
		t.Fatalf("Delete(first) error = %v", err)
	}
	if err := s.Delete(second); err != nil {
		t.Fatalf("Delete(second) error = %v", err)
	}
	if prompts != 1 {
		t.Errorf("password prompted %d times, want 1 (session reused)", prompts)
	}
}

func TestAdminSessionWrongPassword(t *testing.T) {
	path := testFile(t)

	runner := &stubRunner{
		handle: func(call recordedCall) error {
			if len(call.args) > 0 && call.args[0] == "-n" {
				return errors.New("password required")
			}
			return errors.New("Sorry, try again")
		},
	}
	s := &AdminSession{
		goos:   "linux",
		runner: runner.run,
		prompt: func() ([]byte, error) { return []byte("wrong"), nil },
	}

	err := s.Delete(path)
	if err == nil {
		t.Fatal("Delete() error = nil, want authentication failure")
	}
	if !strings.Contains(err.Error(), "incorrect password") {
		t.Errorf("error = %v, want incorrect password", err)
	}
}

func TestAdminSessionRejectsMaliciousPath(t *testing.T) {
	runner := &stubRunner{}
	s := &AdminSession{goos: "darwin", runner: runner.run}

	err := s.Delete("/tmp/evil\nrm -rf /")
	if err == nil {
		t.Fatal("Delete() error = nil, want MaliciousPath rejection")
	}

	var remErr *RemovalError
	if !errors.As(err, &remErr) || remErr.Reason != ReasonMaliciousPath {
		t.Errorf("error = %v, want MaliciousPath", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("runner invoked %d times for a rejected path, want 0", len(runner.calls))
	}
}

func TestAdminSessionConfirmsRemoval(t *testing.T) {
	path := testFile(t)

	// Runner claims success but leaves the file in place.
	runner := &stubRunner{handle: func(recordedCall) error { return nil }}
	s := &AdminSession{goos: "darwin", runner: runner.run}

	err := s.Delete(path)
	if err == nil || !strings.Contains(err.Error(), "still exists") {
		t.Errorf("Delete() error = %v, want still-exists confirmation failure", err)
	}
}

func TestAdminSessionClearZeroesPassword(t *testing.T) {
	s := &AdminSession{goos: "linux", password: []byte("hunter2"), authenticated: true}
	held := s.password

	s.Clear()

	for i, b := range held {
		if b != 0 {
			t.Fatalf("password byte %d not zeroed", i)
		}
	}
	if s.password != nil || s.authenticated {
		t.Error("Clear() left session state behind")
	}
}
