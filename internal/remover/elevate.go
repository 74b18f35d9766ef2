package remover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// Elevator performs administrator-privileged deletions of a single path.
type Elevator interface {
	Delete(path string) error
}

const (
	adminSessionTimeout = 5 * time.Minute
	sudoCommandTimeout  = 30 * time.Second
	// The OS authorization dialog waits on the user.
	authorizationTimeout = 2 * time.Minute
)

// AdminSession is the default Elevator. On darwin each deletion goes
// through the OS authorization prompt via osascript; elsewhere a sudo
// session is established once and reused until it expires. The password is
// held only as long as the session and zeroed on clear.
type AdminSession struct {
	mu            sync.Mutex
	goos          string
	password      []byte
	authenticated bool
	sessionExpiry time.Time

	runner func(ctx context.Context, stdin []byte, name string, args ...string) error
	prompt func() ([]byte, error)
}

// NewAdminSession creates an AdminSession for the current OS.
func NewAdminSession() *AdminSession {
	return &AdminSession{
		goos:   runtime.GOOS,
		runner: runCommand,
		prompt: promptPassword,
	}
}

// Available reports whether an elevation channel exists on this system.
func (s *AdminSession) Available() bool {
	if s.goos == "darwin" {
		_, err := exec.LookPath("osascript")
		return err == nil
	}
	_, err := exec.LookPath("sudo")
	return err == nil
}

// Delete removes path with administrator privileges. The path is escaped
// and audited before any prompt is shown; success is confirmed by the
// target no longer existing.
func (s *AdminSession) Delete(path string) error {
	escaped, err := shellEscape(path)
	if err != nil {
		return newError(path, ReasonMaliciousPath, err)
	}
	// SECURITY: independent second check so a single escaping bug cannot
	// reach the privileged shell.
	if err := auditEscaped(escaped); err != nil {
		return newError(path, ReasonMaliciousPath, err)
	}

	if s.goos == "darwin" {
		err = s.deleteViaAuthorization(escaped)
	} else {
		err = s.deleteViaSudo(path)
	}
	if err != nil {
		return err
	}

	if _, statErr := os.Lstat(path); !os.IsNotExist(statErr) {
		return fmt.Errorf("privileged deletion reported success but %s still exists", path)
	}
	return nil
}

// deleteViaAuthorization wraps the escaped path in a single quoted shell
// command run under the OS authorization prompt.
func (s *AdminSession) deleteViaAuthorization(escaped string) error {
	script := fmt.Sprintf("do shell script \"rm -rf %s\" with administrator privileges",
		appleScriptString(escaped))

	ctx, cancel := context.WithTimeout(context.Background(), authorizationTimeout)
	defer cancel()

	if err := s.runner(ctx, nil, "osascript", "-e", script); err != nil {
		return fmt.Errorf("administrator deletion failed: %w", err)
	}
	return nil
}

// deleteViaSudo invokes rm with the raw path as a single argv element; no
// shell ever parses it.
func (s *AdminSession) deleteViaSudo(path string) error {
	if err := s.ensureAuthenticated(); err != nil {
		return err
	}

	s.mu.Lock()
	stdin := append([]byte(nil), s.password...)
	s.mu.Unlock()
	stdin = append(stdin, '\n')
	defer clearBytes(stdin)

	ctx, cancel := context.WithTimeout(context.Background(), sudoCommandTimeout)
	defer cancel()

	if err := s.runner(ctx, stdin, "sudo", "-S", "-p", "", "rm", "-rf", "--", path); err != nil {
		return fmt.Errorf("sudo deletion failed: %w", err)
	}
	return nil
}

// ensureAuthenticated establishes or refreshes the sudo session.
func (s *AdminSession) ensureAuthenticated() error {
	s.mu.Lock()
	valid := s.authenticated && time.Now().Before(s.sessionExpiry)
	s.mu.Unlock()
	if valid {
		return nil
	}
	return s.authenticate()
}

func (s *AdminSession) authenticate() error {
	// A cached passwordless session needs no prompt.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err := s.runner(ctx, nil, "sudo", "-n", "true")
	cancel()
	if err == nil {
		s.mu.Lock()
		s.authenticated = true
		s.sessionExpiry = time.Now().Add(adminSessionTimeout)
		s.mu.Unlock()
		return nil
	}

	password, err := s.prompt()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return errors.New("password cannot be empty")
	}

	if err := s.validatePassword(password); err != nil {
		clearBytes(password)
		return err
	}

	s.mu.Lock()
	clearBytes(s.password)
	s.password = password
	s.authenticated = true
	s.sessionExpiry = time.Now().Add(adminSessionTimeout)
	s.mu.Unlock()
	return nil
}

func (s *AdminSession) validatePassword(password []byte) error {
	stdin := append([]byte(nil), password...)
	stdin = append(stdin, '\n')
	defer clearBytes(stdin)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.runner(ctx, stdin, "sudo", "-S", "-p", "", "-v"); err != nil {
		msg := err.Error()
		if strings.Contains(msg, "Sorry") || strings.Contains(msg, "try again") || strings.Contains(msg, "incorrect") {
			return errors.New("authentication failed: incorrect password")
		}
		return fmt.Errorf("sudo validation failed: %w", err)
	}
	return nil
}

// Clear forgets the session and zeroes the held password.
func (s *AdminSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clearBytes(s.password)
	s.password = nil
	s.authenticated = false
	s.sessionExpiry = time.Time{}
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func promptPassword() ([]byte, error) {
	fmt.Print("\n🔐 Administrator privileges are required for some items.\nPassword: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	return password, err
}

// runCommand executes a command, feeding stdin when given and folding the
// first stderr line into the returned error.
func runCommand(ctx context.Context, stdin []byte, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			if i := strings.IndexByte(msg, '\n'); i > 0 {
				msg = msg[:i]
			}
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
