package remover

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"testing"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantReason     Reason
		wantNeedsAdmin bool
		wantRetryable  bool
	}{
		{
			name:       "not exist",
			err:        os.ErrNotExist,
			wantReason: ReasonFileNotFound,
		},
		{
			name:       "wrapped path error not exist",
			err:        &os.PathError{Op: "lstat", Path: "/x", Err: syscall.ENOENT},
			wantReason: ReasonFileNotFound,
		},
		{
			name:           "permission",
			err:            os.ErrPermission,
			wantReason:     ReasonPermissionDenied,
			wantNeedsAdmin: true,
		},
		{
			name:           "eacces errno",
			err:            &os.PathError{Op: "unlinkat", Path: "/x", Err: syscall.EACCES},
			wantReason:     ReasonPermissionDenied,
			wantNeedsAdmin: true,
		},
		{
			name:           "eperm errno",
			err:            &os.PathError{Op: "unlinkat", Path: "/x", Err: syscall.EPERM},
			wantReason:     ReasonPermissionDenied,
			wantNeedsAdmin: true,
		},
		{
			name:          "busy errno",
			err:           &os.PathError{Op: "unlinkat", Path: "/x", Err: syscall.EBUSY},
			wantReason:    ReasonUnknown,
			wantRetryable: true,
		},
		{
			name:       "read-only filesystem",
			err:        &os.PathError{Op: "unlinkat", Path: "/x", Err: syscall.EROFS},
			wantReason: ReasonSystemProtected,
		},
		{
			name:       "plain error",
			err:        errors.New("something odd"),
			wantReason: ReasonUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategorizeError("/x", tt.err)
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %v, want %v", got.Reason, tt.wantReason)
			}
			if got.NeedsAdmin != tt.wantNeedsAdmin {
				t.Errorf("NeedsAdmin = %v, want %v", got.NeedsAdmin, tt.wantNeedsAdmin)
			}
			if got.Retryable != tt.wantRetryable {
				t.Errorf("Retryable = %v, want %v", got.Retryable, tt.wantRetryable)
			}
			if got.Path != "/x" {
				t.Errorf("Path = %q, want /x", got.Path)
			}
		})
	}
}

func TestCategorizeErrorNil(t *testing.T) {
	if got := CategorizeError("/x", nil); got != nil {
		t.Errorf("CategorizeError(nil) = %v, want nil", got)
	}
}

func TestCategorizeErrorKeepsTypedReason(t *testing.T) {
	inner := newError("/y", ReasonSymlinkAttack, errors.New("planted link"))
	wrapped := fmt.Errorf("while removing: %w", inner)

	got := CategorizeError("/x", wrapped)
	if got.Reason != ReasonSymlinkAttack {
		t.Errorf("Reason = %v, want SymlinkAttack preserved through wrapping", got.Reason)
	}
	if got.Path != "/y" {
		t.Errorf("Path = %q, want the original error's path", got.Path)
	}
}

func TestRemovalErrorUnwrap(t *testing.T) {
	remErr := CategorizeError("/x", &os.PathError{Op: "open", Path: "/x", Err: syscall.ENOENT})
	if !errors.Is(remErr, os.ErrNotExist) {
		t.Error("errors.Is(remErr, os.ErrNotExist) = false, want true")
	}
}

func TestReasonStrings(t *testing.T) {
	reasons := []Reason{
		ReasonPermissionDenied,
		ReasonFileNotFound,
		ReasonSystemProtected,
		ReasonInvalidPath,
		ReasonSymlinkAttack,
		ReasonHardlinkAttack,
		ReasonMaliciousPath,
		ReasonUnknown,
	}
	seen := make(map[string]bool)
	for _, r := range reasons {
		s := r.String()
		if s == "" || s == "Unspecified error" {
			t.Errorf("Reason(%d).String() = %q", int(r), s)
		}
		if seen[s] {
			t.Errorf("duplicate reason string %q", s)
		}
		seen[s] = true
	}
	if Reason(99).String() != "Unspecified error" {
		t.Errorf("out-of-range reason = %q", Reason(99).String())
	}
}

func TestSecurityRejection(t *testing.T) {
	for _, r := range []Reason{ReasonSymlinkAttack, ReasonHardlinkAttack, ReasonMaliciousPath} {
		if !r.SecurityRejection() {
			t.Errorf("%v.SecurityRejection() = false, want true", r)
		}
	}
	for _, r := range []Reason{ReasonPermissionDenied, ReasonFileNotFound, ReasonSystemProtected, ReasonInvalidPath, ReasonUnknown} {
		if r.SecurityRejection() {
			t.Errorf("%v.SecurityRejection() = true, want false", r)
		}
	}
}

func TestGroupByReason(t *testing.T) {
	errs := []*RemovalError{
		newError("/a", ReasonPermissionDenied, nil),
		newError("/b", ReasonPermissionDenied, nil),
		newError("/c", ReasonSymlinkAttack, nil),
	}

	grouped := GroupByReason(errs)
	if len(grouped[ReasonPermissionDenied]) != 2 {
		t.Errorf("PermissionDenied group size = %d, want 2", len(grouped[ReasonPermissionDenied]))
	}
	if len(grouped[ReasonSymlinkAttack]) != 1 {
		t.Errorf("SymlinkAttack group size = %d, want 1", len(grouped[ReasonSymlinkAttack]))
	}
}

func TestFormatErrorSummary(t *testing.T) {
	if got := FormatErrorSummary(nil); got != "" {
		t.Errorf("FormatErrorSummary(nil) = %q, want empty", got)
	}

	errs := []*RemovalError{
		newError("/a", ReasonPermissionDenied, nil),
		newError("/b", ReasonSystemProtected, nil),
		newError("/c", ReasonSymlinkAttack, nil),
		newError("/d", ReasonHardlinkAttack, nil),
	}

	summary := FormatErrorSummary(errs)
	if !strings.Contains(summary, "Permission denied: 1") {
		t.Errorf("summary missing permission count:\n%s", summary)
	}
	if !strings.Contains(summary, "System protected: 1") {
		t.Errorf("summary missing protected count:\n%s", summary)
	}
	if !strings.Contains(summary, "Security rejections: 2") {
		t.Errorf("summary missing security count:\n%s", summary)
	}
}
