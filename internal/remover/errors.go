package remover

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// Reason categorizes why a removal failed. The set is closed: every failure
// an artifact can produce maps onto exactly one of these.
type Reason int

const (
	ReasonPermissionDenied Reason = iota
	ReasonFileNotFound
	ReasonSystemProtected
	ReasonInvalidPath
	ReasonSymlinkAttack
	ReasonHardlinkAttack
	ReasonMaliciousPath
	ReasonUnknown
)

// String returns a human-readable reason
func (r Reason) String() string {
	switch r {
	case ReasonPermissionDenied:
		return "Permission denied"
	case ReasonFileNotFound:
		return "File not found"
	case ReasonSystemProtected:
		return "System protected"
	case ReasonInvalidPath:
		return "Invalid path"
	case ReasonSymlinkAttack:
		return "Symlink attack detected"
	case ReasonHardlinkAttack:
		return "Hardlink attack detected"
	case ReasonMaliciousPath:
		return "Malicious path rejected"
	case ReasonUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// SecurityRejection reports whether the reason is one of the attack
// detections, which the presentation layer surfaces distinctly.
func (r Reason) SecurityRejection() bool {
	switch r {
	case ReasonSymlinkAttack, ReasonHardlinkAttack, ReasonMaliciousPath:
		return true
	default:
		return false
	}
}

// RemovalError is a categorized removal failure for one path.
type RemovalError struct {
	Path       string
	Reason     Reason
	Original   error
	Retryable  bool
	NeedsAdmin bool
}

// Error implements the error interface
func (e *RemovalError) Error() string {
	if e.Original == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Path, e.Reason, e.Original)
}

// Unwrap exposes the underlying OS error for errors.Is/As chains.
func (e *RemovalError) Unwrap() error {
	return e.Original
}

// UserMessage returns a user-friendly error message
func (e *RemovalError) UserMessage() string {
	switch e.Reason {
	case ReasonPermissionDenied:
		if e.NeedsAdmin {
			return fmt.Sprintf("⚠️  Need administrator privileges to remove: %s", e.Path)
		}
		return fmt.Sprintf("⚠️  Permission denied: %s", e.Path)
	case ReasonFileNotFound:
		return fmt.Sprintf("ℹ️  Already removed: %s", e.Path)
	case ReasonSystemProtected:
		return fmt.Sprintf("🛡️  Protected by the system, left in place: %s", e.Path)
	case ReasonInvalidPath:
		return fmt.Sprintf("❌ Path is outside removable locations: %s", e.Path)
	case ReasonSymlinkAttack:
		return fmt.Sprintf("🚨 Refused: symlink manipulation detected at %s", e.Path)
	case ReasonHardlinkAttack:
		return fmt.Sprintf("🚨 Refused: suspicious hard link count at %s", e.Path)
	case ReasonMaliciousPath:
		return fmt.Sprintf("🚨 Refused: path cannot be safely escaped: %s", e.Path)
	default:
		return fmt.Sprintf("❌ Error removing %s: %v", e.Path, e.Original)
	}
}

// newError builds a RemovalError with a fixed reason, independent of the
// underlying OS error.
func newError(path string, reason Reason, original error) *RemovalError {
	return &RemovalError{Path: path, Reason: reason, Original: original}
}

// CategorizeError analyzes an OS error and returns a categorized
// RemovalError.
func CategorizeError(path string, err error) *RemovalError {
	if err == nil {
		return nil
	}

	remErr := &RemovalError{
		Path:     path,
		Original: err,
		Reason:   ReasonUnknown,
	}

	var already *RemovalError
	if errors.As(err, &already) {
		return already
	}

	if os.IsNotExist(err) {
		remErr.Reason = ReasonFileNotFound
		return remErr
	}

	if os.IsPermission(err) {
		remErr.Reason = ReasonPermissionDenied
		remErr.NeedsAdmin = true
		return remErr
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EACCES, syscall.EPERM:
			remErr.Reason = ReasonPermissionDenied
			remErr.NeedsAdmin = true
		case syscall.EROFS:
			remErr.Reason = ReasonSystemProtected
		case syscall.ENOENT:
			remErr.Reason = ReasonFileNotFound
		case syscall.EBUSY, syscall.ETXTBSY:
			remErr.Reason = ReasonUnknown
			remErr.Retryable = true
		}
		return remErr
	}

	return remErr
}

// GroupByReason groups removal errors by reason
func GroupByReason(errs []*RemovalError) map[Reason][]*RemovalError {
	grouped := make(map[Reason][]*RemovalError)
	for _, err := range errs {
		grouped[err.Reason] = append(grouped[err.Reason], err)
	}
	return grouped
}

// FormatErrorSummary creates a user-friendly summary of errors
func FormatErrorSummary(errs []*RemovalError) string {
	if len(errs) == 0 {
		return ""
	}

	grouped := GroupByReason(errs)
	summary := "\n⚠️  Issues encountered:\n"

	if perms, ok := grouped[ReasonPermissionDenied]; ok {
		summary += fmt.Sprintf("   ├─ Permission denied: %d items\n", len(perms))
		summary += "   │  └─ Tip: rerun and approve the administrator prompt\n"
	}
	if protected, ok := grouped[ReasonSystemProtected]; ok {
		summary += fmt.Sprintf("   ├─ System protected: %d items\n", len(protected))
	}
	if missing, ok := grouped[ReasonFileNotFound]; ok {
		summary += fmt.Sprintf("   ├─ Already removed: %d items\n", len(missing))
	}
	if invalid, ok := grouped[ReasonInvalidPath]; ok {
		summary += fmt.Sprintf("   ├─ Outside removable locations: %d items\n", len(invalid))
	}

	var attacks int
	for _, reason := range []Reason{ReasonSymlinkAttack, ReasonHardlinkAttack, ReasonMaliciousPath} {
		attacks += len(grouped[reason])
	}
	if attacks > 0 {
		summary += fmt.Sprintf("   ├─ Security rejections: %d items\n", attacks)
		summary += "   │  └─ These paths changed underneath the tool and were left alone\n"
	}

	if unknown, ok := grouped[ReasonUnknown]; ok {
		summary += fmt.Sprintf("   └─ Other errors: %d items\n", len(unknown))
	}

	return summary
}
