// Package remover executes artifact removal batches: per-item validation,
// anti-race re-verification, trash or permanent deletion, and typed
// per-item outcomes. A batch never aborts early.
package remover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/appsweep/internal/discovery"
	"github.com/fenilsonani/appsweep/internal/security"
	"github.com/fenilsonani/appsweep/internal/trash"
)

// Mode selects what happens to a removed artifact.
type Mode int

const (
	ModeTrash Mode = iota
	ModePermanent
)

func (m Mode) String() string {
	if m == ModeTrash {
		return "trash"
	}
	return "permanent"
}

// ParseMode converts a config or flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "trash":
		return ModeTrash, nil
	case "permanent", "delete":
		return ModePermanent, nil
	default:
		return ModeTrash, fmt.Errorf("unknown removal mode %q", s)
	}
}

// Outcome is the result of one artifact's removal attempt. Exactly one is
// produced per artifact in the batch.
type Outcome struct {
	Path    string
	Success bool
	Err     *RemovalError
}

// ProgressFunc receives (completed, total) after each artifact finishes,
// successfully or not. completed is gap-free from 1 to total.
type ProgressFunc func(completed, total int)

// Engine removes artifacts under the classifier's authority. It re-derives
// every eligibility decision itself; discovery output is never trusted.
type Engine struct {
	classifier *security.Classifier
	bin        *trash.Bin
	elevator   Elevator
	dryRun     bool

	// Test seams: invoked between the phases of removeOne when non-nil.
	afterValidate func(path string)
	afterVerify   func(path string)
}

// NewEngine creates a removal engine. bin may be nil when trashing is never
// requested; elevator may be nil to disable privileged deletion.
func NewEngine(classifier *security.Classifier, bin *trash.Bin, elevator Elevator) *Engine {
	return &Engine{
		classifier: classifier,
		bin:        bin,
		elevator:   elevator,
	}
}

// SetDryRun makes the engine run validation and verification but skip the
// destructive action, reporting success for items that would be removed.
func (e *Engine) SetDryRun(v bool) {
	e.dryRun = v
}

// Remove processes the batch strictly sequentially and returns one Outcome
// per artifact, in input order. onProgress, when non-nil, fires after every
// item. A failing item never stops the batch.
func (e *Engine) Remove(artifacts []discovery.CandidateArtifact, mode Mode, onProgress ProgressFunc) []Outcome {
	total := len(artifacts)
	outcomes := make([]Outcome, 0, total)

	for i, artifact := range artifacts {
		outcomes = append(outcomes, e.removeOne(artifact.Path, mode))
		if onProgress != nil {
			onProgress(i+1, total)
		}
	}
	return outcomes
}

// removeOne runs the validate, re-verify, act sequence for a single path.
// It converts panics into a typed outcome so the batch driver survives
// anything an item throws at it.
func (e *Engine) removeOne(path string, mode Mode) (out Outcome) {
	out = Outcome{Path: path}
	defer func() {
		if r := recover(); r != nil {
			out.Success = false
			out.Err = newError(path, ReasonUnknown, fmt.Errorf("panic during removal: %v", r))
		}
	}()

	resolved, remErr := e.validate(path)
	if remErr != nil {
		out.Err = remErr
		return out
	}
	if e.afterValidate != nil {
		e.afterValidate(resolved)
	}

	requiresAdmin := e.classifier.RequiresElevation(resolved)

	handle, id, remErr := e.verify(resolved, requiresAdmin)
	if remErr != nil {
		out.Err = remErr
		return out
	}
	if e.afterVerify != nil {
		e.afterVerify(resolved)
	}

	if e.dryRun {
		if handle != nil {
			handle.Close()
		}
		out.Success = true
		return out
	}

	if requiresAdmin {
		// Elevated execution happens out-of-process; holding the handle
		// open would only pin the inode.
		if handle != nil {
			handle.Close()
		}
		if remErr := e.deleteElevated(resolved); remErr != nil {
			out.Err = remErr
			return out
		}
		out.Success = true
		return out
	}

	if handle != nil {
		defer handle.Close()

		// Final identity re-check immediately before acting.
		current, err := identityFromPath(resolved)
		if err != nil {
			out.Err = CategorizeError(resolved, err)
			return out
		}
		if !current.same(id) {
			out.Err = newError(resolved, ReasonSymlinkAttack, errors.New("file identity changed before removal"))
			return out
		}
	}

	if err := e.dispose(resolved, mode); err != nil {
		out.Err = CategorizeError(resolved, err)
		return out
	}

	out.Success = true
	return out
}

// validate rejects traversal, resolves symlinks, applies the symlink
// tolerance rule, and runs the composite eligibility check. It returns the
// resolved path all later phases operate on.
func (e *Engine) validate(path string) (string, *RemovalError) {
	if path == "" || !filepath.IsAbs(path) {
		return "", newError(path, ReasonInvalidPath, errors.New("path must be absolute"))
	}
	if hasTraversal(path) {
		return "", newError(path, ReasonInvalidPath, errors.New("path contains a traversal segment"))
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", newError(path, ReasonFileNotFound, err)
		}
		return "", CategorizeError(path, err)
	}
	resolved = filepath.Clean(resolved)

	cleaned := filepath.Clean(path)
	if resolved != cleaned &&
		!(e.classifier.WithinSymlinkTolerantRoots(cleaned) && e.classifier.WithinSymlinkTolerantRoots(resolved)) {
		return "", newError(path, ReasonSymlinkAttack, fmt.Errorf("path resolves elsewhere: %s", resolved))
	}

	decision := e.classifier.ClassifyForRemoval(resolved)
	if decision.Blocked || decision.IntegrityProtected {
		return "", newError(path, ReasonSystemProtected, nil)
	}
	if !decision.WithinAllowedRoots {
		return "", newError(path, ReasonInvalidPath, errors.New("path is outside removable locations"))
	}

	return resolved, nil
}

// verify opens the resolved path without following a final symlink and pins
// its identity through the handle. For admin-owned entries that refuse an
// unprivileged open, verification is skipped — the privileged channel
// re-validates on its own — signaled by a nil handle.
func (e *Engine) verify(resolved string, requiresAdmin bool) (*os.File, fileIdentity, *RemovalError) {
	handle, err := openNoFollow(resolved)
	if err != nil {
		if isNoFollowRefusal(err) {
			return nil, fileIdentity{}, newError(resolved, ReasonSymlinkAttack, err)
		}
		if os.IsPermission(err) && requiresAdmin {
			return nil, fileIdentity{}, nil
		}
		return nil, fileIdentity{}, CategorizeError(resolved, err)
	}

	id, err := identityFromHandle(handle)
	if err != nil {
		handle.Close()
		return nil, fileIdentity{}, CategorizeError(resolved, err)
	}

	if hardlinkSuspect(id, requiresAdmin) {
		handle.Close()
		return nil, fileIdentity{}, newError(resolved, ReasonHardlinkAttack,
			fmt.Errorf("regular file has %d links", id.nlink))
	}

	pathID, err := identityFromPath(resolved)
	if err != nil {
		handle.Close()
		return nil, fileIdentity{}, CategorizeError(resolved, err)
	}
	if !id.same(pathID) {
		handle.Close()
		return nil, fileIdentity{}, newError(resolved, ReasonSymlinkAttack,
			errors.New("file identity changed between open and stat"))
	}

	return handle, id, nil
}

// dispose moves the path to the trash or deletes it. A failed trash move
// falls through to permanent deletion, escalating to the privileged channel
// only when plain deletion is refused.
func (e *Engine) dispose(path string, mode Mode) error {
	if mode == ModeTrash && e.bin != nil {
		if err := e.bin.Put(path); err == nil {
			return nil
		}
	}

	err := os.RemoveAll(path)
	if err == nil {
		return nil
	}
	if os.IsPermission(err) && e.elevator != nil {
		if delErr := e.elevator.Delete(path); delErr != nil {
			return delErr
		}
		return nil
	}
	return err
}

func (e *Engine) deleteElevated(path string) *RemovalError {
	if e.elevator == nil {
		remErr := newError(path, ReasonPermissionDenied, errors.New("no elevation channel configured"))
		remErr.NeedsAdmin = true
		return remErr
	}
	if err := e.elevator.Delete(path); err != nil {
		remErr := CategorizeError(path, err)
		remErr.NeedsAdmin = true
		return remErr
	}
	return nil
}

// hasTraversal checks the unresolved path for dot-dot segments.
func hasTraversal(path string) bool {
	for _, seg := range strings.Split(path, string(filepath.Separator)) {
		if seg == ".." {
			return true
		}
	}
	return false
}
