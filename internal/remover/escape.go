package remover

import (
	"errors"
	"fmt"
	"strings"
)

// shellMetachars is every character that must carry a backslash before the
// path may ride on a privileged command line: quotes, substitution and
// chaining tokens, redirections, globs and whitespace.
const shellMetachars = "\\'\"`$;&|<>(){}[]*?~#!^ "

// shellEscape prepares an absolute path for inclusion as a single shell
// argument. Control characters cannot be escaped reliably, so any byte
// below 0x20 (or DEL) rejects the path outright.
func shellEscape(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}

	var b strings.Builder
	for _, r := range path {
		// SECURITY: NUL and control characters terminate or rewrite
		// command lines in ways escaping cannot neutralize.
		if r == 0 || r < 0x20 || r == 0x7f {
			return "", fmt.Errorf("control character 0x%02x in path", r)
		}
		if strings.ContainsRune(shellMetachars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// auditEscaped independently re-validates an escaped path before it reaches
// a privileged shell: every metacharacter must be escaped, the decoded path
// must be absolute, and no traversal segment may survive. It deliberately
// re-derives the plain path rather than trusting shellEscape's output.
func auditEscaped(escaped string) error {
	var plain strings.Builder

	runes := []rune(escaped)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' {
			i++
			if i >= len(runes) {
				return errors.New("dangling escape at end of path")
			}
			if !strings.ContainsRune(shellMetachars, runes[i]) {
				return fmt.Errorf("escape applied to unexpected character %q", runes[i])
			}
			plain.WriteRune(runes[i])
			continue
		}
		if strings.ContainsRune(shellMetachars, r) {
			return fmt.Errorf("unescaped shell metacharacter %q", r)
		}
		if r < 0x20 || r == 0x7f {
			return errors.New("control character survived escaping")
		}
		plain.WriteRune(r)
	}

	decoded := plain.String()
	if !strings.HasPrefix(decoded, "/") {
		return errors.New("privileged deletion requires an absolute path")
	}
	for _, seg := range strings.Split(decoded, "/") {
		if seg == ".." {
			return errors.New("traversal segment in privileged path")
		}
	}
	return nil
}

// appleScriptString escapes a string for embedding inside an AppleScript
// double-quoted literal. The shell-level escaping has already happened;
// this is the outer quoting layer.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
