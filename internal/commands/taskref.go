package commands

import (
	"errors"
	"fmt"
	"strings"

	"tasklist/internal/session"
	"tasklist/internal/store"
	"tasklist/internal/task"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef validates a single task reference.
//
// Parsing rules:
// 1. All digits -> 1-based position in the full list
// 2. At least store.MinPrefixLength hex digits or dashes -> id prefix
// 3. Otherwise -> error: invalid task reference: <ref>
func ParseTaskRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrTaskRefRequired
	}
	if isAllDigits(ref) {
		return ref, nil
	}
	if len(ref) >= store.MinPrefixLength && isIDPrefix(ref) {
		return strings.ToLower(ref), nil
	}
	return "", fmt.Errorf("invalid task reference: %s", ref)
}

// ParseTaskRefs validates every reference in args.
func ParseTaskRefs(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, ErrTaskRefRequired
	}
	refs := make([]string, 0, len(args))
	for _, arg := range args {
		ref, err := ParseTaskRef(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// resolveRefs maps references to tasks before anything is mutated, so that
// positions refer to the list as it was shown. Duplicates are dropped.
func resolveRefs(sess *session.Session, refs []string) ([]task.Task, error) {
	seen := make(map[string]bool, len(refs))
	var out []task.Task
	for _, ref := range refs {
		t, err := sess.Resolve(ref)
		if err != nil {
			return nil, err
		}
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, nil
}

// isAllDigits checks if a string contains only digits.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isIDPrefix checks if a string can be the start of a UUID.
func isIDPrefix(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F', r == '-':
		default:
			return false
		}
	}
	return true
}
