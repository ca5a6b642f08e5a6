package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"todocli/internal/api"
	"todocli/internal/tasks"
)

// ErrRefRequired indicates no task reference was provided.
var ErrRefRequired = errors.New("task reference required")

// ParseRef parses a 1-based task number from args. References are the
// position of the task in list output, not the server-assigned ID.
func ParseRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrRefRequired
	}
	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil || num < 1 {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	return num, nil
}

// resolveRef loads the task collection and returns the task at the given
// 1-based position, matching the numbering of list output.
func resolveRef(ctx context.Context, store *tasks.Store, num int) (api.Task, error) {
	if err := store.Load(ctx); err != nil {
		return api.Task{}, err
	}
	all := store.Tasks()
	if num > len(all) {
		return api.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return all[num-1], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
