package organize

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classifying failures. Only ErrStartup aborts a run; read
// and write errors stay scoped to the entry that raised them.
var (
	ErrStartup    = errors.New("startup error")
	ErrEntryRead  = errors.New("entry read error")
	ErrEntryWrite = errors.New("entry write error")
)

// Wrap builds an error message that includes run context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, mode, operation, message string, err error) error {
	detail := buildDetail(mode, operation, message)
	if marker == nil {
		marker = ErrEntryWrite
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(mode, operation, message string) string {
	parts := make([]string, 0, 3)
	if mode = strings.TrimSpace(mode); mode != "" {
		parts = append(parts, mode)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "organize failure"
	}
	return strings.Join(parts, ": ")
}
