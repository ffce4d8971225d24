package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	defaultMaxCommandSize = 4096
	envMaxCommandSize     = "RIBS_MAX_INPUT_SIZE"
)

var (
	ErrCommandTooLarge = errors.New("command exceeds maximum allowed size")
	ErrInvalidUTF8     = errors.New("command contains invalid UTF-8 sequences")
)

// sanitizeCommand rejects oversized or malformed session input and drops control
// characters so terminal escapes never reach configuration params or logs.
func sanitizeCommand(line string) (string, error) {
	if limit := maxCommandSize(); len(line) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrCommandTooLarge, len(line), limit)
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(line, unsafeControl) < 0 {
		return line, nil
	}
	return strings.Map(func(r rune) rune {
		if unsafeControl(r) {
			return -1
		}
		return r
	}, line), nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\t'
}

func maxCommandSize() int {
	if v := os.Getenv(envMaxCommandSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultMaxCommandSize
}
