package model

import (
	"regexp"
	"strings"
)

// CompileUserPattern compiles a user-supplied pattern with its modifier
// flags. Flags default to case-insensitive; modifiers the engine does not
// support are ignored rather than rejected. Malformed patterns return an
// error so callers can skip the rule for the run.
func CompileUserPattern(pattern, flags string) (*regexp.Regexp, error) {
	if flags == "" {
		flags = "i"
	}
	var mode strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(mode.String(), f) {
				mode.WriteRune(f)
			}
		}
	}
	if mode.Len() > 0 {
		pattern = "(?" + mode.String() + ")" + pattern
	}
	return regexp.Compile(pattern)
}
