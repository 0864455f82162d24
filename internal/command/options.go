// Package command parses key:value option tokens out of free-text chat
// command bodies.
package command

import (
	"regexp"
	"strings"
)

// Options is a parsed option map. Keys are stored lower-cased; the first
// occurrence of a key wins and later duplicates are dropped silently.
type Options map[string]string

var (
	// A token is only recognized at the start of the text or after
	// whitespace, so colons in the middle of a word (URLs, times) never
	// start an option.
	simpleOptRE = regexp.MustCompile(`(?:^|\s)([A-Za-z0-9_]+):([A-Za-z0-9_-]+)`)

	// Quoted alternatives come before the bare form so a leading quote is
	// never consumed as part of a bare value.
	extendedOptRE = regexp.MustCompile(`(?:^|\s)([A-Za-z0-9_]+):("[^"]+"|'[^']+'|[A-Za-z0-9_-]+)`)
)

// ParseOptions scans text for simple key:value tokens. Values cannot contain
// whitespace.
func ParseOptions(text string) Options {
	return scan(simpleOptRE, text)
}

// ParseOptionsExtended scans text for key:value tokens where the value may be
// single- or double-quoted to allow embedded spaces. Quotes are stripped from
// the stored value.
func ParseOptionsExtended(text string) Options {
	return scan(extendedOptRE, text)
}

func scan(re *regexp.Regexp, text string) Options {
	opts := Options{}
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		key := strings.ToLower(m[1])
		if _, seen := opts[key]; seen {
			continue
		}
		opts[key] = unquote(m[2])
	}
	return opts
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// Has reports whether the option key was present in the command.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}
