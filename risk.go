package zedloc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Risk classification. A string that trips any of these heuristics is very
// likely an identifier, path, URL or debug artifact rather than UI text, and
// mistranslating it would break the build-time string replacement. The
// filters err on the side of skipping.

// maxTranslatableLen caps the length of a single entry; longer strings are
// usually embedded documentation or templates, not labels.
const maxTranslatableLen = 180

var (
	// Lowercase identifiers, dotted paths, module specs: "editor.toggle_focus".
	reIdentifier = regexp.MustCompile(`^[a-z0-9_.:/\\-]+$`)

	// Path separator followed by a short extension at the end: "src/main.rs".
	reFileLike = regexp.MustCompile(`[\\/].+\.[A-Za-z0-9]{1,6}$`)

	// Rust-style debug/format specs inside braces: "{:?}", "{name:>8}".
	reDebugFmt = regexp.MustCompile(`\{[^}]*[:?!][^}]*\}`)

	// Single token of word characters, checked further for CamelCase.
	reBareWord = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

	reNumberOnly = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

	reASCIILetter = regexp.MustCompile(`[A-Za-z]`)
	reLowercase   = regexp.MustCompile(`[a-z]`)
	reUppercase   = regexp.MustCompile(`[A-Z]`)
)

// IsHighRisk reports whether translating text is more likely to break
// something than to help a user.
func IsHighRisk(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return true
	}
	if utf8.RuneCountInString(t) > maxTranslatableLen {
		return true
	}
	if strings.Contains(t, "://") || strings.HasPrefix(t, "mailto:") {
		return true
	}
	if reFileLike.MatchString(t) {
		return true
	}
	if reIdentifier.MatchString(t) {
		return true
	}
	if strings.Contains(t, "::") || strings.Contains(t, "->") || strings.Contains(t, "=>") {
		return true
	}
	if reDebugFmt.MatchString(t) {
		return true
	}
	if isPunctOnly(t) || reNumberOnly.MatchString(t) {
		return true
	}
	// CamelCase / PascalCase single token is often an identifier.
	if !strings.Contains(t, " ") && reBareWord.MatchString(t) &&
		reLowercase.MatchString(t) && reUppercase.MatchString(t) {
		return true
	}
	return false
}

// ContainsLetters reports whether s contains at least one ASCII letter.
// Strings without any are never worth sending to the translator.
func ContainsLetters(s string) bool {
	return reASCIILetter.MatchString(s)
}

// UppercaseStart reports whether the string, ignoring leading whitespace,
// starts with an ASCII capital. UI sentences and labels almost always do.
func UppercaseStart(s string) bool {
	t := strings.TrimLeftFunc(s, unicode.IsSpace)
	if t == "" {
		return false
	}
	return t[0] >= 'A' && t[0] <= 'Z'
}

// isPunctOnly reports whether every rune is neither a letter nor a digit.
func isPunctOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
