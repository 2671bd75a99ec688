package zedloc

import "context"

// MTProvider is the interface for machine-translation backends.
type MTProvider interface {
	Translate(ctx context.Context, req TranslateRequest) ([]string, error)
}

// TranslateRequest contains the parameters for a translation request.
// Texts are already masked; placeholders appear as __PHn__ tokens.
type TranslateRequest struct {
	Texts      []string
	SourceLang string
	TargetLang string
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Stats counts the outcome of every empty entry seen during a pass.
// The JSON field names match the report printed at the end of a run.
type Stats struct {
	ScannedEmpty             int `json:"scanned_empty"`
	Eligible                 int `json:"eligible"`
	Filled                   int `json:"filled"`
	SkippedHighRisk          int `json:"skipped_high_risk"`
	SkippedNotWhitelisted    int `json:"skipped_not_whitelisted"`
	SkippedNotUIish          int `json:"skipped_not_uiish"`
	SkippedTranslationFailed int `json:"skipped_translation_failed"`
	SkippedNoScript          int `json:"skipped_no_script"`
	CacheHits                int `json:"cache_hits"`
}

// Disposition classifies what a pass would do with an empty entry.
type Disposition string

const (
	// DispositionEligible means the entry would be sent for translation.
	DispositionEligible Disposition = "eligible"
	// DispositionHighRisk means the risk heuristics rejected the string.
	DispositionHighRisk Disposition = "high_risk"
	// DispositionNotWhitelisted means the file path is outside the prefix whitelist.
	DispositionNotWhitelisted Disposition = "not_whitelisted"
	// DispositionNotUIish means the uppercase-start gate rejected the string.
	DispositionNotUIish Disposition = "not_uiish"
)

// ScanEntry is one empty entry's classification, as reported by Filler.Scan.
type ScanEntry struct {
	File        string      `json:"file"`
	Text        string      `json:"text"`
	Disposition Disposition `json:"disposition"`
}

// DefaultPrefixWhitelist lists the source paths whose strings are UI-facing
// enough to translate by default. Everything else is skipped untouched.
var DefaultPrefixWhitelist = []string{
	"zed/crates/assistant/src/",
	"zed/crates/assistant2/src/",
	"zed/crates/collab_ui/src/",
	"zed/crates/workspace/src/",
	"zed/crates/project_panel/src/",
	"zed/crates/search/src/",
	"zed/crates/file_finder/src/",
	"zed/crates/diagnostics/src/",
	"zed/crates/tasks_ui/src/",
	"zed/crates/zed/src/",
}

// SafeSingleWords are UI labels worth translating even when the
// uppercase-start gate is on.
var SafeSingleWords = map[string]bool{
	"OK":          true,
	"Ok":          true,
	"Cancel":      true,
	"Search":      true,
	"Find":        true,
	"Replace":     true,
	"Preferences": true,
	"Help":        true,
	"About":       true,
	"Yes":         true,
	"No":          true,
}
