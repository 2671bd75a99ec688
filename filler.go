package zedloc

import (
	"context"
	"strings"

	"github.com/Whomi996/zed-loc/l10nmap"
)

// Filler fills empty translation slots in a localization map. It is
// deliberately conservative: entries outside the path whitelist are never
// touched, high-risk strings are skipped, and a translation is only written
// when its placeholders survived and the target script is present.
type Filler struct {
	targetLang            string
	sourceLang            string
	provider              MTProvider
	cache                 TranslationCache
	maxFill               int
	requireUppercaseStart bool
	prefixes              []string
	safeWords             map[string]bool
	onProgress            func(filled, max int)
	onLog                 func(format string, args ...any)
}

// FillerOption configures a Filler.
type FillerOption func(*Filler)

// WithSourceLang sets the source language (default "en").
func WithSourceLang(lang string) FillerOption {
	return func(f *Filler) { f.sourceLang = lang }
}

// WithCache attaches a translation cache.
func WithCache(cache TranslationCache) FillerOption {
	return func(f *Filler) { f.cache = cache }
}

// WithMaxFill caps the number of entries filled per pass. Zero means no cap.
func WithMaxFill(n int) FillerOption {
	return func(f *Filler) { f.maxFill = n }
}

// WithRequireUppercaseStart gates translation on the string starting with a
// capital letter or being a known safe UI word.
func WithRequireUppercaseStart(on bool) FillerOption {
	return func(f *Filler) { f.requireUppercaseStart = on }
}

// WithPrefixes replaces the default file-path whitelist.
func WithPrefixes(prefixes []string) FillerOption {
	return func(f *Filler) {
		if len(prefixes) > 0 {
			f.prefixes = prefixes
		}
	}
}

// WithSafeWords replaces the default safe single-word set.
func WithSafeWords(words map[string]bool) FillerOption {
	return func(f *Filler) {
		if words != nil {
			f.safeWords = words
		}
	}
}

// WithProgress sets a callback invoked after each filled entry.
func WithProgress(fn func(filled, max int)) FillerOption {
	return func(f *Filler) { f.onProgress = fn }
}

// WithLog sets a callback for diagnostic messages.
func WithLog(fn func(format string, args ...any)) FillerOption {
	return func(f *Filler) { f.onLog = fn }
}

// NewFiller creates a Filler for the given target language and provider.
func NewFiller(targetLang string, provider MTProvider, opts ...FillerOption) *Filler {
	f := &Filler{
		targetLang: targetLang,
		sourceLang: "en",
		provider:   provider,
		maxFill:    250,
		prefixes:   DefaultPrefixWhitelist,
		safeWords:  SafeSingleWords,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fill walks the document and fills eligible empty entries in place. The
// input ordering is preserved; only empty slots are ever written. On context
// cancellation it returns the stats accumulated so far together with the
// context error, so a partial result can still be saved.
func (f *Filler) Fill(ctx context.Context, doc *l10nmap.Document) (*Stats, error) {
	stats := &Stats{}
	filled := 0

	for _, file := range doc.Files() {
		if !file.IsMapping() {
			continue
		}

		if !f.whitelisted(file.Path) {
			// Count empties but never attempt translation.
			for _, e := range file.Entries() {
				if e.IsEmpty() {
					stats.ScannedEmpty++
					stats.SkippedNotWhitelisted++
				}
			}
			continue
		}

		for _, e := range file.Entries() {
			if !e.IsEmpty() {
				continue
			}
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			stats.ScannedEmpty++
			src := e.Original

			if !ContainsLetters(src) || IsHighRisk(src) {
				stats.SkippedHighRisk++
				continue
			}

			if f.requireUppercaseStart && !f.uiish(src) {
				stats.SkippedNotUIish++
				continue
			}

			stats.Eligible++

			out, err := f.translateEntry(ctx, src, stats)
			if err != nil {
				if ctx.Err() != nil {
					return stats, ctx.Err()
				}
				stats.SkippedTranslationFailed++
				f.logf("translate %q: %v", src, err)
				continue
			}

			out = strings.TrimSpace(out)
			if !ContainsScript(out, f.targetLang) {
				stats.SkippedNoScript++
				continue
			}

			e.SetTranslation(out)
			filled++
			stats.Filled++
			if f.onProgress != nil {
				f.onProgress(filled, f.maxFill)
			}

			if f.maxFill > 0 && filled >= f.maxFill {
				return stats, nil
			}
		}
	}

	return stats, nil
}

// Scan classifies every empty entry without translating anything. It is the
// dry-run companion to Fill.
func (f *Filler) Scan(doc *l10nmap.Document) (*Stats, []ScanEntry) {
	stats := &Stats{}
	var entries []ScanEntry

	for _, file := range doc.Files() {
		if !file.IsMapping() {
			continue
		}

		whitelisted := f.whitelisted(file.Path)

		for _, e := range file.Entries() {
			if !e.IsEmpty() {
				continue
			}
			stats.ScannedEmpty++
			src := e.Original

			var disp Disposition
			switch {
			case !whitelisted:
				stats.SkippedNotWhitelisted++
				disp = DispositionNotWhitelisted
			case !ContainsLetters(src) || IsHighRisk(src):
				stats.SkippedHighRisk++
				disp = DispositionHighRisk
			case f.requireUppercaseStart && !f.uiish(src):
				stats.SkippedNotUIish++
				disp = DispositionNotUIish
			default:
				stats.Eligible++
				disp = DispositionEligible
			}

			entries = append(entries, ScanEntry{
				File:        file.Path,
				Text:        src,
				Disposition: disp,
			})
		}
	}

	return stats, entries
}

func (f *Filler) whitelisted(path string) bool {
	for _, p := range f.prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (f *Filler) uiish(src string) bool {
	return UppercaseStart(src) || f.safeWords[strings.TrimSpace(src)]
}

func (f *Filler) logf(format string, args ...any) {
	if f.onLog != nil {
		f.onLog(format, args...)
	}
}

// translateEntry translates one original string, routing markup-bearing
// strings through segment translation.
func (f *Filler) translateEntry(ctx context.Context, src string, stats *Stats) (string, error) {
	if HasMarkup(src) {
		return f.translateMarkup(ctx, src, stats)
	}
	return f.translateText(ctx, src, stats)
}

// translateText masks placeholders, consults the cache, calls the provider
// if needed, and unmasks the result. The cache holds masked translations so
// identical strings with different placeholder values share entries.
func (f *Filler) translateText(ctx context.Context, text string, stats *Stats) (string, error) {
	masked, placeholders := MaskPlaceholders(text)
	key := CacheKey(HashText(masked), f.targetLang)

	var out string
	if f.cache != nil {
		if v, ok := f.cache.Get(key); ok {
			stats.CacheHits++
			out = v
		}
	}

	if out == "" {
		results, err := f.provider.Translate(ctx, TranslateRequest{
			Texts:      []string{masked},
			SourceLang: f.sourceLang,
			TargetLang: f.targetLang,
		})
		if err != nil {
			return "", err
		}
		if len(results) != 1 {
			return "", &CountMismatchError{Expected: 1, Got: len(results)}
		}
		out = strings.TrimSpace(results[0])
		if out == "" {
			return "", &TranslationError{Message: "empty translation"}
		}
		if f.cache != nil {
			if err := f.cache.Set(key, out); err != nil {
				f.logf("cache set: %v", err)
			}
		}
	}

	return UnmaskPlaceholders(out, placeholders)
}

// translateMarkup translates the text segments of a markup-bearing string
// and reassembles the tags around them.
func (f *Filler) translateMarkup(ctx context.Context, src string, stats *Stats) (string, error) {
	segs, err := SegmentMarkup(src)
	if err != nil {
		return "", err
	}

	texts := segs.Texts()
	if len(texts) == 0 {
		return f.translateText(ctx, src, stats)
	}

	translations := make(map[string]string, len(texts))
	for _, t := range texts {
		tr, err := f.translateText(ctx, t, stats)
		if err != nil {
			return "", err
		}
		translations[t] = tr
	}

	return segs.Apply(translations)
}
