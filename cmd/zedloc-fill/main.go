// zedloc-fill — conservative machine-translation filler for editor
// localization maps.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Whomi996/zed-loc"
	"github.com/Whomi996/zed-loc/cache"
	"github.com/Whomi996/zed-loc/config"
	"github.com/Whomi996/zed-loc/l10nmap"
	"github.com/Whomi996/zed-loc/provider"
	"github.com/spf13/cobra"
)

// Version information (set via -ldflags during build)
var (
	commit = "none"
	date   = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

var logOut io.Writer = os.Stderr

// quiet suppresses INFO/OK chatter; warnings and errors always print.
var quiet bool

func logInfo(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(logOut, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(logOut, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(logOut, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(logOut, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Flags
// ---------------------------------------------------------------------------

var rootDir string

type fillFlags struct {
	input                 string
	output                string
	max                   int
	requireUppercaseStart bool
	prefixes              []string
	targetLang            string
	sourceLang            string
	providerName          string
	rpm                   int
	cacheFile             string
	redisURL              string
	cacheTTL              int
	dryRun                bool
	jsonOut               bool
}

func (f *fillFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.input, "input", "", "Input localization map (JSON)")
	cmd.Flags().StringVar(&f.output, "output", "", "Output path for the filled map")
	cmd.Flags().IntVar(&f.max, "max", 250, "Max entries to fill (0 = no cap)")
	cmd.Flags().BoolVar(&f.requireUppercaseStart, "require-uppercase-start", false,
		"Only translate strings starting with [A-Z] (more conservative)")
	cmd.Flags().StringArrayVar(&f.prefixes, "prefix", nil,
		"Whitelisted file path prefix (repeatable, replaces defaults)")
	cmd.Flags().StringVar(&f.targetLang, "lang", "zh-CN", "Target language code")
	cmd.Flags().StringVar(&f.sourceLang, "source", "en", "Source language code")
	cmd.Flags().StringVar(&f.providerName, "provider", "googletrans", "Translation backend: googletrans, openai, mock")
	cmd.Flags().IntVar(&f.rpm, "rpm", 0, "Provider requests per minute (0 = default)")
	cmd.Flags().StringVar(&f.cacheFile, "cache-file", "", "Cache snapshot loaded before and saved after the run")
	cmd.Flags().StringVar(&f.redisURL, "redis-url", "", "Redis URL for a shared translation cache")
	cmd.Flags().IntVar(&f.cacheTTL, "cache-ttl", 0, "Cache entry lifetime in seconds (0 = no expiration)")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "Print machine-readable JSON to stdout")
}

// merge applies config file values for flags the user did not set.
func (f *fillFlags) merge(cmd *cobra.Command, cf *config.File) {
	if cf == nil {
		return
	}
	set := cmd.Flags().Changed

	if !set("input") && cf.Input != "" {
		f.input = cf.Input
	}
	if !set("output") && cf.Output != "" {
		f.output = cf.Output
	}
	if !set("max") && cf.Max != 0 {
		f.max = cf.Max
	}
	if !set("require-uppercase-start") && cf.RequireUppercaseStart {
		f.requireUppercaseStart = true
	}
	if !set("prefix") && len(cf.Prefixes) > 0 {
		f.prefixes = cf.Prefixes
	}
	if !set("lang") && cf.TargetLang != "" {
		f.targetLang = cf.TargetLang
	}
	if !set("source") && cf.SourceLang != "" {
		f.sourceLang = cf.SourceLang
	}
	if !set("provider") && cf.Provider != "" {
		f.providerName = cf.Provider
	}
	if !set("rpm") && cf.RequestsPerMinute != 0 {
		f.rpm = cf.RequestsPerMinute
	}
	if !set("cache-file") && cf.CacheFile != "" {
		f.cacheFile = cf.CacheFile
	}
	if !set("redis-url") && cf.RedisURL != "" {
		f.redisURL = cf.RedisURL
	}
	if !set("cache-ttl") && cf.CacheTTL != 0 {
		f.cacheTTL = cf.CacheTTL
	}
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zedloc-fill",
		Short: "Fill empty localization entries with machine translation",
		Long: `zedloc-fill — conservative machine-translation filler for editor
localization maps.

Only EMPTY translations are filled, only for a whitelist of UI-ish source
paths, and only when the string passes risk filters that weed out
identifiers, file paths, URLs and debug format strings. Placeholders such
as {name}, %s and ${VAR} are masked before translation and must survive it
verbatim, or the entry is skipped. The input file is never mutated.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Directory containing .zedloc.yaml")
	root.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress progress output on stderr")

	root.AddCommand(
		newFillCmd(),
		newScanCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// fill
// ---------------------------------------------------------------------------

func newFillCmd() *cobra.Command {
	flags := &fillFlags{}

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill empty entries and write a new map",
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := config.Load(rootDir)
			if err != nil {
				return err
			}
			flags.merge(cmd, cf)

			if flags.input == "" {
				return errors.New("--input is required (or set input in .zedloc.yaml)")
			}
			if flags.dryRun {
				return runScan(flags, os.Stdout)
			}
			if flags.output == "" {
				return errors.New("--output is required (or set output in .zedloc.yaml)")
			}

			return runFill(flags, cf)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Classify entries without translating or writing")

	return cmd
}

func runFill(flags *fillFlags, cf *config.File) error {
	doc, err := l10nmap.ParseFile(flags.input)
	if err != nil {
		return err
	}

	prov, err := buildProvider(flags, cf)
	if err != nil {
		return err
	}

	tcache, memCache, closeCache, err := buildCache(flags)
	if err != nil {
		return err
	}
	defer closeCache()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []zedloc.FillerOption{
		zedloc.WithSourceLang(flags.sourceLang),
		zedloc.WithMaxFill(flags.max),
		zedloc.WithRequireUppercaseStart(flags.requireUppercaseStart),
		zedloc.WithPrefixes(flags.prefixes),
		zedloc.WithCache(tcache),
		zedloc.WithLog(logWarning),
	}
	if !flags.jsonOut {
		opts = append(opts, zedloc.WithProgress(func(filled, max int) {
			if max > 0 {
				logInfo("filled %d/%d", filled, max)
			} else {
				logInfo("filled %d", filled)
			}
		}))
	}

	filler := zedloc.NewFiller(flags.targetLang, prov, opts...)

	stats, err := filler.Fill(ctx, doc)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		logWarning("interrupted, writing partial result")
	}

	if err := doc.WriteFile(flags.output); err != nil {
		return err
	}

	if flags.cacheFile != "" && memCache != nil {
		if err := cache.NewExporter(memCache).ExportToFile(flags.cacheFile, map[string]string{
			"target_lang": flags.targetLang,
		}); err != nil {
			logWarning("saving cache snapshot: %v", err)
		}
	}

	printStats(os.Stdout, flags.jsonOut, stats)
	logSuccess("wrote: %s", flags.output)
	return nil
}

// ---------------------------------------------------------------------------
// scan
// ---------------------------------------------------------------------------

func newScanCmd() *cobra.Command {
	flags := &fillFlags{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Classify empty entries without translating",
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := config.Load(rootDir)
			if err != nil {
				return err
			}
			flags.merge(cmd, cf)

			if flags.input == "" {
				return errors.New("--input is required (or set input in .zedloc.yaml)")
			}
			return runScan(flags, os.Stdout)
		},
	}

	flags.register(cmd)

	return cmd
}

func runScan(flags *fillFlags, out io.Writer) error {
	doc, err := l10nmap.ParseFile(flags.input)
	if err != nil {
		return err
	}

	filler := zedloc.NewFiller(flags.targetLang, provider.NewMockProvider(),
		zedloc.WithRequireUppercaseStart(flags.requireUppercaseStart),
		zedloc.WithPrefixes(flags.prefixes),
	)

	stats, entries := filler.Scan(doc)

	if flags.jsonOut {
		report := struct {
			Stats   *zedloc.Stats      `json:"stats"`
			Entries []zedloc.ScanEntry `json:"entries"`
		}{stats, entries}
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	// Skipped entries are the interesting ones; list everything.
	for _, e := range entries {
		fmt.Fprintf(out, "%-16s %s | %q\n", e.Disposition, e.File, e.Text)
	}
	printStats(out, false, stats)
	return nil
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s (commit %s, built %s)\n", zedloc.Name, zedloc.FullVersion(), commit, date)
		},
	}
}

// ---------------------------------------------------------------------------
// Wiring
// ---------------------------------------------------------------------------

func buildProvider(flags *fillFlags, cf *config.File) (zedloc.MTProvider, error) {
	var base zedloc.MTProvider

	switch flags.providerName {
	case "googletrans", "google":
		// The default browser-like User-Agent must stay; the anonymous
		// endpoint rejects tool agents.
		base = provider.NewGoogleProvider(provider.GoogleConfig{})
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		oaCfg := provider.OpenAIConfig{APIKey: apiKey}
		if cf != nil {
			if cf.OpenAI.APIKey != "" {
				oaCfg.APIKey = cf.OpenAI.APIKey
			}
			oaCfg.Model = cf.OpenAI.Model
			oaCfg.BaseURL = cf.OpenAI.BaseURL
		}
		if oaCfg.APIKey == "" {
			return nil, errors.New("openai provider needs OPENAI_API_KEY or openai.api_key in .zedloc.yaml")
		}
		base = provider.NewOpenAIProvider(oaCfg)
	case "mock":
		base = provider.NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown provider %q (valid: googletrans, openai, mock)", flags.providerName)
	}

	rl := zedloc.DefaultRateLimitConfig()
	if flags.rpm > 0 {
		rl.RequestsPerMinute = flags.rpm
	}

	// Retry wraps rate limiting so retried attempts are throttled too.
	limited := zedloc.NewRateLimitedProvider(base, rl)
	return zedloc.NewRetryableProvider(limited, zedloc.DefaultRetryConfig()), nil
}

// buildCache returns the cache to use, the in-memory cache when one backs
// it (for snapshot export), and a close function.
func buildCache(flags *fillFlags) (zedloc.TranslationCache, *cache.InMemoryCache, func(), error) {
	if flags.redisURL != "" {
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			URL: flags.redisURL,
			TTL: flags.cacheTTL,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return rc, nil, func() { rc.Close() }, nil
	}

	mem := cache.NewInMemoryCache(flags.cacheTTL)
	if flags.cacheFile != "" {
		result, err := cache.NewImporter(mem).ImportFromFile(flags.cacheFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading cache snapshot: %w", err)
		}
		if result.Imported > 0 {
			logInfo("loaded %d cached translations from %s", result.Imported, flags.cacheFile)
		}
	}
	return mem, mem, func() {}, nil
}

func printStats(w io.Writer, jsonOut bool, stats *zedloc.Stats) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if !jsonOut {
		fmt.Fprintln(w, "fill stats:")
	}
	if err := enc.Encode(stats); err != nil {
		logError("encoding stats: %v", err)
	}
}
