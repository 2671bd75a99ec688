// Package config — .zedloc.yaml configuration file support.
//
// When a .zedloc.yaml file exists in the working directory, it supplies
// defaults for the fill run. Command-line flags always win over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = ".zedloc.yaml"

// File is the top-level .zedloc.yaml structure.
type File struct {
	// Input is the localization map to read.
	Input string `yaml:"input,omitempty"`
	// Output is the path the filled map is written to.
	Output string `yaml:"output,omitempty"`
	// SourceLang is the source language code (default "en").
	SourceLang string `yaml:"source_lang,omitempty"`
	// TargetLang is the target language code (default "zh-CN").
	TargetLang string `yaml:"target_lang,omitempty"`
	// Max caps the number of entries filled per run.
	Max int `yaml:"max,omitempty"`
	// RequireUppercaseStart gates translation on UI-looking strings.
	RequireUppercaseStart bool `yaml:"require_uppercase_start,omitempty"`
	// Prefixes replaces the built-in file-path whitelist.
	Prefixes []string `yaml:"prefixes,omitempty"`

	// Provider selects the translation backend: "googletrans", "openai"
	// or "mock".
	Provider string `yaml:"provider,omitempty"`
	// OpenAI configures the OpenAI backend.
	OpenAI OpenAI `yaml:"openai,omitempty"`
	// RequestsPerMinute throttles provider calls.
	RequestsPerMinute int `yaml:"requests_per_minute,omitempty"`

	// CacheFile is a JSON snapshot loaded before and saved after a run.
	CacheFile string `yaml:"cache_file,omitempty"`
	// RedisURL enables a shared Redis cache instead of the file snapshot.
	RedisURL string `yaml:"redis_url,omitempty"`
	// CacheTTL is the cache entry lifetime in seconds (0 = no expiration).
	CacheTTL int `yaml:"cache_ttl,omitempty"`
}

// OpenAI holds OpenAI backend settings. The API key is taken from the
// OPENAI_API_KEY environment variable when empty.
type OpenAI struct {
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// Load reads .zedloc.yaml from the given directory.
// Returns nil if no config file exists.
func Load(rootDir string) (*File, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if f.Provider != "" {
		switch f.Provider {
		case "googletrans", "google", "openai", "mock":
		default:
			return nil, fmt.Errorf("%s: unknown provider %q (valid: googletrans, openai, mock)", path, f.Provider)
		}
	}

	return &f, nil
}
