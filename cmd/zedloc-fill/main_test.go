package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestQuietSuppressesProgress(t *testing.T) {
	var buf bytes.Buffer
	origOut, origQuiet := logOut, quiet
	logOut, quiet = &buf, true
	defer func() { logOut, quiet = origOut, origQuiet }()

	logInfo("filled %d/%d", 1, 250)
	logSuccess("wrote: %s", "out.json")

	if buf.Len() != 0 {
		t.Errorf("Expected no progress output when quiet, got %q", buf.String())
	}

	// Warnings and errors must still get through.
	logWarning("translate failed")
	logError("boom")

	out := buf.String()
	if !strings.Contains(out, "translate failed") {
		t.Error("Expected warning despite quiet")
	}
	if !strings.Contains(out, "boom") {
		t.Error("Expected error despite quiet")
	}
}

func TestRunScan_ListsSkippedEntries(t *testing.T) {
	input := filepath.Join(t.TempDir(), "zh.json")
	doc := `{
  "zed/crates/search/src/search.rs": {
    "Search everywhere": "",
    "editor.toggle_focus": ""
  },
  "zed/crates/vim/src/vim.rs": {
    "Normal mode": ""
  }
}
`
	if err := os.WriteFile(input, []byte(doc), 0o644); err != nil {
		t.Fatalf("Writing input: %v", err)
	}

	var buf bytes.Buffer
	flags := &fillFlags{input: input, targetLang: "zh-CN"}
	if err := runScan(flags, &buf); err != nil {
		t.Fatalf("runScan failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "eligible") || !strings.Contains(out, "Search everywhere") {
		t.Errorf("Missing eligible entry in scan output:\n%s", out)
	}
	if !strings.Contains(out, "high_risk") || !strings.Contains(out, "editor.toggle_focus") {
		t.Errorf("Missing risky entry in scan output:\n%s", out)
	}
	if !strings.Contains(out, "not_whitelisted") || !strings.Contains(out, "Normal mode") {
		t.Errorf("Missing non-whitelisted entry in scan output:\n%s", out)
	}
	if !strings.Contains(out, `"scanned_empty": 3`) {
		t.Errorf("Missing stats in scan output:\n%s", out)
	}
}

func TestBuildProvider_UnknownName(t *testing.T) {
	_, err := buildProvider(&fillFlags{providerName: "bing"}, nil)
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestBuildProvider_Googletrans(t *testing.T) {
	p, err := buildProvider(&fillFlags{providerName: "googletrans"}, nil)
	if err != nil {
		t.Fatalf("buildProvider failed: %v", err)
	}
	if p == nil {
		t.Fatal("Expected provider")
	}
}
