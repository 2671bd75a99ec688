package cache

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportImport_RoundTrip(t *testing.T) {
	src := NewInMemoryCache(0)
	src.Set("hash1:zh-CN", "搜索")
	src.Set("hash2:zh-CN", "取消")

	var buf bytes.Buffer
	if err := NewExporter(src).Export(&buf, map[string]string{"target_lang": "zh-CN"}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	dst := NewInMemoryCache(0)
	result, err := NewImporter(dst).Import(&buf)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}
	if result.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", result.Version)
	}
	if result.Metadata["target_lang"] != "zh-CN" {
		t.Errorf("Metadata = %v", result.Metadata)
	}

	val, ok := dst.Get("hash1:zh-CN")
	if !ok || val != "搜索" {
		t.Errorf("Get = %q (ok=%v), want 搜索", val, ok)
	}
}

func TestExport_SortedEntries(t *testing.T) {
	c := NewInMemoryCache(0)
	c.Set("b", "2")
	c.Set("a", "1")
	c.Set("c", "3")

	var buf bytes.Buffer
	if err := NewExporter(c).Export(&buf, nil); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var export ExportFormat
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("Decoding export: %v", err)
	}

	if len(export.Entries) != 3 {
		t.Fatalf("Entries = %d, want 3", len(export.Entries))
	}
	for i, want := range []string{"a", "b", "c"} {
		if export.Entries[i].Key != want {
			t.Errorf("Entries[%d].Key = %q, want %q", i, export.Entries[i].Key, want)
		}
	}
}

func TestExport_UnsupportedCache(t *testing.T) {
	var buf bytes.Buffer
	err := NewExporter(unsupportedCache{}).Export(&buf, nil)
	if err == nil {
		t.Error("Expected error for cache without export support")
	}
}

type unsupportedCache struct{}

func (unsupportedCache) Get(key string) (string, bool) { return "", false }
func (unsupportedCache) Set(key, value string) error   { return nil }

func TestImportFromFile_Missing(t *testing.T) {
	c := NewInMemoryCache(0)

	result, err := NewImporter(c).ImportFromFile(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Expected missing file to mean a cold cache, got: %v", err)
	}
	if result.Imported != 0 {
		t.Errorf("Imported = %d, want 0", result.Imported)
	}
}

func TestExportToFile_ImportFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	src := NewInMemoryCache(0)
	src.Set("hash:zh-CN", "打开文件")

	if err := NewExporter(src).ExportToFile(path, nil); err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	dst := NewInMemoryCache(0)
	result, err := NewImporter(dst).ImportFromFile(path)
	if err != nil {
		t.Fatalf("ImportFromFile failed: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}
}

func TestImport_BadJSON(t *testing.T) {
	c := NewInMemoryCache(0)
	_, err := NewImporter(c).Import(strings.NewReader("not json"))
	if err == nil {
		t.Error("Expected error for invalid snapshot")
	}
}
