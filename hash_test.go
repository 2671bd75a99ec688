package zedloc

import "testing"

func TestHashText(t *testing.T) {
	h := HashText("Open File")
	if len(h) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(h))
	}

	if HashText("Open File") != h {
		t.Error("Expected stable hashes for identical input")
	}

	if HashText("  Open File  ") != h {
		t.Error("Expected surrounding whitespace to be ignored")
	}

	if HashText("Open file") == h {
		t.Error("Expected different hashes for different input")
	}
}

func TestCacheKey(t *testing.T) {
	key := CacheKey("abc123", "zh-CN")
	if key != "abc123:zh-CN" {
		t.Errorf("CacheKey = %q, want abc123:zh-CN", key)
	}

	if CacheKey("abc123", "zh-CN") == CacheKey("abc123", "ja") {
		t.Error("Expected different keys per target language")
	}
}
