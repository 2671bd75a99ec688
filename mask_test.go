package zedloc

import (
	"errors"
	"testing"
)

func TestMaskPlaceholders(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantMasked string
		wantCount  int
	}{
		{"no placeholders", "Open File", "Open File", 0},
		{"brace", "Open {file}", "Open __PH0__", 1},
		{"percent", "Deleted %s files", "Deleted __PH0__ files", 1},
		{"indexed percent", "Moved %1$s to %2$s", "Moved __PH0__ to __PH1__", 2},
		{"shell var", "Set ${HOME} first", "Set __PH0__ first", 1},
		{"mixed", "Copy {src} to %s in ${DIR}", "Copy __PH0__ to __PH1__ in __PH2__", 3},
		{"empty braces", "Progress: {}", "Progress: __PH0__", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masked, placeholders := MaskPlaceholders(tt.text)
			if masked != tt.wantMasked {
				t.Errorf("Masked = %q, want %q", masked, tt.wantMasked)
			}
			if len(placeholders) != tt.wantCount {
				t.Errorf("Placeholder count = %d, want %d", len(placeholders), tt.wantCount)
			}
		})
	}
}

func TestMaskUnmask_RoundTrip(t *testing.T) {
	original := "Copy {src} to %s in ${DIR}"
	masked, placeholders := MaskPlaceholders(original)

	// A translation that keeps the tokens intact.
	translated := "将 __PH0__ 复制到 __PH2__ 中的 __PH1__"

	out, err := UnmaskPlaceholders(translated, placeholders)
	if err != nil {
		t.Fatalf("UnmaskPlaceholders failed: %v", err)
	}

	want := "将 {src} 复制到 ${DIR} 中的 %s"
	if out != want {
		t.Errorf("Unmasked = %q, want %q", out, want)
	}

	if masked == original {
		t.Error("Expected masking to change the text")
	}
}

func TestUnmaskPlaceholders_TokenLost(t *testing.T) {
	_, placeholders := MaskPlaceholders("Open {file}")

	_, err := UnmaskPlaceholders("打开文件", placeholders)
	if err == nil {
		t.Fatal("Expected error when a token is lost in translation")
	}

	var maskErr *MaskError
	if !errors.As(err, &maskErr) {
		t.Fatalf("Expected *MaskError, got %T", err)
	}
	if maskErr.Token != "__PH0__" {
		t.Errorf("Expected token __PH0__, got %q", maskErr.Token)
	}
}

func TestUnmaskPlaceholders_Residue(t *testing.T) {
	_, placeholders := MaskPlaceholders("Open {file}")

	// Token present, but the translator invented extra mask-looking text.
	_, err := UnmaskPlaceholders("打开 __PH0__ 和 __PH99__", placeholders)
	if err == nil {
		t.Fatal("Expected error for mask residue")
	}
}

func TestHasMarkup(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Click <b>here</b>", true},
		{"<code>foo</code> is set", true},
		{"a < b", false},
		{"Open File", false},
		{"1 <2> 3", false},
	}

	for _, tt := range tests {
		if got := HasMarkup(tt.text); got != tt.want {
			t.Errorf("HasMarkup(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestSegmentMarkup(t *testing.T) {
	segs, err := SegmentMarkup("Click <b>here</b> to save")
	if err != nil {
		t.Fatalf("SegmentMarkup failed: %v", err)
	}

	texts := segs.Texts()
	want := []string{"Click", "here", "to save"}
	if len(texts) != len(want) {
		t.Fatalf("Texts = %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("Texts[%d] = %q, want %q", i, texts[i], want[i])
		}
	}

	out, err := segs.Apply(map[string]string{
		"Click":   "点击",
		"here":    "这里",
		"to save": "保存",
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if out != "点击 <b>这里</b> 保存" {
		t.Errorf("Apply = %q", out)
	}
}

func TestSegmentMarkup_TagsPreserved(t *testing.T) {
	segs, err := SegmentMarkup(`Use <code class="kb">Ctrl</code> to jump`)
	if err != nil {
		t.Fatalf("SegmentMarkup failed: %v", err)
	}

	out, err := segs.Apply(map[string]string{
		"Use":     "使用",
		"Ctrl":    "Ctrl",
		"to jump": "跳转",
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if out != `使用 <code class="kb">Ctrl</code> 跳转` {
		t.Errorf("Apply = %q", out)
	}
}

func TestApply_NonHTMLTokenRejected(t *testing.T) {
	// "<Enter>" is a key name, not markup. The parser would lowercase it
	// and invent a closing tag, so reassembly must refuse.
	segs, err := SegmentMarkup("Press <Enter> to confirm")
	if err != nil {
		t.Fatalf("SegmentMarkup failed: %v", err)
	}

	_, err = segs.Apply(map[string]string{
		"Press":      "按",
		"to confirm": "以确认",
	})
	if err == nil {
		t.Fatal("Expected reassembly to reject altered tags")
	}

	var maskErr *MaskError
	if !errors.As(err, &maskErr) {
		t.Fatalf("Expected *MaskError, got %T", err)
	}
}
