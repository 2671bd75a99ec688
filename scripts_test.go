package zedloc

import "testing"

func TestBaseLang(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"zh-CN", "zh"},
		{"zh_TW", "zh"},
		{"pt-BR", "pt"},
		{"en", "en"},
		{"JA", "ja"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := BaseLang(tt.lang); got != tt.want {
			t.Errorf("BaseLang(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestContainsScript(t *testing.T) {
	tests := []struct {
		name string
		text string
		lang string
		want bool
	}{
		{"han for zh", "搜索", "zh-CN", true},
		{"latin echo for zh", "Search", "zh-CN", false},
		{"mixed for zh", "打开 {file}", "zh-CN", true},
		{"kana for ja", "ひらく", "ja", true},
		{"han for ja", "検索", "ja", true},
		{"latin echo for ja", "Open", "ja", false},
		{"hangul for ko", "검색", "ko", true},
		{"cyrillic for ru", "Поиск", "ru", true},
		{"latin echo for ru", "Search", "ru", false},
		{"latin target passes", "Suchen", "de", true},
		{"unknown lang passes", "anything", "eo", true},
		{"empty fails for latin", "  ", "de", false},
		{"arabic", "بحث", "ar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsScript(tt.text, tt.lang); got != tt.want {
				t.Errorf("ContainsScript(%q, %q) = %v, want %v", tt.text, tt.lang, got, tt.want)
			}
		})
	}
}

func TestLanguageName(t *testing.T) {
	if got := LanguageName("zh-CN"); got != "Chinese" {
		t.Errorf("LanguageName(zh-CN) = %q, want Chinese", got)
	}
	if got := LanguageName("xx"); got != "xx" {
		t.Errorf("LanguageName(xx) = %q, want xx", got)
	}
}
