package provider

import (
	"context"
	"fmt"
)

// MockProvider is a mock translation provider for testing.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	Err          error             // Error to return, if set
	CallCount    int               // Number of times Translate was called
	LastRequest  *TranslateRequest // Last request received
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Cancel":           "取消",
			"Search":           "搜索",
			"OK":               "确定",
			"Open File":        "打开文件",
			"Save All":         "全部保存",
			"Go to Line":       "转到行",
			"Close __PH0__":    "关闭 __PH0__",
			"Found __PH0__":    "找到 __PH0__",
			"Replace in Files": "在文件中替换",
		},
	}
}

// Translate returns mock translations.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return nil, m.Err
	}

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if translation, ok := m.Translations[text]; ok {
			results[i] = translation
		} else {
			// Return bracketed text for unknown translations
			results[i] = fmt.Sprintf("[%s]", text)
		}
	}

	return results, nil
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockProvider implements MTProvider
var _ MTProvider = (*MockProvider)(nil)
