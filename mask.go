package zedloc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Placeholder masking. Format tokens are replaced by opaque __PHn__ markers
// before the text reaches the translation service and restored afterwards.
// A translation that loses a marker is rejected, never written.

// rePlaceholders matches the placeholder shapes that must survive
// translation verbatim: brace interpolations ("{name}"), printf-style
// specifiers ("%s", "%1$d"), and shell-style expansions ("${HOME}").
// Alternation order matters: "${x}" must match as a whole, not as "$"+"{x}".
var rePlaceholders = regexp.MustCompile(`\$\{[^}]+\}|\{[^}]*\}|%\d*\$?[a-zA-Z]`)

const maskTokenPrefix = "__PH"

func maskToken(i int) string {
	return fmt.Sprintf("%s%d__", maskTokenPrefix, i)
}

// MaskPlaceholders replaces every placeholder in text with an indexed mask
// token and returns the masked text together with the originals in order.
func MaskPlaceholders(text string) (string, []string) {
	var placeholders []string
	masked := rePlaceholders.ReplaceAllStringFunc(text, func(m string) string {
		placeholders = append(placeholders, m)
		return maskToken(len(placeholders) - 1)
	})
	return masked, placeholders
}

// UnmaskPlaceholders restores the original placeholders into the translated
// text. It fails if any mask token vanished in translation or if mask
// residue remains afterwards.
func UnmaskPlaceholders(text string, placeholders []string) (string, error) {
	out := text
	for i, ph := range placeholders {
		token := maskToken(i)
		if !strings.Contains(out, token) {
			return "", &MaskError{Message: "token missing from translation", Token: token}
		}
		out = strings.ReplaceAll(out, token, ph)
	}
	if strings.Contains(out, maskTokenPrefix) {
		return "", &MaskError{Message: "mask residue left in translation"}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Markup-aware segmentation
// ---------------------------------------------------------------------------

// reMarkupTag is a cheap pre-check for inline HTML in a string value.
var reMarkupTag = regexp.MustCompile(`</?[a-zA-Z][^<>]*>`)

// HasMarkup reports whether the string carries inline HTML tags.
func HasMarkup(s string) bool {
	return strings.ContainsRune(s, '<') && reMarkupTag.MatchString(s)
}

// MarkupSegments holds a parsed markup-bearing string. Only its text nodes
// are translated; tags and attributes are reassembled verbatim.
type MarkupSegments struct {
	src   string
	doc   *goquery.Document
	texts []string
}

// SegmentMarkup parses a string containing inline HTML and collects its
// translatable text segments in document order.
func SegmentMarkup(s string) (*MarkupSegments, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return nil, &TranslationError{Message: "parsing inline markup", Cause: err}
	}

	ms := &MarkupSegments{src: s, doc: doc}
	seen := make(map[string]bool)

	body := doc.Find("body")
	for _, n := range body.Nodes {
		walkTextNodes(n, func(tn *html.Node) {
			text := strings.TrimSpace(tn.Data)
			if text == "" || seen[text] {
				return
			}
			seen[text] = true
			ms.texts = append(ms.texts, text)
		})
	}

	return ms, nil
}

// Texts returns the translatable text segments in document order.
func (m *MarkupSegments) Texts() []string {
	return m.texts
}

// Apply substitutes translated segments back into the markup and renders
// the result. Whitespace around each segment is preserved.
func (m *MarkupSegments) Apply(translations map[string]string) (string, error) {
	body := m.doc.Find("body")
	for _, n := range body.Nodes {
		walkTextNodes(n, func(tn *html.Node) {
			text := strings.TrimSpace(tn.Data)
			if translated, ok := translations[text]; ok && text != "" {
				tn.Data = strings.Replace(tn.Data, text, translated, 1)
			}
		})
	}

	out, err := body.Html()
	if err != nil {
		return "", &TranslationError{Message: "rendering inline markup", Cause: err}
	}
	if err := verifyTags(m.src, out); err != nil {
		return "", err
	}
	return out, nil
}

// verifyTags rejects a reassembled string whose tags differ from the
// source. The HTML5 parser normalizes tokens it does not recognize, so a
// string like "Press <Enter> to confirm" would come back lowercased with a
// phantom closing tag. Tags must survive byte for byte or the entry is
// skipped, same as a lost placeholder.
func verifyTags(src, out string) error {
	srcTags := reMarkupTag.FindAllString(src, -1)
	outTags := reMarkupTag.FindAllString(out, -1)

	if len(outTags) != len(srcTags) {
		return &MaskError{Message: "markup changed during reassembly"}
	}

	counts := make(map[string]int, len(outTags))
	for _, tag := range outTags {
		counts[tag]++
	}
	for _, tag := range srcTags {
		counts[tag]--
		if counts[tag] < 0 {
			return &MaskError{Message: "tag altered during reassembly", Token: tag}
		}
	}
	return nil
}

// walkTextNodes visits every text node under n in document order.
func walkTextNodes(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.TextNode {
		visit(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkTextNodes(c, visit)
	}
}
