// Package render projects an OCR result into view models for the
// terminal and web renderers. Projections never mutate the source result.
package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ocrdesk/ocrdesk/internal/ocr"
)

// Badge labels for the document-type indicator. Shown only when the
// backend reports is_scanned as an explicit boolean.
const (
	BadgeScanned = "Scanned document — OCR applied"
	BadgeDigital = "Text-based PDF — extracted directly"
)

// Summary holds the aggregate stats panel.
type Summary struct {
	Confidence      float64
	ConfidenceLabel string
	Tier            ocr.Tier
	PageCount       int
	Words           string
	Characters      string
	Badge           string
	HasBadge        bool
}

// PageView holds one entry of the per-page breakdown.
type PageView struct {
	Number          int
	Confidence      float64
	ConfidenceLabel string
	Tier            ocr.Tier
	WordCount       int
	Text            string
	EscapedText     string
}

// ViewModel is the full projection of a result: summary stats, full
// text, and the per-page breakdown.
type ViewModel struct {
	Summary   Summary
	Text      string
	ShowPages bool
	Pages     []PageView
}

var printer = message.NewPrinter(language.English)

// Build projects a result into a ViewModel.
func Build(res *ocr.Result) ViewModel {
	conf := res.Confidence()

	vm := ViewModel{
		Summary: Summary{
			Confidence:      conf,
			ConfidenceLabel: confidenceLabel(conf),
			Tier:            ocr.TierFor(conf),
			PageCount:       res.EffectivePageCount(),
			Words:           printer.Sprintf("%d", res.TotalWords),
			Characters:      printer.Sprintf("%d", res.TotalCharacters),
		},
		Text: res.Text,
		// The breakdown section is shown only for multi-page documents,
		// regardless of its content.
		ShowPages: len(res.Pages) > 1,
	}

	if res.IsScanned != nil {
		vm.Summary.HasBadge = true
		if *res.IsScanned {
			vm.Summary.Badge = BadgeScanned
		} else {
			vm.Summary.Badge = BadgeDigital
		}
	}

	for _, p := range res.Pages {
		vm.Pages = append(vm.Pages, PageView{
			Number:          p.PageNumber,
			Confidence:      p.Confidence,
			ConfidenceLabel: confidenceLabel(p.Confidence),
			Tier:            ocr.TierFor(p.Confidence),
			WordCount:       p.WordCount,
			Text:            p.Text,
			EscapedText:     EscapeText(p.Text),
		})
	}

	return vm
}

// EscapeText escapes &, < and > before OCR-derived text is inserted into
// markup. The ampersand is replaced first so the entities produced for
// < and > are not escaped a second time.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func confidenceLabel(conf float64) string {
	return fmt.Sprintf("%.1f%%", conf)
}
