package media

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// TextExtractor pulls plain text out of a stored document, reading at most
// maxPages pages. Like thumbnailing, extraction is best effort.
type TextExtractor interface {
	ExtractText(path string, maxPages int) (string, error)
}

type pdfExtractor struct{}

// NewPDFExtractor returns the pdfcpu/ledongthuc-backed TextExtractor.
func NewPDFExtractor() TextExtractor {
	return pdfExtractor{}
}

func (pdfExtractor) ExtractText(path string, maxPages int) (string, error) {
	// PageCountFile also rejects documents pdfcpu cannot validate.
	pages, err := pdfapi.PageCountFile(path)
	if err != nil {
		return "", fmt.Errorf("inspect pdf: %w", err)
	}
	if pages > maxPages {
		pages = maxPages
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	if n := r.NumPage(); n < pages {
		pages = n
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}
