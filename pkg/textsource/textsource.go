// Package textsource loads the text of a local document for summarizing.
package textsource

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrEmpty is returned when a document yields no text.
var ErrEmpty = errors.New("textsource: no text found")

// Load returns the text of the file at path. PDFs are reduced to the plain
// text of their pages; anything else must be UTF-8 text.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("textsource: read %s: %w", path, err)
	}

	var text string
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = ExtractPDF(data)
		if err != nil {
			return "", fmt.Errorf("textsource: parse pdf %s: %w", path, err)
		}
	} else {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("textsource: %s is not UTF-8 text", path)
		}
		text = string(data)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w in %s", ErrEmpty, path)
	}

	return text, nil
}

// ExtractPDF returns the plain text of every page in content, one page per
// line block. Pages without content or that fail to decode are skipped.
func ExtractPDF(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
