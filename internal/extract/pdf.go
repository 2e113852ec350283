package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

// extractNativePDF pulls the embedded text layer out of a PDF, page by page,
// preserving row order within each page. A page that cannot be read is logged
// and skipped; the document may still succeed from the remaining pages.
func extractNativePDF(ctx context.Context, data []byte, logger zerolog.Logger) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := nativePageText(reader.Page(i))
		if err != nil {
			logger.Warn().Int("page", i).Err(err).Msg("skipping unreadable PDF page")
			continue
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

// nativePageText extracts one page's text rows in top-to-bottom order.
// The underlying parser panics on some malformed content streams; those
// panics are converted to page-level errors so the caller can skip the page.
func nativePageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page content parse panic: %v", r)
		}
	}()

	if page.V.IsNull() {
		return "", fmt.Errorf("page object is null")
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("failed to read text rows: %w", err)
	}

	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, word := range row.Content {
			sb.WriteString(word.S)
		}
	}
	return sb.String(), nil
}
