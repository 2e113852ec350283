package extract

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// ocrDPI is the raster resolution used when rendering pages for recognition.
// 300 DPI is enough for legible glyphs without excessive render cost.
const ocrDPI = 300

// extractOCRPDF renders every page of a PDF to a raster image and recognizes
// its text with Tesseract. OCR is the last strategy in the chain, so any
// page-level render or recognition failure is fatal for the whole document.
func extractOCRPDF(ctx context.Context, data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF for rendering: %w", err)
	}
	defer doc.Close()

	client := gosseract.NewClient()
	defer client.Close()

	// Tesseract tuning carried from production use: LSTM engine, automatic
	// page segmentation, keep inter-word spacing.
	_ = client.SetVariable("tessedit_ocr_engine_mode", "1")
	_ = client.SetVariable("tessedit_pageseg_mode", "3")
	_ = client.SetVariable("preserve_interword_spaces", "1")

	var pages []string
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := recognizePage(doc, client, pageNum)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pageNum+1, err)
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

// recognizePage renders a single page at ocrDPI and runs it through Tesseract.
func recognizePage(doc *fitz.Document, client *gosseract.Client, pageNum int) (string, error) {
	img, err := doc.ImageDPI(pageNum, ocrDPI)
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}

	var buf bytes.Buffer
	encoder := png.Encoder{CompressionLevel: png.NoCompression}
	if err := encoder.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode page image: %w", err)
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to load page image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}
	return text, nil
}
