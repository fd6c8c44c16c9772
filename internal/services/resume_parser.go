package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxResumePages caps how many page scans are sent to the model when falling
// back to the image path, bounding payload size and model cost.
const maxResumePages = 3

type ResumeParserService interface {
	// ExtractText concatenates the text of every page. An empty result with
	// a nil error means the PDF carries no extractable text (e.g. a scanned
	// resume) and the caller should fall back to ExtractImages.
	ExtractText(pdfBytes []byte) (string, error)
	// ExtractImages returns up to maxPages embedded page scans as JPEG
	// blobs, for PDFs with no extractable text.
	ExtractImages(pdfBytes []byte, maxPages int) ([][]byte, error)
}

type resumeParserService struct{}

func NewResumeParserService() ResumeParserService {
	return &resumeParserService{}
}

func (p *resumeParserService) ExtractText(pdfBytes []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return SanitizeText(strings.TrimSpace(textBuilder.String())), nil
}

// ExtractImages pulls embedded JPEG streams out of the raw PDF. Scanned
// resumes store each page as a single DCTDecode image whose stream content is
// a verbatim JPEG, so scanning for SOI/EOI markers recovers the page scans
// without a rasterizer.
func (p *resumeParserService) ExtractImages(pdfBytes []byte, maxPages int) ([][]byte, error) {
	if maxPages <= 0 || maxPages > maxResumePages {
		maxPages = maxResumePages
	}

	// A full-page scan is never this small; anything below is an icon or
	// thumbnail we don't want to send to the model.
	const minImageSize = 2048

	var images [][]byte
	rest := pdfBytes
	for len(images) < maxPages {
		start := bytes.Index(rest, []byte{0xFF, 0xD8, 0xFF})
		if start < 0 {
			break
		}
		end := bytes.Index(rest[start:], []byte{0xFF, 0xD9})
		if end < 0 {
			break
		}
		img := rest[start : start+end+2]
		if len(img) >= minImageSize {
			images = append(images, img)
		}
		rest = rest[start+end+2:]
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no embedded page images found", ErrExtraction)
	}

	return images, nil
}
