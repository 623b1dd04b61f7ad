package textsource

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// Extractor turns a PDF file into plain text, pages in order.
// Implementations allow the source to be swapped in tests.
type Extractor interface {
	ExtractText(ctx context.Context, pdfPath string) (string, error)
}

// GoPDFExtractor reads the PDF with github.com/ledongthuc/pdf. It needs no
// external tools but loses the column layout of some reports.
type GoPDFExtractor struct{}

// NewGoPDFExtractor creates a GoPDFExtractor.
func NewGoPDFExtractor() *GoPDFExtractor {
	return &GoPDFExtractor{}
}

// ExtractText joins the plain text of every page, separated by form feeds.
func (e *GoPDFExtractor) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	f, reader, err := pdflib.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("error reading page %d: %w", i, err)
		}
		if i > 1 {
			buf.WriteString("\f")
		}
		buf.WriteString(text)
	}
	if strings.TrimSpace(buf.String()) == "" {
		return "", errors.New("no text layer found")
	}
	return buf.String(), nil
}

// PdftotextExtractor runs the poppler pdftotext command in layout mode,
// which keeps ledger columns on one line.
type PdftotextExtractor struct {
	// Command defaults to "pdftotext".
	Command string
}

// NewPdftotextExtractor creates a PdftotextExtractor.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{Command: "pdftotext"}
}

// ExtractText writes the layout text to stdout and returns it.
func (e *PdftotextExtractor) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	command := e.Command
	if command == "" {
		command = "pdftotext"
	}
	cmd := exec.CommandContext(ctx, command, "-layout", pdfPath, "-") // #nosec G204 -- fixed binary, user-provided file path
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}
	return string(out), nil
}

// FallbackExtractor tries Primary first and Secondary when it fails.
type FallbackExtractor struct {
	Primary   Extractor
	Secondary Extractor
}

// ExtractText returns the first successful extraction. When both fail the
// errors are joined.
func (e *FallbackExtractor) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	text, err := e.Primary.ExtractText(ctx, pdfPath)
	if err == nil || e.Secondary == nil {
		return text, err
	}
	text, err2 := e.Secondary.ExtractText(ctx, pdfPath)
	if err2 != nil {
		return "", errors.Join(err, err2)
	}
	return text, nil
}

// MockExtractor returns fixed text or a fixed error.
type MockExtractor struct {
	MockText string
	MockErr  error
	Calls    int
}

// NewMockExtractor creates a MockExtractor with the given result.
func NewMockExtractor(mockText string, mockErr error) *MockExtractor {
	return &MockExtractor{MockText: mockText, MockErr: mockErr}
}

// ExtractText returns the predefined text or error.
func (e *MockExtractor) ExtractText(_ context.Context, _ string) (string, error) {
	e.Calls++
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
