// ABOUTME: Loads the regulations document into ordered, numbered pages
// ABOUTME: PDFs are read page by page; other files are UTF-8 text split on form feeds
package document

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/harper/race-engineer/internal/models"
)

var (
	// ErrNotFound is returned when the document path does not reference a file
	ErrNotFound = errors.New("document not found")
	// ErrContent is returned when a page cannot be decoded as text
	ErrContent = errors.New("document content is not valid text")
)

// PageBreak separates pages in plain-text documents
const PageBreak = "\f"

// Check verifies that path references an existing regular file
func Check(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	return nil
}

// Load reads the document at path into pages
func Load(path string) (*models.Document, error) {
	if err := Check(path); err != nil {
		return nil, err
	}

	var (
		pages []models.Page
		err   error
	)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		pages, err = loadPDF(path)
	} else {
		pages, err = loadText(path)
	}
	if err != nil {
		return nil, err
	}

	return &models.Document{Path: path, Pages: pages}, nil
}

// Fingerprint returns the hex sha256 of the file contents
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SplitPages splits plain text on form feeds into 1-based pages
func SplitPages(text string) ([]models.Page, error) {
	if !utf8.ValidString(text) {
		return nil, ErrContent
	}
	parts := strings.Split(text, PageBreak)
	pages := make([]models.Page, 0, len(parts))
	for i, part := range parts {
		pages = append(pages, models.Page{Number: i + 1, Text: part})
	}
	return pages, nil
}

func loadText(path string) ([]models.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	pages, err := SplitPages(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pages, nil
}

func loadPDF(path string) ([]models.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening pdf %s: %v", ErrContent, path, err)
	}
	defer func() { _ = f.Close() }()

	total := r.NumPage()
	pages := make([]models.Page, 0, total)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, models.Page{Number: i})
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrContent, i, err)
		}
		if !utf8.ValidString(text) {
			return nil, fmt.Errorf("%w: page %d", ErrContent, i)
		}
		pages = append(pages, models.Page{Number: i, Text: text})
	}
	return pages, nil
}
