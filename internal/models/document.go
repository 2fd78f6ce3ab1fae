// ABOUTME: Document and Page represent the regulations file as loaded at build time
// ABOUTME: Pages carry 1-based numbers used as provenance for citations
package models

// Page is the raw text of one page of the source document
type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Document is an ordered, immutable sequence of pages
type Document struct {
	Path  string `json:"path"`
	Pages []Page `json:"pages"`
}

// PageCount returns the number of pages in the document
func (d *Document) PageCount() int {
	return len(d.Pages)
}
