// Package session holds the ordered list of documents an invocation
// operates on. It replaces the module-level "current file list" the
// original tool kept: every operation receives an explicit session
// rather than reaching for shared state, and nothing survives past the
// invocation that created it.
package session

import (
	"fmt"
	"sync"

	"github.com/sammcj/pdfsmith/internal/pdf"
)

// Session is an ordered, mutable list of validated documents with an
// optional page-range expression per document. Safe for use from a UI
// thread and a worker; a CLI invocation uses it single-threaded.
type Session struct {
	mu     sync.Mutex
	docs   []*pdf.Document
	ranges map[string]string
}

// New returns an empty session.
func New() *Session {
	return &Session{ranges: make(map[string]string)}
}

// Add opens and validates the PDF at path and appends it to the list.
func (s *Session) Add(path string) (*pdf.Document, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	s.AddDocument(doc)
	return doc, nil
}

// AddDocument appends an already opened document.
func (s *Session) AddDocument(doc *pdf.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
}

// Remove deletes the document at index i.
func (s *Session) Remove(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.docs) {
		return fmt.Errorf("no document at index %d", i)
	}
	delete(s.ranges, s.docs[i].Path)
	s.docs = append(s.docs[:i], s.docs[i+1:]...)
	return nil
}

// Clear removes every document and page range.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = nil
	s.ranges = make(map[string]string)
}

// MoveUp swaps the document at index i with its predecessor. Moving
// the first document is a no-op.
func (s *Session) MoveUp(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i > 0 && i < len(s.docs) {
		s.docs[i-1], s.docs[i] = s.docs[i], s.docs[i-1]
	}
}

// MoveDown swaps the document at index i with its successor. Moving
// the last document is a no-op.
func (s *Session) MoveDown(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i >= 0 && i < len(s.docs)-1 {
		s.docs[i], s.docs[i+1] = s.docs[i+1], s.docs[i]
	}
}

// SetPageRange records the page-range expression for the document at
// path. The expression is not resolved here; resolution happens when
// an operation consumes the session, once the page count is needed.
func (s *Session) SetPageRange(path, expr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranges[path] = expr
}

// PageRange returns the recorded expression for path, or "all".
func (s *Session) PageRange(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if expr, ok := s.ranges[path]; ok && expr != "" {
		return expr
	}
	return "all"
}

// Len returns the number of documents.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// Documents returns the documents in order.
func (s *Session) Documents() []*pdf.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*pdf.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Paths returns the document paths in order.
func (s *Session) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, len(s.docs))
	for i, d := range s.docs {
		paths[i] = d.Path
	}
	return paths
}

// TotalPages sums the page counts of every document.
func (s *Session) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, d := range s.docs {
		total += d.PageCount
	}
	return total
}
