package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sammcj/pdfsmith/internal/pdf"
)

func doc(path string, pages int) *pdf.Document {
	return &pdf.Document{Path: path, PageCount: pages}
}

func TestAddDocumentPreservesOrder(t *testing.T) {
	sess := New()
	sess.AddDocument(doc("a.pdf", 1))
	sess.AddDocument(doc("b.pdf", 2))
	sess.AddDocument(doc("c.pdf", 3))

	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, sess.Paths())
	assert.Equal(t, 3, sess.Len())
	assert.Equal(t, 6, sess.TotalPages())
}

func TestAddRejectsMissingFile(t *testing.T) {
	sess := New()
	_, err := sess.Add(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, pdf.ErrUnreadablePDF)
	assert.Equal(t, 0, sess.Len())
}

func TestAddRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0600))

	sess := New()
	_, err := sess.Add(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, pdf.ErrUnreadablePDF)
}

func TestRemove(t *testing.T) {
	sess := New()
	sess.AddDocument(doc("a.pdf", 1))
	sess.AddDocument(doc("b.pdf", 2))
	sess.SetPageRange("b.pdf", "1-2")

	require.NoError(t, sess.Remove(1))
	assert.Equal(t, []string{"a.pdf"}, sess.Paths())
	// The removed document's range goes with it.
	assert.Equal(t, "all", sess.PageRange("b.pdf"))

	require.Error(t, sess.Remove(5))
	require.Error(t, sess.Remove(-1))
}

func TestMoveUpDown(t *testing.T) {
	sess := New()
	sess.AddDocument(doc("a.pdf", 1))
	sess.AddDocument(doc("b.pdf", 1))
	sess.AddDocument(doc("c.pdf", 1))

	sess.MoveUp(2)
	assert.Equal(t, []string{"a.pdf", "c.pdf", "b.pdf"}, sess.Paths())

	sess.MoveDown(0)
	assert.Equal(t, []string{"c.pdf", "a.pdf", "b.pdf"}, sess.Paths())

	// Boundary moves are no-ops.
	sess.MoveUp(0)
	sess.MoveDown(2)
	sess.MoveUp(-1)
	sess.MoveDown(99)
	assert.Equal(t, []string{"c.pdf", "a.pdf", "b.pdf"}, sess.Paths())
}

func TestClear(t *testing.T) {
	sess := New()
	sess.AddDocument(doc("a.pdf", 1))
	sess.SetPageRange("a.pdf", "1")

	sess.Clear()
	assert.Equal(t, 0, sess.Len())
	assert.Equal(t, "all", sess.PageRange("a.pdf"))
}

func TestPageRangeDefaultsToAll(t *testing.T) {
	sess := New()
	sess.AddDocument(doc("a.pdf", 4))

	assert.Equal(t, "all", sess.PageRange("a.pdf"))

	sess.SetPageRange("a.pdf", "2-3")
	assert.Equal(t, "2-3", sess.PageRange("a.pdf"))

	sess.SetPageRange("a.pdf", "")
	assert.Equal(t, "all", sess.PageRange("a.pdf"))
}

func TestDocumentsReturnsCopy(t *testing.T) {
	sess := New()
	sess.AddDocument(doc("a.pdf", 1))
	sess.AddDocument(doc("b.pdf", 1))

	docs := sess.Documents()
	docs[0], docs[1] = docs[1], docs[0]

	// Mutating the returned slice must not reorder the session.
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, sess.Paths())
}
