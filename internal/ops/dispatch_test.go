package ops

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sammcj/pdfsmith/internal/pdf"
	"github.com/sammcj/pdfsmith/internal/session"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestMergeRequiresTwoInputs(t *testing.T) {
	logger := testLogger()

	for _, inputs := range [][]string{nil, {}, {"only.pdf"}} {
		_, err := Execute(context.Background(), logger, Merge{
			Inputs: inputs,
			Output: "out.pdf",
		}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, pdf.ErrInsufficientInputs)
	}
}

func TestSplitModeExclusivity(t *testing.T) {
	logger := testLogger()

	// Neither mode set.
	_, err := Execute(context.Background(), logger, Split{
		Input:     "in.pdf",
		OutputDir: "out",
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")

	// Both modes set.
	_, err = Execute(context.Background(), logger, Split{
		Input:        "in.pdf",
		OutputDir:    "out",
		PagesPerFile: 5,
		Ranges:       "1-10",
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")
}

func sessionWith(t *testing.T, docs ...*pdf.Document) *session.Session {
	t.Helper()
	sess := session.New()
	for _, d := range docs {
		sess.AddDocument(d)
	}
	return sess
}

func TestMergeSelectionsEmptyExpression(t *testing.T) {
	sess := sessionWith(t,
		&pdf.Document{Path: "a.pdf", PageCount: 3},
		&pdf.Document{Path: "b.pdf", PageCount: 5},
	)

	selections, err := mergeSelections(sess, "")
	require.NoError(t, err)
	assert.Nil(t, selections)
}

func TestMergeSelectionsPositional(t *testing.T) {
	sess := sessionWith(t,
		&pdf.Document{Path: "a.pdf", PageCount: 10},
		&pdf.Document{Path: "b.pdf", PageCount: 5},
		&pdf.Document{Path: "c.pdf", PageCount: 4},
	)

	selections, err := mergeSelections(sess, "1-3,all")
	require.NoError(t, err)
	require.Len(t, selections, 3)

	assert.Equal(t, []int{1, 2, 3}, selections[0])
	// "all" and missing trailing tokens keep the whole file.
	assert.Nil(t, selections[1])
	assert.Nil(t, selections[2])

	// The positional assignment is recorded on the session.
	assert.Equal(t, "1-3", sess.PageRange("a.pdf"))
	assert.Equal(t, "all", sess.PageRange("b.pdf"))
	assert.Equal(t, "all", sess.PageRange("c.pdf"))
}

func TestMergeSelectionsPositionalTooManyTokens(t *testing.T) {
	sess := sessionWith(t, &pdf.Document{Path: "a.pdf", PageCount: 10})

	_, err := mergeSelections(sess, "1-3,4-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inputs")
}

func TestMergeSelectionsPositionalOutOfBounds(t *testing.T) {
	sess := sessionWith(t, &pdf.Document{Path: "a.pdf", PageCount: 2})

	_, err := mergeSelections(sess, "1-5")
	require.Error(t, err)
}

func TestMergeSelectionsScoped(t *testing.T) {
	sess := sessionWith(t,
		&pdf.Document{Path: "/docs/fileA.pdf", PageCount: 10},
		&pdf.Document{Path: "/docs/fileB.pdf", PageCount: 20},
		&pdf.Document{Path: "/docs/fileC.pdf", PageCount: 3},
	)

	selections, err := mergeSelections(sess, "fileA.pdf:1-2,fileB.pdf:10-12")
	require.NoError(t, err)
	require.Len(t, selections, 3)

	assert.Equal(t, []int{1, 2}, selections[0])
	assert.Equal(t, []int{10, 11, 12}, selections[1])
	// Files the expression never mentions are merged whole.
	assert.Nil(t, selections[2])
}

func TestMergeSelectionsScopedRejectsBareTokens(t *testing.T) {
	sess := sessionWith(t,
		&pdf.Document{Path: "a.pdf", PageCount: 10},
		&pdf.Document{Path: "b.pdf", PageCount: 10},
	)

	// Colon anywhere selects the scoped grammar; the bare "5" then
	// fails rather than silently applying to some file.
	_, err := mergeSelections(sess, "a.pdf:1-2,5")
	require.Error(t, err)
}

func TestSplitRangeList(t *testing.T) {
	assert.Equal(t, []string{"1-10", "11-20"}, splitRangeList("1-10,11-20"))
	assert.Equal(t, []string{"1-10", "11-20"}, splitRangeList(" 1-10 , 11-20 "))
	assert.Empty(t, splitRangeList(""))
}
