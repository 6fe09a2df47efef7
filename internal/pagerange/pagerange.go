// Package pagerange resolves user-authored page-range expressions into
// concrete lists of 1-based page indices, validated against a document's
// actual page count.
//
// The grammar is:
//
//	expression := token (',' token)*
//	token      := [file ':'] ('all' | INTEGER | INTEGER '-' INTEGER)
//
// "all" is case-insensitive. Whitespace around tokens and around the
// hyphen and colon separators is tolerated. There are no negative
// numbers, open-ended ranges or step syntax.
//
// Resolution preserves the order tokens appear in and keeps duplicate
// indices, so "1-3,1-3" yields [1 2 3 1 2 3]. This allows intentional
// page duplication, e.g. inserting a second copy of a cover page.
package pagerange

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Kind classifies a resolution failure.
type Kind int

const (
	// InvalidRangeFormat means a token could not be parsed as "all",
	// an integer, or "start-end" with integers on both sides.
	InvalidRangeFormat Kind = iota
	// PageOutOfBounds means a parsed index or range endpoint falls
	// outside [1, pageCount].
	PageOutOfBounds
	// InvertedRange means a "start-end" token has start > end.
	InvertedRange
)

func (k Kind) String() string {
	switch k {
	case InvalidRangeFormat:
		return "invalid range format"
	case PageOutOfBounds:
		return "page out of bounds"
	case InvertedRange:
		return "inverted range"
	default:
		return "unknown"
	}
}

// Error is a resolution failure carrying the offending token.
type Error struct {
	Kind    Kind
	Token   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errf(kind Kind, token, format string, args ...any) *Error {
	return &Error{Kind: kind, Token: token, Message: fmt.Sprintf(format, args...)}
}

// Resolve parses an unscoped page-range expression against pageCount.
// Every returned index i satisfies 1 <= i <= pageCount; expressions
// that violate the bounds fail rather than being clamped. An empty
// expression resolves to an empty set; the caller decides whether
// zero pages is itself an error.
func Resolve(expr string, pageCount int) ([]int, error) {
	return resolve(expr, pageCount, "", false)
}

// ResolveForFile parses a file-scoped expression such as
// "file1.pdf:1-5,file2.pdf:10-20" against pageCount, keeping only the
// tokens scoped to fileKey. A token's file prefix matches either the
// full fileKey or its basename. In this form scoping is mandatory:
// bare tokens without a file prefix are rejected.
func ResolveForFile(expr string, pageCount int, fileKey string) ([]int, error) {
	return resolve(expr, pageCount, fileKey, true)
}

func resolve(expr string, pageCount int, fileKey string, scoped bool) ([]int, error) {
	pages := []int{}

	if strings.TrimSpace(expr) == "" {
		return pages, nil
	}

	for tok := range strings.SplitSeq(expr, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, errf(InvalidRangeFormat, tok, "empty token in page range %q", expr)
		}

		prefix, body, hasPrefix := strings.Cut(tok, ":")
		if scoped {
			if !hasPrefix {
				return nil, errf(InvalidRangeFormat, tok,
					"token %q must be scoped to a file (expected \"file:pages\")", tok)
			}
			if !fileKeyMatches(strings.TrimSpace(prefix), fileKey) {
				// Belongs to a different file's scope.
				continue
			}
			tok = strings.TrimSpace(body)
		} else if hasPrefix {
			return nil, errf(InvalidRangeFormat, tok,
				"file-scoped token %q is not valid here", tok)
		}

		resolved, err := resolveToken(tok, pageCount)
		if err != nil {
			return nil, err
		}
		pages = append(pages, resolved...)
	}

	return pages, nil
}

// resolveToken resolves a single plain token: "all", "N" or "N-M".
func resolveToken(tok string, pageCount int) ([]int, error) {
	if strings.EqualFold(tok, "all") {
		all := make([]int, pageCount)
		for i := range pageCount {
			all[i] = i + 1
		}
		return all, nil
	}

	if strings.Contains(tok, "-") {
		parts := strings.Split(tok, "-")
		if len(parts) != 2 {
			return nil, errf(InvalidRangeFormat, tok, "invalid range format: %q", tok)
		}

		start, err := parsePageNumber(parts[0])
		if err != nil {
			return nil, errf(InvalidRangeFormat, tok, "invalid range start in %q: %q", tok, strings.TrimSpace(parts[0]))
		}
		end, err := parsePageNumber(parts[1])
		if err != nil {
			return nil, errf(InvalidRangeFormat, tok, "invalid range end in %q: %q", tok, strings.TrimSpace(parts[1]))
		}

		if start > end {
			return nil, errf(InvertedRange, tok, "inverted range %d-%d", start, end)
		}
		if start < 1 || end > pageCount {
			return nil, errf(PageOutOfBounds, tok,
				"invalid page range %d-%d: pages must be between 1 and %d", start, end, pageCount)
		}

		pages := make([]int, 0, end-start+1)
		for i := start; i <= end; i++ {
			pages = append(pages, i)
		}
		return pages, nil
	}

	page, err := parsePageNumber(tok)
	if err != nil {
		return nil, errf(InvalidRangeFormat, tok, "invalid page number: %q", tok)
	}
	if page < 1 || page > pageCount {
		return nil, errf(PageOutOfBounds, tok,
			"invalid page number %d: must be between 1 and %d", page, pageCount)
	}
	return []int{page}, nil
}

// parsePageNumber parses a bare decimal page number. Signs are not part
// of the grammar, so "+3" is rejected even though strconv accepts it.
func parsePageNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, fmt.Errorf("not a page number: %q", s)
	}
	return strconv.Atoi(s)
}

// fileKeyMatches reports whether a token's file prefix selects fileKey.
// Users may write either the path as given on the command line or just
// the basename.
func fileKeyMatches(prefix, fileKey string) bool {
	return prefix == fileKey || prefix == filepath.Base(fileKey)
}
