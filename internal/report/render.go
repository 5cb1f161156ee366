// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a review collection to Markdown and plain text
// and writes the output files. Field values pass through verbatim: the
// whole point of the tool is that LaTeX and Markdown delimiters survive
// exactly as the reviewer typed them.
package report

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/review-fetch/pkg/types"
)

// textRule separates reviews in the plain-text rendering.
var textRule = strings.Repeat("=", 80)

// Markdown renders the collection as a Markdown document: one "## Review"
// section per review, one "### <Label>" subsection per field, reviews
// separated by horizontal rules. An empty collection renders empty.
func Markdown(col types.ReviewCollection) string {
	var b strings.Builder
	for i, rev := range col.Reviews {
		if i > 0 {
			b.WriteString("---\n\n")
		}
		fmt.Fprintf(&b, "## Review %d: %s (ID: %s)\n\n", rev.Number, rev.Reviewer, rev.ID)
		for _, f := range rev.Fields {
			fmt.Fprintf(&b, "### %s\n\n", fieldLabel(f.Name))
			b.WriteString(f.Value)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// Text renders the collection as plain text: the same structure as the
// Markdown rendering without Markdown syntax, reviews separated by a
// rule of equals signs.
func Text(col types.ReviewCollection) string {
	var b strings.Builder
	for i, rev := range col.Reviews {
		if i > 0 {
			b.WriteString(textRule)
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "--- Review %d: %s (ID: %s) ---\n\n", rev.Number, rev.Reviewer, rev.ID)
		for _, f := range rev.Fields {
			fmt.Fprintf(&b, "%s:\n", fieldLabel(f.Name))
			b.WriteString(f.Value)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// fieldLabel turns a schema field name into a display label:
// "soundness_rating" becomes "Soundness Rating". Existing capitals are
// left alone so acronym fields keep their shape.
func fieldLabel(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
