// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/review-fetch/pkg/types"
)

func sampleCollection() types.ReviewCollection {
	return types.ReviewCollection{
		ForumID:      "fID",
		VenueID:      "V.org/2026/Conf",
		InvitationID: "V.org/2026/Conf/-/Official_Review",
		Reviews: []types.Review{
			{
				ID:       "r1",
				Number:   1,
				Reviewer: "Reviewer_x7Kq",
				Fields: []types.ReviewField{
					{Name: "summary", Value: "Studies sparse attention."},
					{Name: "rating", Value: "6"},
				},
			},
			{
				ID:       "r2",
				Number:   2,
				Reviewer: "Reviewer_p9Zn",
				Fields: []types.ReviewField{
					{Name: "summary", Value: "Extends prior bounds."},
				},
			},
		},
	}
}

func TestMarkdownStructure(t *testing.T) {
	got := Markdown(sampleCollection())

	want := "## Review 1: Reviewer_x7Kq (ID: r1)\n\n" +
		"### Summary\n\n" +
		"Studies sparse attention.\n\n" +
		"### Rating\n\n" +
		"6\n\n" +
		"---\n\n" +
		"## Review 2: Reviewer_p9Zn (ID: r2)\n\n" +
		"### Summary\n\n" +
		"Extends prior bounds.\n\n"

	assert.Equal(t, want, got)
}

func TestTextStructure(t *testing.T) {
	got := Text(sampleCollection())

	want := "--- Review 1: Reviewer_x7Kq (ID: r1) ---\n\n" +
		"Summary:\nStudies sparse attention.\n\n" +
		"Rating:\n6\n\n" +
		strings.Repeat("=", 80) + "\n\n" +
		"--- Review 2: Reviewer_p9Zn (ID: r2) ---\n\n" +
		"Summary:\nExtends prior bounds.\n\n"

	assert.Equal(t, want, got)
}

func TestRenderKeepsMarkupVerbatim(t *testing.T) {
	// The reason the tool exists: delimiters a browser would render away
	// must appear byte-identical in both outputs.
	values := []string{
		`Assume $X \perp Y$ under the null.`,
		"The loss is $$\\mathcal{L} = \\sum_i \\ell_i$$ as stated.",
		"Smith &amp; Jones show **bold** _claims_ with `code`.",
		"A table: | a | b |\n|---|---|\n| 1 | 2 |",
	}

	var fields []types.ReviewField
	for i, v := range values {
		fields = append(fields, types.ReviewField{Name: "field" + string(rune('a'+i)), Value: v})
	}
	col := types.ReviewCollection{
		ForumID: "fID",
		Reviews: []types.Review{{ID: "r1", Number: 1, Reviewer: "Reviewer_a", Fields: fields}},
	}

	md := Markdown(col)
	txt := Text(col)
	for _, v := range values {
		assert.Contains(t, md, v)
		assert.Contains(t, txt, v)
	}
}

func TestRenderEmptyCollection(t *testing.T) {
	col := types.ReviewCollection{ForumID: "fID"}

	assert.Empty(t, Markdown(col))
	assert.Empty(t, Text(col))
}

func TestFieldLabel(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"summary", "Summary"},
		{"soundness_rating", "Soundness Rating"},
		{"reviewer_confidence", "Reviewer Confidence"},
		{"TLDR", "TLDR"},
		{"questions_for_authors", "Questions For Authors"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fieldLabel(tt.name), "fieldLabel(%q)", tt.name)
	}
}
