// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for review-fetch: the review
// records retrieved from the review service and the configuration for the
// client, resolver, and output stages.
package types

import "time"

// ReviewField is one labeled field of a review (summary, rating, strengths,
// ...). Value carries the raw field text exactly as the service stores it:
// LaTeX and Markdown delimiters survive byte for byte, with no entity
// decoding and no math-span stripping.
type ReviewField struct {
	// Name is the schema field name (e.g. "summary", "rating").
	Name string `json:"name" yaml:"name"`

	// Value is the raw field content, unmodified.
	Value string `json:"value" yaml:"value"`
}

// Review holds one official review note with its fields in rendering order.
type Review struct {
	// ID is the note id assigned by the service.
	ID string `json:"id" yaml:"id"`

	// Number is the review's position in the fetched collection,
	// starting at 1. It follows the service's response order.
	Number int `json:"number,omitempty" yaml:"number,omitempty"`

	// Reviewer is a display label derived from the note signature
	// (e.g. "Reviewer_mXkP"); "Anonymous" when the note carries none.
	Reviewer string `json:"reviewer,omitempty" yaml:"reviewer,omitempty"`

	// Fields lists the review fields in rendering order: the venue
	// schema's declared order first, then any remaining fields in the
	// order the service returned them. Never sorted alphabetically.
	Fields []ReviewField `json:"fields" yaml:"fields"`
}

// ReviewCollection is the ordered set of reviews fetched for one forum.
// Review order is the service's own response order and is never re-sorted.
type ReviewCollection struct {
	// ForumID identifies the submission thread the reviews belong to.
	ForumID string `json:"forum_id" yaml:"forum_id"`

	// VenueID is the hierarchical venue identifier
	// (e.g. "Org.org/2026/Conference").
	VenueID string `json:"venue_id" yaml:"venue_id"`

	// InvitationID is the official-review invitation the reviews matched
	// (e.g. "Org.org/2026/Conference/-/Official_Review").
	InvitationID string `json:"invitation_id" yaml:"invitation_id"`

	// Fetched records when the collection was retrieved.
	Fetched time.Time `json:"fetched" yaml:"fetched"`

	// Reviews holds the review records in service order.
	Reviews []Review `json:"reviews" yaml:"reviews"`
}

// Count returns the number of reviews in the collection.
func (c ReviewCollection) Count() int { return len(c.Reviews) }

// Empty reports whether the collection holds no reviews. Zero reviews is a
// reportable outcome ("no reviews published yet"), not an error.
func (c ReviewCollection) Empty() bool { return len(c.Reviews) == 0 }
