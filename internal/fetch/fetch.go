// Package fetch retrieves the official reviews for one submission and
// assembles them into a collection, preserving the service's own review
// and field order end to end.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/review-fetch/internal/openreview"
	"github.com/pdiddy/review-fetch/pkg/types"
)

// DefaultReviewInvitation is the invitation name most venues use for
// their official review form.
const DefaultReviewInvitation = "Official_Review"

var (
	// ErrVenueResolution reports that no usable venue id is available:
	// none was supplied or detected, or the supplied one is not a venue
	// the service knows.
	ErrVenueResolution = errors.New("venue could not be resolved")

	// ErrFetch reports a failed retrieval: transport errors and
	// non-auth HTTP failures while talking to the service.
	ErrFetch = errors.New("fetching reviews failed")
)

// API is the slice of the OpenReview client the fetcher needs. Tests
// substitute a stub.
type API interface {
	Notes(ctx context.Context, forum, invitation string) ([]openreview.Note, error)
	Note(ctx context.Context, id string) (*openreview.Note, error)
	Invitation(ctx context.Context, id string) (*openreview.Invitation, error)
}

// DetectVenue derives the venue id from the submission note itself: the
// submission's invitation prefix before "/-/". Lets users paste a bare
// forum id without knowing the venue string.
func DetectVenue(ctx context.Context, api API, forumID string) (string, error) {
	note, err := api.Note(ctx, forumID)
	switch {
	case err == nil:
	case errors.Is(err, openreview.ErrNotFound):
		return "", fmt.Errorf("%w: submission %q not found", ErrVenueResolution, forumID)
	case errors.Is(err, openreview.ErrAuthentication):
		return "", err
	default:
		return "", fmt.Errorf("%w: loading submission %q: %w", ErrFetch, forumID, err)
	}

	for _, inv := range note.Invitations {
		if i := strings.Index(inv, "/-/"); i > 0 {
			return inv[:i], nil
		}
	}
	return "", fmt.Errorf("%w: submission %q names no venue in its invitations; pass --venue_id", ErrVenueResolution, forumID)
}

// Reviews fetches the official reviews on forumID under venueID. The
// review invitation record is looked up first: it confirms the venue
// exists and its schema drives the field display order. Zero reviews is
// a valid outcome, not an error.
func Reviews(ctx context.Context, api API, forumID, venueID string, cfg types.FetchConfig, w io.Writer) (types.ReviewCollection, error) {
	col := types.ReviewCollection{
		ForumID: forumID,
		VenueID: venueID,
		Fetched: time.Now().UTC(),
	}

	if venueID == "" {
		return col, fmt.Errorf("%w: no venue id; pass --venue_id or a console URL that names the venue", ErrVenueResolution)
	}

	name := cfg.ReviewInvitation
	if name == "" {
		name = DefaultReviewInvitation
	}
	invitationID := venueID + "/-/" + name
	col.InvitationID = invitationID

	var fieldOrder []string
	inv, err := api.Invitation(ctx, invitationID)
	switch {
	case err == nil:
		fieldOrder = inv.FieldOrder()
	case errors.Is(err, openreview.ErrNotFound):
		// The venue has no such invitation: almost always a mistyped
		// or auto-detected-wrong venue id rather than a reviewless one.
		return col, fmt.Errorf("%w: no %s invitation under venue %q; check --venue_id", ErrVenueResolution, name, venueID)
	case errors.Is(err, openreview.ErrAuthentication):
		return col, err
	default:
		return col, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	notes, err := api.Notes(ctx, forumID, invitationID)
	if err != nil {
		if errors.Is(err, openreview.ErrAuthentication) {
			return col, err
		}
		return col, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	if len(notes) == 0 && cfg.BroadFallback {
		fmt.Fprintf(w, "no notes under %s, searching all forum replies\n", invitationID)
		notes, err = broadSearch(ctx, api, forumID)
		if err != nil {
			if errors.Is(err, openreview.ErrAuthentication) {
				return col, err
			}
			return col, fmt.Errorf("%w: %w", ErrFetch, err)
		}
	}

	for i, note := range notes {
		col.Reviews = append(col.Reviews, buildReview(note, i+1, fieldOrder))
	}

	fmt.Fprintf(w, "found %d review(s) for %s\n", col.Count(), forumID)
	return col, nil
}

// broadSearch is the fallback when the invitation-filtered query comes
// back empty: every reply on the forum that is not the submission
// itself and carries review-like content.
func broadSearch(ctx context.Context, api API, forumID string) ([]openreview.Note, error) {
	all, err := api.Notes(ctx, forumID, "")
	if err != nil {
		return nil, err
	}

	var kept []openreview.Note
	for _, n := range all {
		if n.ID == forumID {
			continue
		}
		if n.Content.Has("review") || n.Content.Has("comment") {
			kept = append(kept, n)
		}
	}
	return kept, nil
}

// buildReview converts one note into a Review. Schema-ordered fields
// come first; fields the schema does not mention follow in the note's
// own order.
func buildReview(note openreview.Note, number int, fieldOrder []string) types.Review {
	r := types.Review{
		ID:       note.ID,
		Number:   number,
		Reviewer: reviewerLabel(note.Signatures),
	}

	seen := make(map[string]bool, len(fieldOrder))
	for _, name := range fieldOrder {
		if value, ok := note.Content.Get(name); ok {
			r.Fields = append(r.Fields, types.ReviewField{Name: name, Value: value})
			seen[name] = true
		}
	}
	for _, f := range note.Content.Fields {
		if !seen[f.Name] {
			r.Fields = append(r.Fields, types.ReviewField{Name: f.Name, Value: f.Value})
		}
	}
	return r
}

// reviewerLabel turns the first signature into a short display label:
// the last path segment, e.g. ".../Submission42/Reviewer_x7Kq" becomes
// "Reviewer_x7Kq".
func reviewerLabel(signatures []string) string {
	if len(signatures) == 0 {
		return "Anonymous"
	}
	sig := signatures[0]
	if i := strings.LastIndex(sig, "/"); i >= 0 {
		return sig[i+1:]
	}
	return sig
}
