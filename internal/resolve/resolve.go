// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve derives the forum and venue identifiers for a submission
// from a pasted forum URL or from explicit overrides.
package resolve

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/review-fetch/pkg/types"
)

// ErrNoForumID is returned when no forum id can be determined by any path:
// neither an explicit id nor a URL carrying a non-empty id query parameter.
var ErrNoForumID = errors.New("no forum id could be determined; provide --forum_id or a URL with an id parameter")

// DefaultVenuePattern matches the hierarchical venue paths embedded in
// console referrers: organization, four-digit year, and track separated by
// slashes (e.g. "AAAI.org/2026/Conference"). The accepted shape varies
// across service versions, so configuration can override it.
const DefaultVenuePattern = `^[A-Za-z0-9._-]+/\d{4}/[A-Za-z0-9._-]+`

// Resolution carries the identifiers derived from the inputs. VenueID may
// be empty: the venue is often not recoverable from the URL alone and is
// then supplied manually or auto-detected from the submission note. That
// state is an expected outcome, not an error.
type Resolution struct {
	ForumID string `json:"forum_id"`
	VenueID string `json:"venue_id,omitempty"`
}

// NeedsVenue reports whether the venue id is still unknown and must be
// supplied by the caller or detected later.
func (r Resolution) NeedsVenue() bool { return r.VenueID == "" }

// Resolve derives the forum and venue ids. Explicit forumID and venueID
// always win; the URL fills whichever of the two is missing. A venue that
// cannot be extracted resolves to empty, while a missing forum id is the
// one fatal case: Resolve fails with ErrNoForumID.
func Resolve(rawURL, forumID, venueID string, cfg types.ResolveConfig) (Resolution, error) {
	pattern := cfg.VenuePattern
	if pattern == "" {
		pattern = DefaultVenuePattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Resolution{}, fmt.Errorf("compiling venue pattern %q: %w", pattern, err)
	}

	res := Resolution{ForumID: forumID, VenueID: venueID}

	if rawURL != "" && (res.ForumID == "" || res.VenueID == "") {
		urlForum, urlVenue := parseForumURL(rawURL, re)
		if res.ForumID == "" {
			res.ForumID = urlForum
		}
		if res.VenueID == "" {
			res.VenueID = urlVenue
		}
	}

	if res.ForumID == "" {
		return Resolution{}, ErrNoForumID
	}
	return res, nil
}

// parseForumURL extracts the forum id from the URL's id query parameter and
// a venue id from its referrer parameter, if any. A document fragment after
// the query ("#note-1") belongs to neither and is discarded by URL parsing.
// Unparseable URLs yield empty results; the caller decides whether that is
// fatal.
func parseForumURL(rawURL string, venueRE *regexp.Regexp) (forumID, venueID string) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", ""
	}

	q := u.Query()
	forumID = q.Get("id")
	venueID = venueFromReferrer(q.Get("referrer"), venueRE)
	return forumID, venueID
}

// venueFromReferrer extracts a venue path from a console referrer such as
// "[Author Console](/group?id=AAAI.org/2026/Conference/Authors#your-submissions)"
// (already percent-decoded by query parsing). The candidate is the text
// after the last "id=" marker, matched against the venue pattern. Any
// failure yields "", which callers treat as venue-unknown.
func venueFromReferrer(referrer string, venueRE *regexp.Regexp) string {
	if referrer == "" {
		return ""
	}

	idx := strings.LastIndex(referrer, "id=")
	if idx < 0 {
		return ""
	}
	candidate := referrer[idx+len("id="):]

	return venueRE.FindString(candidate)
}
