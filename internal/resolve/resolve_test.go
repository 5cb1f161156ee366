// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"errors"
	"regexp"
	"testing"

	"github.com/pdiddy/review-fetch/pkg/types"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		forumID   string
		venueID   string
		wantForum string
		wantVenue string
		wantErr   error
	}{
		// Plain id parameter.
		{
			name:      "url with id only",
			url:       "https://openreview.net/forum?id=aB12cD34",
			wantForum: "aB12cD34",
			wantVenue: "",
		},
		{
			name:      "url with id and extra params",
			url:       "https://openreview.net/forum?id=aB12cD34&noteId=xYz",
			wantForum: "aB12cD34",
			wantVenue: "",
		},

		// Fragment after the id parameter is stripped, not part of the id.
		{
			name:      "url with trailing fragment",
			url:       "https://openreview.net/forum?id=aB12cD34#discussion",
			wantForum: "aB12cD34",
			wantVenue: "",
		},
		{
			name:      "url with fragment after referrer",
			url:       "https://openreview.net/forum?id=aB12cD34&referrer=%5BTasks%5D(/tasks)#all",
			wantForum: "aB12cD34",
			wantVenue: "",
		},

		// Referrer carrying a three-segment venue path.
		{
			name:      "referrer with venue path",
			url:       "https://site/forum?id=AB12&referrer=%5BAuthor%20Console%5D(/group?id=Org.org/2026/Conference)",
			wantForum: "AB12",
			wantVenue: "Org.org/2026/Conference",
		},
		{
			name:      "referrer venue path with trailing segments",
			url:       "https://openreview.net/forum?id=AB12&referrer=%5BAuthor%20Console%5D(%2Fgroup%3Fid%3DAAAI.org%2F2026%2FConference%2FAuthors%23your-submissions)",
			wantForum: "AB12",
			wantVenue: "AAAI.org/2026/Conference",
		},

		// Malformed or unhelpful referrers resolve to venue-unknown, not an error.
		{
			name:      "referrer without id marker",
			url:       "https://openreview.net/forum?id=AB12&referrer=%5BTasks%5D(/tasks)",
			wantForum: "AB12",
			wantVenue: "",
		},
		{
			name:      "referrer with non-venue id",
			url:       "https://openreview.net/forum?id=AB12&referrer=%5BConsole%5D(/group?id=short)",
			wantForum: "AB12",
			wantVenue: "",
		},
		{
			name:      "referrer with non-year middle segment",
			url:       "https://openreview.net/forum?id=AB12&referrer=%5BConsole%5D(/group?id=Org/Track/Extra)",
			wantForum: "AB12",
			wantVenue: "",
		},

		// Explicit identifiers win over the URL.
		{
			name:      "explicit forum id ignores url id",
			url:       "https://openreview.net/forum?id=fromURL",
			forumID:   "explicit",
			wantForum: "explicit",
			wantVenue: "",
		},
		{
			name:      "explicit venue id ignores referrer",
			url:       "https://site/forum?id=AB12&referrer=%5BConsole%5D(/group?id=Org.org/2026/Conference)",
			venueID:   "Other.org/2027/Workshop",
			wantForum: "AB12",
			wantVenue: "Other.org/2027/Workshop",
		},
		{
			name:      "explicit ids without url",
			forumID:   "fID",
			venueID:   "Org.org/2026/Conference",
			wantForum: "fID",
			wantVenue: "Org.org/2026/Conference",
		},

		// Scheme-less URL still parses.
		{
			name:      "scheme-less url",
			url:       "openreview.net/forum?id=AB12",
			wantForum: "AB12",
			wantVenue: "",
		},

		// No forum id by any path.
		{
			name:    "no inputs",
			wantErr: ErrNoForumID,
		},
		{
			name:    "url without id parameter",
			url:     "https://openreview.net/forum?noteId=xYz",
			wantErr: ErrNoForumID,
		},
		{
			name:    "url with empty id parameter",
			url:     "https://openreview.net/forum?id=",
			wantErr: ErrNoForumID,
		},
		{
			name:    "venue alone is not enough",
			venueID: "Org.org/2026/Conference",
			wantErr: ErrNoForumID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.url, tt.forumID, tt.venueID, types.ResolveConfig{})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(): %v", err)
			}
			if got.ForumID != tt.wantForum {
				t.Errorf("ForumID = %q, want %q", got.ForumID, tt.wantForum)
			}
			if got.VenueID != tt.wantVenue {
				t.Errorf("VenueID = %q, want %q", got.VenueID, tt.wantVenue)
			}
		})
	}
}

func TestResolveCustomVenuePattern(t *testing.T) {
	// A venue service that uses two-segment paths without a year.
	cfg := types.ResolveConfig{VenuePattern: `^[A-Za-z0-9._-]+/[A-Za-z0-9._-]+`}

	got, err := Resolve("https://site/forum?id=AB12&referrer=%5BConsole%5D(/group?id=Org/Track/Extra)", "", "", cfg)
	if err != nil {
		t.Fatalf("Resolve(): %v", err)
	}
	if got.VenueID != "Org/Track" {
		t.Errorf("VenueID = %q, want %q", got.VenueID, "Org/Track")
	}
}

func TestResolveBadVenuePattern(t *testing.T) {
	_, err := Resolve("https://site/forum?id=AB12", "", "", types.ResolveConfig{VenuePattern: "("})
	if err == nil {
		t.Fatal("expected error for unparseable venue pattern")
	}
	if errors.Is(err, ErrNoForumID) {
		t.Error("pattern error should not be reported as a missing forum id")
	}
}

func TestNeedsVenue(t *testing.T) {
	if !(Resolution{ForumID: "f"}).NeedsVenue() {
		t.Error("NeedsVenue() = false for empty venue, want true")
	}
	if (Resolution{ForumID: "f", VenueID: "v"}).NeedsVenue() {
		t.Error("NeedsVenue() = true for set venue, want false")
	}
}

func TestVenueFromReferrer(t *testing.T) {
	re := regexp.MustCompile(DefaultVenuePattern)

	tests := []struct {
		name     string
		referrer string
		want     string
	}{
		{"empty", "", ""},
		{"no id marker", "[Tasks](/tasks)", ""},
		{
			"single id marker",
			"[Author Console](/group?id=AAAI.org/2026/Conference/Authors#your-submissions)",
			"AAAI.org/2026/Conference",
		},
		{
			"uses last id marker",
			"[Console](/group?id=ignored&referrer=/group?id=NeurIPS.cc/2025/Track)",
			"NeurIPS.cc/2025/Track",
		},
		{"closing paren terminates match", "[C](/group?id=Org.org/2026/Conference)", "Org.org/2026/Conference"},
		{"too few segments", "[C](/group?id=Org.org/2026)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := venueFromReferrer(tt.referrer, re); got != tt.want {
				t.Errorf("venueFromReferrer(%q) = %q, want %q", tt.referrer, got, tt.want)
			}
		})
	}
}
