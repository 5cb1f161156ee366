// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openreview

import "sort"

// Invitation is an invitation definition. Only the reply-content schema
// is decoded; it supplies the display order of review fields.
type Invitation struct {
	ID    string          `json:"id"`
	Edit  invitationEdit  `json:"edit"`
	Reply invitationReply `json:"reply"`
}

type invitationEdit struct {
	Note invitationNote `json:"note"`
}

type invitationNote struct {
	Content map[string]fieldSpec `json:"content"`
}

// invitationReply is the pre-v2 schema location, still served by some
// older venues.
type invitationReply struct {
	Content map[string]fieldSpec `json:"content"`
}

type fieldSpec struct {
	Order int `json:"order"`
}

// FieldOrder returns the schema's field names sorted by their declared
// order attribute, ties broken by name. Venues define this order for
// their review forms; rendering follows it rather than sorting
// alphabetically. Returns nil when the invitation carries no content
// schema.
func (inv *Invitation) FieldOrder() []string {
	content := inv.Edit.Note.Content
	if len(content) == 0 {
		content = inv.Reply.Content
	}
	if len(content) == 0 {
		return nil
	}

	names := make([]string, 0, len(content))
	for name := range content {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, oj := content[names[i]].Order, content[names[j]].Order
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	return names
}
