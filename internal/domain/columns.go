package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Label fragments used to locate the survey columns.
const (
	RoomLabel         = "Room No"
	DamageLabel       = "ลักษณะของความเสียหาย"
	ImageLabelThai    = "รูปภาพ"
	ImageLabelEnglish = "Picture"
)

// ResolveColumns locates the room, damage and image columns in a header row.
// Room and damage take the leftmost matching label, image the rightmost.
// A missing column yields a *ColumnNotFoundError.
func ResolveColumns(header []string) (ResolvedColumns, error) {
	labels := make([]string, len(header))
	for i, h := range header {
		labels[i] = norm.NFC.String(h)
	}

	room, ok := firstMatch(labels, RoomLabel)
	if !ok {
		return ResolvedColumns{}, &ColumnNotFoundError{Field: "room", Patterns: []string{RoomLabel}}
	}
	damage, ok := firstMatch(labels, DamageLabel)
	if !ok {
		return ResolvedColumns{}, &ColumnNotFoundError{Field: "damage", Patterns: []string{DamageLabel}}
	}
	image, ok := lastMatch(labels, ImageLabelThai, ImageLabelEnglish)
	if !ok {
		return ResolvedColumns{}, &ColumnNotFoundError{Field: "image", Patterns: []string{ImageLabelThai, ImageLabelEnglish}}
	}

	return ResolvedColumns{
		Room:   Column{Index: room, Label: header[room]},
		Damage: Column{Index: damage, Label: header[damage]},
		Image:  Column{Index: image, Label: header[image]},
	}, nil
}

func firstMatch(labels []string, patterns ...string) (int, bool) {
	for i, l := range labels {
		if containsAny(l, patterns) {
			return i, true
		}
	}
	return -1, false
}

func lastMatch(labels []string, patterns ...string) (int, bool) {
	for i := len(labels) - 1; i >= 0; i-- {
		if containsAny(labels[i], patterns) {
			return i, true
		}
	}
	return -1, false
}

func containsAny(label string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(label, norm.NFC.String(p)) {
			return true
		}
	}
	return false
}
