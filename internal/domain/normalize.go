package domain

import (
	"slices"
	"strings"
)

// damageSeparator joins the checkbox answers of the damage question.
const damageSeparator = ","

// Normalize projects each record onto the resolved columns and expands its
// damage answer into one entry per damage type. Records with a blank room or
// damage answer are dropped. The input is not modified.
func Normalize(records []RawRecord, cols ResolvedColumns) []NormalizedEntry {
	entries := make([]NormalizedEntry, 0, len(records))
	for _, rec := range records {
		room, ok := rec.Get(cols.Room.Index)
		room = strings.TrimSpace(room)
		if !ok || room == "" {
			continue
		}
		damage, ok := rec.Get(cols.Damage.Index)
		if !ok || strings.TrimSpace(damage) == "" {
			continue
		}
		image, _ := rec.Get(cols.Image.Index)

		for _, piece := range strings.Split(damage, damageSeparator) {
			damageType := strings.TrimSpace(piece)
			if damageType == "" {
				continue
			}
			entries = append(entries, NormalizedEntry{
				Room:       room,
				DamageType: damageType,
				ImageLink:  image,
			})
		}
	}
	return entries
}

// DamageTypes returns the distinct damage types in ascending order.
func DamageTypes(entries []NormalizedEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	types := make([]string, 0)
	for _, e := range entries {
		if _, ok := seen[e.DamageType]; ok {
			continue
		}
		seen[e.DamageType] = struct{}{}
		types = append(types, e.DamageType)
	}
	slices.Sort(types)
	return types
}

// FilterByRoom keeps entries whose room contains query. An empty query keeps
// everything. Matching is case-sensitive.
func FilterByRoom(entries []NormalizedEntry, query string) []NormalizedEntry {
	out := make([]NormalizedEntry, 0, len(entries))
	for _, e := range entries {
		if query == "" || strings.Contains(e.Room, query) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByDamageType keeps entries whose damage type is in selected. A nil
// selection keeps everything.
func FilterByDamageType(entries []NormalizedEntry, selected []string) []NormalizedEntry {
	if selected == nil {
		return slices.Clone(entries)
	}
	keep := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		keep[s] = struct{}{}
	}
	out := make([]NormalizedEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := keep[e.DamageType]; ok {
			out = append(out, e)
		}
	}
	return out
}

// ApplyFilter narrows entries by room first, then by damage type.
func ApplyFilter(entries []NormalizedEntry, f Filter) []NormalizedEntry {
	return FilterByDamageType(FilterByRoom(entries, f.RoomQuery), f.DamageTypes)
}
