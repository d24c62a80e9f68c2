package domain

import (
	"cmp"
	"slices"
	"strings"
)

// TopRoomLimit is the number of rooms shown in the most-damaged table.
const TopRoomLimit = 10

// Frequencies counts entries per damage type, ordered by count descending
// then damage type ascending.
func Frequencies(entries []NormalizedEntry) FrequencySummary {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.DamageType]++
	}
	out := make(FrequencySummary, 0, len(counts))
	for t, n := range counts {
		out = append(out, FrequencyRow{DamageType: t, Count: n})
	}
	slices.SortFunc(out, func(a, b FrequencyRow) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.DamageType, b.DamageType)
	})
	return out
}

// TopRooms counts entries per room and returns the limit rooms with the most
// entries. Ties are broken by room ascending. A non-positive limit returns
// every room.
func TopRooms(entries []NormalizedEntry, limit int) RoomSummary {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Room]++
	}
	out := make(RoomSummary, 0, len(counts))
	for room, n := range counts {
		out = append(out, RoomRow{Room: room, Count: n})
	}
	slices.SortFunc(out, func(a, b RoomRow) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Room, b.Room)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
