package domain

import "time"

// Cell is one value of a fetched row. Valid is false for cells the source
// left empty or never sent (short rows, null API values).
type Cell struct {
	Value string
	Valid bool
}

// RawRecord is one row of the fetched sheet, index-aligned with Table.Header.
type RawRecord []Cell

// Get returns the value at column i and whether it carries data.
// Out-of-range indexes and blank cells both report false.
func (r RawRecord) Get(i int) (string, bool) {
	if i < 0 || i >= len(r) || !r[i].Valid {
		return "", false
	}
	return r[i].Value, true
}

// Table is the full result of one source load: header labels and every row.
type Table struct {
	SheetID string
	Header  []string
	Records []RawRecord
}

// Column identifies a header by position and label. Positions matter because
// a sheet may carry duplicate labels.
type Column struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// ResolvedColumns holds the three columns the report reads.
type ResolvedColumns struct {
	Room   Column `json:"room"`
	Damage Column `json:"damage"`
	Image  Column `json:"image"`
}

// NormalizedEntry is one (room, damage type, image) triple after splitting a
// response's damage answer.
type NormalizedEntry struct {
	Room       string `json:"room"`
	DamageType string `json:"damage_type"`
	ImageLink  string `json:"image_link,omitempty"`
}

// FrequencyRow is one bar of the damage type chart.
type FrequencyRow struct {
	DamageType string `json:"damage_type"`
	Count      int    `json:"count"`
}

// FrequencySummary counts entries per damage type.
type FrequencySummary []FrequencyRow

// Total returns the sum of all counts.
func (s FrequencySummary) Total() int {
	n := 0
	for _, row := range s {
		n += row.Count
	}
	return n
}

// Max returns the largest count, or 0 for an empty summary.
func (s FrequencySummary) Max() int {
	m := 0
	for _, row := range s {
		if row.Count > m {
			m = row.Count
		}
	}
	return m
}

// RoomRow is one row of the top rooms table.
type RoomRow struct {
	Room  string `json:"room"`
	Count int    `json:"count"`
}

// RoomSummary counts entries per room, most damaged first.
type RoomSummary []RoomRow

// LinkRow is one row of the image table. LinkLabel is empty when ImageLink is
// not a usable URL.
type LinkRow struct {
	Room       string `json:"room"`
	DamageType string `json:"damage_type"`
	ImageLink  string `json:"image_link,omitempty"`
	LinkLabel  string `json:"link_label,omitempty"`
}

// Filter is the user's view state. RoomQuery narrows by room substring.
// DamageTypes narrows by damage type: nil selects every type, an empty
// non-nil slice selects none.
type Filter struct {
	RoomQuery   string   `json:"room_query,omitempty"`
	DamageTypes []string `json:"damage_types"`
}

// AllTypes reports whether the filter keeps every damage type.
func (f Filter) AllTypes() bool {
	return f.DamageTypes == nil
}

// Report is everything a render needs, recomputed per request.
type Report struct {
	SheetID     string          `json:"sheet_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Columns     ResolvedColumns `json:"columns"`
	Filter      Filter          `json:"filter"`

	// RecordCount is the number of fetched rows, EntryCount the number of
	// normalized entries before filtering, ViewCount after filtering.
	RecordCount int `json:"record_count"`
	EntryCount  int `json:"entry_count"`
	ViewCount   int `json:"view_count"`

	DamageTypeOptions []string          `json:"damage_type_options"`
	Frequencies       FrequencySummary  `json:"frequencies"`
	TopRooms          RoomSummary       `json:"top_rooms"`
	Links             []LinkRow         `json:"links"`
	Entries           []NormalizedEntry `json:"-"`
}

// Selected reports whether damage type t is selected in the report's filter.
func (r Report) Selected(t string) bool {
	if r.Filter.AllTypes() {
		return true
	}
	for _, s := range r.Filter.DamageTypes {
		if s == t {
			return true
		}
	}
	return false
}
