package domain

// BuildReport runs the pure part of the pipeline over a loaded table:
// column resolution, normalization, filtering and aggregation. Damage type
// options come from the room-filtered entries so the multi-select only offers
// types present in the searched rooms. Summaries are recomputed from the
// filtered view.
func BuildReport(table Table, f Filter) (Report, error) {
	cols, err := ResolveColumns(table.Header)
	if err != nil {
		return Report{}, err
	}

	entries := Normalize(table.Records, cols)
	byRoom := FilterByRoom(entries, f.RoomQuery)
	view := FilterByDamageType(byRoom, f.DamageTypes)

	return Report{
		SheetID:           table.SheetID,
		GeneratedAt:       clock.Now().UTC(),
		Columns:           cols,
		Filter:            f,
		RecordCount:       len(table.Records),
		EntryCount:        len(entries),
		ViewCount:         len(view),
		DamageTypeOptions: DamageTypes(byRoom),
		Frequencies:       Frequencies(view),
		TopRooms:          TopRooms(view, TopRoomLimit),
		Links:             LinkRows(view),
		Entries:           view,
	}, nil
}
