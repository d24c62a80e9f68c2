// Package domain models the earthquake damage survey collected from the
// Circle Condo residents and the pure transformations that turn it into a
// report.
//
// # Data Source
//
// Residents fill in a Google Form whose responses land in a Google Sheet.
// The sheet is shared with viewer access and read as CSV through the export
// endpoint:
//
//	https://docs.google.com/spreadsheets/d/<sheet id>/export?format=csv
//
// Column labels are the form's question text, so they are long, bilingual
// and change whenever the form is edited. Columns are therefore located by
// substring rather than by position or exact name:
//
//	Room:   first label containing "Room No"
//	Damage: first label containing "ลักษณะของความเสียหาย" (damage characteristics)
//	Image:  last label containing "รูปภาพ" (picture) or "Picture"
//
// The image column picks the rightmost match because edited forms append a
// fresh upload question after the retired one. Labels are compared in Unicode
// NFC form; Thai vowel and tone marks may arrive decomposed from some clients.
//
// # Damage Field Conventions
//
// The damage question is a checkbox list, so a single answer holds several
// damage types joined by commas:
//
//	"ผนังร้าว, กระเบื้องหลุด"  →  "ผนังร้าว" and "กระเบื้องหลุด"
//
// Each piece becomes one [NormalizedEntry] sharing the room and image link of
// its response. Pieces are whitespace-trimmed; empty pieces (trailing commas)
// are discarded. Responses with a blank room or blank damage answer are
// skipped entirely.
//
// Image links are Google Drive URLs written by the form upload question. They
// are not validated during normalization; [ImageLinkLabel] decides at
// presentation time whether a value is linkable (prefix "http").
//
// # Summaries
//
//	Frequencies: count per damage type, count desc then type asc.
//	Top rooms:   count per room, count desc then room asc, first 10.
//
// Both summaries are computed from the filtered view, never by subtracting
// from an unfiltered total. See [BuildReport].
package domain
