package domain

import "strings"

// ViewImageLabel is the anchor text for a linkable image.
const ViewImageLabel = "ดูภาพ"

// ImageLinkLabel returns ViewImageLabel when link looks like a URL and ""
// otherwise.
func ImageLinkLabel(link string) string {
	if link != "" && strings.HasPrefix(link, "http") {
		return ViewImageLabel
	}
	return ""
}

// LinkRows projects entries onto the image table, preserving order.
func LinkRows(entries []NormalizedEntry) []LinkRow {
	rows := make([]LinkRow, len(entries))
	for i, e := range entries {
		rows[i] = LinkRow{
			Room:       e.Room,
			DamageType: e.DamageType,
			ImageLink:  e.ImageLink,
			LinkLabel:  ImageLinkLabel(e.ImageLink),
		}
	}
	return rows
}
