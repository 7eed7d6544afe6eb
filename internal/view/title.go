// Package view holds small presentation helpers shared by the HTML
// handlers.
package view

const (
	siteName = "Scrunch"

	// Captions longer than this are cut down for the <title> tag.
	captionTitleMax  = 44
	captionTitleKeep = 41
)

// PostTitle builds the detail-page <title> from a caption: long
// captions keep their first 41 characters plus "...", and every title
// ends with the site suffix.
func PostTitle(caption string) string {
	runes := []rune(caption)
	if len(runes) > captionTitleMax {
		caption = string(runes[:captionTitleKeep]) + "..."
	}
	return caption + " | " + siteName
}

// PageTitle is the plain variant for non-post pages.
func PageTitle(name string) string {
	if name == "" {
		return siteName
	}
	return name + " | " + siteName
}
