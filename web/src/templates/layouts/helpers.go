package layouts

// BrandName is the site name shown in the navigation bar and page titles.
const BrandName = "Home Jobs for Women"

// CalculateTitle builds the document title for a page.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - " + BrandName
	}
	return BrandName
}
