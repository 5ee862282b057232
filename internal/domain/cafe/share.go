package cafe

import (
	"fmt"
	"net/url"
	"strings"
)

// Share is the link-preview and social-share data of a cafe page.
type Share struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	Text        string `json:"text"`
	TwitterURL  string `json:"twitter_url"`
	FacebookURL string `json:"facebook_url"`
}

// NewShare builds the share data for a cafe page at pageURL. Relative image
// URLs are made absolute against siteURL.
func NewShare(name, imageURL, siteURL, pageURL string) Share {
	text := fmt.Sprintf("Check out %s on our cafe review platform!", name)

	return Share{
		Title:       fmt.Sprintf("%s - RateMyCafe", name),
		Description: fmt.Sprintf("Discover reviews and ratings for %s on RateMyCafe.", name),
		Image:       AbsoluteURL(siteURL, imageURL),
		URL:         pageURL,
		Text:        text,
		TwitterURL: "https://twitter.com/intent/tweet?text=" + url.QueryEscape(text) +
			"&url=" + url.QueryEscape(pageURL),
		FacebookURL: "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(pageURL),
	}
}

func AbsoluteURL(siteURL, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(siteURL, "/") + "/" + strings.TrimLeft(ref, "/")
}

// MapsURL links to the cafe on Google Maps, empty without coordinates.
func MapsURL(lat, lng *float64) string {
	if lat == nil || lng == nil {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%g,%g", *lat, *lng)
}
