package search

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	PeopleSearchURL = "https://www.linkedin.com/search/results/people/"
)

// ProfilesURL builds the people search URL for keywords. Spaces are encoded
// as %20 rather than '+'.
func ProfilesURL(keywords string) string {
	return PeopleSearchURL + "?keywords=" + escape(keywords)
}

// PageURL builds the URL of one page of people search results
func PageURL(keywords string, page int) string {
	return ProfilesURL(keywords) + "&page=" + strconv.Itoa(page)
}

func escape(s string) string {
	// QueryEscape turns a literal '+' into %2B, so any '+' left is a space
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
