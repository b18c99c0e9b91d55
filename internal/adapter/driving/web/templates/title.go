// Package templates holds the site layout. Page bodies live in pages and the
// shared pieces they are built from in components.
package templates

import "strings"

// ComposePageTitle returns "<page> | <site>", or just the site name when the
// page has no title of its own.
func ComposePageTitle(page, site string) string {
	page = strings.TrimSpace(page)
	if page == "" || page == site {
		return site
	}
	if strings.HasSuffix(page, " | "+site) {
		return page
	}
	return page + " | " + site
}
