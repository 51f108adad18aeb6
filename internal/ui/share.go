package ui

import "net/url"

const linkedInShareBase = "https://www.linkedin.com/feed/?shareActive=true"

// ShareURL builds the LinkedIn share link that opens the compose box
// pre-filled with the post text.
func ShareURL(content string) string {
	u, _ := url.Parse(linkedInShareBase)
	q := u.Query()
	q.Set("text", content)
	u.RawQuery = q.Encode()
	return u.String()
}
