package post

import "strings"

// FormatTag normalizes a hashtag to a single leading '#'.
func FormatTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	return "#" + strings.TrimLeft(tag, "#")
}

// FormatTags normalizes a list of hashtags, dropping empties.
func FormatTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if f := FormatTag(t); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// MergeTags appends the joined hashtag block to content exactly once.
// The check is best-effort: only the first formatted tag is probed for
// presence, so a body that already carries the first tag keeps its own
// hashtag block untouched.
func MergeTags(content string, tags []string) string {
	formatted := FormatTags(tags)
	if len(formatted) == 0 {
		return content
	}
	if strings.Contains(content, formatted[0]) {
		return content
	}
	return strings.TrimRight(content, "\n") + "\n\n" + strings.Join(formatted, " ")
}
