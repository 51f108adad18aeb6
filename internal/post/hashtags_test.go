package post

import (
	"strings"
	"testing"
)

func TestFormatTag(t *testing.T) {
	if got := FormatTag("Leadership"); got != "#Leadership" {
		t.Errorf("FormatTag should add '#', got %q", got)
	}

	if got := FormatTag("#AI"); got != "#AI" {
		t.Errorf("FormatTag should not double the '#', got %q", got)
	}

	if got := FormatTag("##Growth"); got != "#Growth" {
		t.Errorf("FormatTag should collapse repeated '#', got %q", got)
	}

	if got := FormatTag("  "); got != "" {
		t.Errorf("FormatTag of whitespace should be empty, got %q", got)
	}
}

func TestMergeTagsAppendsOnce(t *testing.T) {
	content := "Remote work is here to stay."
	merged := MergeTags(content, []string{"RemoteWork", "#Future"})

	if !strings.Contains(merged, "#RemoteWork #Future") {
		t.Errorf("merged content should contain the joined tag block, got %q", merged)
	}

	// Merging again must be a no-op: the first tag is now present.
	again := MergeTags(merged, []string{"RemoteWork", "#Future"})
	if again != merged {
		t.Errorf("second merge should not duplicate tags:\nfirst:  %q\nsecond: %q", merged, again)
	}
}

func TestMergeTagsFirstTagAlreadyInBody(t *testing.T) {
	content := "Thoughts on #AI and where it goes next."
	merged := MergeTags(content, []string{"AI", "Future"})

	if merged != content {
		t.Errorf("content already carrying the first tag should be untouched, got %q", merged)
	}
}

func TestMergeTagsEmpty(t *testing.T) {
	content := "No tags here."
	if got := MergeTags(content, nil); got != content {
		t.Errorf("nil tags should leave content unchanged, got %q", got)
	}
	if got := MergeTags(content, []string{"", "  "}); got != content {
		t.Errorf("blank tags should leave content unchanged, got %q", got)
	}
}
