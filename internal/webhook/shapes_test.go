package webhook

import (
	"errors"
	"testing"
)

func TestParseGenerateOutputPosts(t *testing.T) {
	raw := []byte(`{
		"output": {
			"posts": [
				{"type": "Thought Leadership", "hook": "Everyone is wrong about AI.", "body": "Here is why.", "hashtags": ["AI", "Leadership"]},
				{"type": "Story", "hook": "Last year I quit.", "body": "Best decision ever.", "hashtags": []}
			],
			"analysis": {"consensus": "AI is overhyped", "gap": "Nobody covers costs"}
		}
	}`)

	result, err := parseGenerate(raw)
	if err != nil {
		t.Fatalf("parseGenerate failed: %v", err)
	}
	if len(result.Drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(result.Drafts))
	}

	d := result.Drafts[0]
	if d.ID == "" {
		t.Error("draft ID should be generated")
	}
	if d.Title != "Thought Leadership" {
		t.Errorf("title should come from the type field, got %q", d.Title)
	}
	if d.Content != "Everyone is wrong about AI.\n\nHere is why." {
		t.Errorf("content should join hook and body, got %q", d.Content)
	}
	if len(d.Hashtags) != 2 {
		t.Errorf("expected 2 hashtags, got %v", d.Hashtags)
	}

	if result.Analysis == nil || result.Analysis.Consensus != "AI is overhyped" {
		t.Errorf("analysis not extracted: %+v", result.Analysis)
	}
}

func TestParseGenerateBarePosts(t *testing.T) {
	raw := []byte(`{"posts": [{"title": "Hot Take", "content": "Full text here.", "hashtags": ["Growth"]}]}`)

	result, err := parseGenerate(raw)
	if err != nil {
		t.Fatalf("parseGenerate failed: %v", err)
	}
	if len(result.Drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(result.Drafts))
	}
	if result.Drafts[0].Title != "Hot Take" {
		t.Errorf("title fallback to title field failed, got %q", result.Drafts[0].Title)
	}
	if result.Drafts[0].Content != "Full text here." {
		t.Errorf("raw content should be used when hook/body absent, got %q", result.Drafts[0].Content)
	}
	if result.Analysis != nil {
		t.Error("no analysis expected")
	}
}

func TestParseGeneratePayloadPostDrafts(t *testing.T) {
	raw := []byte(`{"payload": {"output": {"post_drafts": [{"type": "Listicle", "content": "1. First thing"}]}}}`)

	result, err := parseGenerate(raw)
	if err != nil {
		t.Fatalf("parseGenerate failed: %v", err)
	}
	if len(result.Drafts) != 1 || result.Drafts[0].Title != "Listicle" {
		t.Errorf("payload.output.post_drafts shape not handled: %+v", result.Drafts)
	}
}

func TestParseGenerateBareArray(t *testing.T) {
	raw := []byte(`[{"title": "A", "content": "a"}, {"title": "B", "content": "b"}]`)

	result, err := parseGenerate(raw)
	if err != nil {
		t.Fatalf("parseGenerate failed: %v", err)
	}
	if len(result.Drafts) != 2 {
		t.Errorf("bare array shape not handled, got %d drafts", len(result.Drafts))
	}
}

func TestParseGenerateOutputArray(t *testing.T) {
	raw := []byte(`{"output": [{"title": "A", "content": "a"}]}`)

	result, err := parseGenerate(raw)
	if err != nil {
		t.Fatalf("parseGenerate failed: %v", err)
	}
	if len(result.Drafts) != 1 {
		t.Errorf("output array shape not handled, got %d drafts", len(result.Drafts))
	}
}

func TestParseGenerateSkipsEmptyItems(t *testing.T) {
	raw := []byte(`{"posts": [{"type": "Real", "content": "x"}, {}]}`)

	result, err := parseGenerate(raw)
	if err != nil {
		t.Fatalf("parseGenerate failed: %v", err)
	}
	if len(result.Drafts) != 1 {
		t.Errorf("empty items should be skipped, got %d drafts", len(result.Drafts))
	}
}

func TestParseGenerateNilHashtagsBecomeEmpty(t *testing.T) {
	raw := []byte(`{"posts": [{"type": "Real", "content": "x"}]}`)

	result, err := parseGenerate(raw)
	if err != nil {
		t.Fatal(err)
	}
	if result.Drafts[0].Hashtags == nil {
		t.Error("missing hashtags should normalize to an empty slice")
	}
}

func TestParseGenerateUnrecognized(t *testing.T) {
	for _, raw := range []string{`{}`, `{"output": {}}`, `{"posts": []}`, `"nonsense"`, `42`} {
		_, err := parseGenerate([]byte(raw))
		if err == nil {
			t.Errorf("payload %s should not parse", raw)
			continue
		}
		var se *ShapeError
		if !errors.As(err, &se) {
			t.Errorf("payload %s: expected *ShapeError, got %T", raw, err)
		}
	}
}

func TestParseRefineArrayWrapped(t *testing.T) {
	raw := []byte(`[{"ok": true, "final_post": {"output": {"content": "Revised.", "summary_message": "Tightened the hook."}}}]`)

	result, err := parseRefine(raw)
	if err != nil {
		t.Fatalf("parseRefine failed: %v", err)
	}
	if result.Content != "Revised." {
		t.Errorf("content = %q", result.Content)
	}
	if result.SummaryMessage != "Tightened the hook." {
		t.Errorf("summary = %q", result.SummaryMessage)
	}
}

func TestParseRefineBareObject(t *testing.T) {
	raw := []byte(`{"final_post": {"output": {"content": "Revised."}}}`)

	result, err := parseRefine(raw)
	if err != nil {
		t.Fatalf("parseRefine failed: %v", err)
	}
	if result.Content != "Revised." || result.SummaryMessage != "" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestParseRefineBareOutput(t *testing.T) {
	raw := []byte(`{"output": {"content": "Revised."}}`)

	result, err := parseRefine(raw)
	if err != nil {
		t.Fatalf("parseRefine failed: %v", err)
	}
	if result.Content != "Revised." {
		t.Errorf("content = %q", result.Content)
	}
}

func TestParseRefineUnrecognized(t *testing.T) {
	_, err := parseRefine([]byte(`{"final_post": {}}`))
	if err == nil {
		t.Fatal("expected error for missing output")
	}
	var se *ShapeError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ShapeError, got %T", err)
	}
	if se.Error() != "invalid response format from refine webhook" {
		t.Errorf("unexpected message: %q", se.Error())
	}
}

func TestParseTrendsEnvelope(t *testing.T) {
	raw := []byte(`{"success": true, "data": [{"id": "t1", "title": "Topic", "snippet": "No summary available."}]}`)

	topics, err := parseTrends(raw)
	if err != nil {
		t.Fatalf("parseTrends failed: %v", err)
	}
	if len(topics) != 1 || topics[0].ID != "t1" {
		t.Fatalf("unexpected topics: %+v", topics)
	}
	if topics[0].Snippet != "" {
		t.Errorf("placeholder snippet should be dropped, got %q", topics[0].Snippet)
	}
}

func TestParseTrendsDataOnly(t *testing.T) {
	raw := []byte(`{"data": [{"title": "Topic", "snippet": "Real summary"}]}`)

	topics, err := parseTrends(raw)
	if err != nil {
		t.Fatalf("parseTrends failed: %v", err)
	}
	if topics[0].Snippet != "Real summary" {
		t.Errorf("snippet = %q", topics[0].Snippet)
	}
}

func TestParseTrendsUnrecognized(t *testing.T) {
	if _, err := parseTrends([]byte(`{"success": false, "data": []}`)); err == nil {
		t.Error("empty data should not parse")
	}
}
