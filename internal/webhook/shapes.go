package webhook

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/trendin/postforge/internal/post"
)

// The backend has shipped several incompatible envelope layouts for the
// same logical responses. Each operation therefore carries an ordered list
// of extractors, tried in sequence; the first one that recognizes the
// payload wins. Falling off the end is a ShapeError.

// ShapeError reports a response whose layout matched no known shape.
type ShapeError struct {
	Op  string // "trends", "generate", "refine"
	Raw []byte
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid response format from %s webhook", e.Op)
}

// newID generates an opaque client-side draft/topic ID.
var newID = uuid.NewString

// --- trends ---

type trendItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Snippet       string `json:"snippet"`
	SourceName    string `json:"source_name"`
	Link          string `json:"link"`
	PublishedDate string `json:"published_date"`
	ThumbnailURL  string `json:"thumbnail_url"`
}

func (t trendItem) toTopic() post.TrendingTopic {
	snippet := t.Snippet
	// Placeholder the backend emits for items without a summary.
	if snippet == "No summary available." {
		snippet = ""
	}
	return post.TrendingTopic{
		ID:            t.ID,
		Title:         t.Title,
		Snippet:       snippet,
		SourceName:    t.SourceName,
		Link:          t.Link,
		PublishedDate: t.PublishedDate,
		ThumbnailURL:  t.ThumbnailURL,
	}
}

type trendsExtractor func(raw []byte) ([]post.TrendingTopic, bool)

var trendShapes = []trendsExtractor{
	extractTrendsEnvelope, // { success: true, data: [...] }
	extractTrendsData,     // { data: [...] }
}

func extractTrendsEnvelope(raw []byte) ([]post.TrendingTopic, bool) {
	var env struct {
		Success bool        `json:"success"`
		Data    []trendItem `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || !env.Success || len(env.Data) == 0 {
		return nil, false
	}
	return trendItemsToTopics(env.Data), true
}

func extractTrendsData(raw []byte) ([]post.TrendingTopic, bool) {
	var env struct {
		Data []trendItem `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Data) == 0 {
		return nil, false
	}
	return trendItemsToTopics(env.Data), true
}

func trendItemsToTopics(items []trendItem) []post.TrendingTopic {
	topics := make([]post.TrendingTopic, 0, len(items))
	for _, it := range items {
		topics = append(topics, it.toTopic())
	}
	return topics
}

func parseTrends(raw []byte) ([]post.TrendingTopic, error) {
	for _, extract := range trendShapes {
		if topics, ok := extract(raw); ok {
			return topics, nil
		}
	}
	return nil, &ShapeError{Op: "trends", Raw: raw}
}

// --- generate ---

type draftItem struct {
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Hook     string   `json:"hook"`
	Body     string   `json:"body"`
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

func (d draftItem) valid() bool {
	return d.Type != "" || d.Title != "" || d.Hook != "" || d.Body != "" || d.Content != ""
}

func (d draftItem) toDraft() post.Draft {
	title := d.Type
	if title == "" {
		title = d.Title
	}
	content := d.Content
	if d.Hook != "" || d.Body != "" {
		content = strings.TrimSpace(d.Hook) + "\n\n" + strings.TrimSpace(d.Body)
	}
	tags := d.Hashtags
	if tags == nil {
		tags = []string{}
	}
	return post.Draft{
		ID:       newID(),
		Title:    title,
		Content:  content,
		Hashtags: tags,
	}
}

type analysisItem struct {
	Consensus string `json:"consensus"`
	Gap       string `json:"gap"`
}

func (a *analysisItem) toAnalysis() *post.Analysis {
	if a == nil || (a.Consensus == "" && a.Gap == "") {
		return nil
	}
	return &post.Analysis{Consensus: a.Consensus, Gap: a.Gap}
}

type generateExtractor func(raw []byte) (*GenerateResult, bool)

var generateShapes = []generateExtractor{
	extractOutputPosts,       // { output: { posts: [...], analysis: {...} } }
	extractBarePosts,         // { posts: [...], analysis: {...} }
	extractPayloadPostDrafts, // { payload: { output: { post_drafts: [...] } } }
	extractOutputArray,       // { output: [...] }
	extractBareArray,         // [...]
}

func extractOutputPosts(raw []byte) (*GenerateResult, bool) {
	var env struct {
		Output struct {
			Posts    []draftItem   `json:"posts"`
			Analysis *analysisItem `json:"analysis"`
		} `json:"output"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Output.Posts) == 0 {
		return nil, false
	}
	return draftItemsToResult(env.Output.Posts, env.Output.Analysis), true
}

func extractBarePosts(raw []byte) (*GenerateResult, bool) {
	var env struct {
		Posts    []draftItem   `json:"posts"`
		Analysis *analysisItem `json:"analysis"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Posts) == 0 {
		return nil, false
	}
	return draftItemsToResult(env.Posts, env.Analysis), true
}

func extractPayloadPostDrafts(raw []byte) (*GenerateResult, bool) {
	var env struct {
		Payload struct {
			Output struct {
				PostDrafts []draftItem   `json:"post_drafts"`
				Analysis   *analysisItem `json:"analysis"`
			} `json:"output"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Payload.Output.PostDrafts) == 0 {
		return nil, false
	}
	return draftItemsToResult(env.Payload.Output.PostDrafts, env.Payload.Output.Analysis), true
}

func extractOutputArray(raw []byte) (*GenerateResult, bool) {
	var env struct {
		Output []draftItem `json:"output"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Output) == 0 {
		return nil, false
	}
	return draftItemsToResult(env.Output, nil), true
}

func extractBareArray(raw []byte) (*GenerateResult, bool) {
	var items []draftItem
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, false
	}
	return draftItemsToResult(items, nil), true
}

func draftItemsToResult(items []draftItem, analysis *analysisItem) *GenerateResult {
	drafts := make([]post.Draft, 0, len(items))
	for _, it := range items {
		if !it.valid() {
			continue
		}
		drafts = append(drafts, it.toDraft())
	}
	return &GenerateResult{Drafts: drafts, Analysis: analysis.toAnalysis()}
}

func parseGenerate(raw []byte) (*GenerateResult, error) {
	for _, extract := range generateShapes {
		if result, ok := extract(raw); ok && len(result.Drafts) > 0 {
			return result, nil
		}
	}
	return nil, &ShapeError{Op: "generate", Raw: raw}
}

// --- refine ---

type refineOutput struct {
	Content        string `json:"content"`
	SummaryMessage string `json:"summary_message"`
}

type refineEnvelope struct {
	FinalPost struct {
		Output *refineOutput `json:"output"`
	} `json:"final_post"`
	Output *refineOutput `json:"output"`
}

type refineExtractor func(raw []byte) (*RefineResult, bool)

var refineShapes = []refineExtractor{
	extractRefineArray,  // [ { final_post: { output: {...} } } ]
	extractRefineObject, // { final_post: { output: {...} } } or { output: {...} }
}

func extractRefineArray(raw []byte) (*RefineResult, bool) {
	var envs []refineEnvelope
	if err := json.Unmarshal(raw, &envs); err != nil || len(envs) == 0 {
		return nil, false
	}
	return refineEnvelopeToResult(envs[0])
}

func extractRefineObject(raw []byte) (*RefineResult, bool) {
	var env refineEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	return refineEnvelopeToResult(env)
}

func refineEnvelopeToResult(env refineEnvelope) (*RefineResult, bool) {
	out := env.FinalPost.Output
	if out == nil {
		out = env.Output
	}
	if out == nil || out.Content == "" {
		return nil, false
	}
	return &RefineResult{Content: out.Content, SummaryMessage: out.SummaryMessage}, true
}

func parseRefine(raw []byte) (*RefineResult, error) {
	for _, extract := range refineShapes {
		if result, ok := extract(raw); ok {
			return result, nil
		}
	}
	return nil, &ShapeError{Op: "refine", Raw: raw}
}
