package webhook

import "github.com/trendin/postforge/internal/post"

// MockTrends returns the fixed fallback topic list used when the trend
// webhook is unreachable or returns nothing. When a niche is given, each
// title is prefixed with it so the filter still visibly applies.
func MockTrends(niche string) []post.TrendingTopic {
	base := []post.TrendingTopic{
		{
			ID:            "1",
			Title:         "The Future of Remote Work in 2025",
			SourceName:    "Forbes",
			Volume:        "12.5K posts",
			Difficulty:    post.DifficultyMed,
			Link:          "https://www.forbes.com",
			Snippet:       "Remote work is evolving into a hybrid model that prioritizes flexibility and digital collaboration tools.",
			PublishedDate: "Dec 12, 2025",
		},
		{
			ID:            "2",
			Title:         "AI Revolutionizing Healthcare Systems",
			SourceName:    "TechCrunch",
			Volume:        "45K posts",
			Difficulty:    post.DifficultyHigh,
			Link:          "https://techcrunch.com",
			Snippet:       "Artificial intelligence is diagnosing diseases faster and more accurately than ever before.",
			PublishedDate: "Dec 11, 2025",
		},
		{
			ID:            "3",
			Title:         "Sustainable Business Practices Gain Momentum",
			SourceName:    "Bloomberg",
			Volume:        "8.2K posts",
			Difficulty:    post.DifficultyMed,
			Link:          "https://www.bloomberg.com",
			Snippet:       "Companies are increasingly adopting green policies to attract eco-conscious consumers and investors.",
			PublishedDate: "Dec 10, 2025",
		},
		{
			ID:            "4",
			Title:         "Cybersecurity Threats in Modern Enterprises",
			SourceName:    "Wired",
			Volume:        "22K posts",
			Difficulty:    post.DifficultyHigh,
			Link:          "https://www.wired.com",
			Snippet:       "As digital transformation accelerates, so do the sophistication and frequency of cyber attacks.",
			PublishedDate: "Dec 09, 2025",
		},
		{
			ID:            "5",
			Title:         "The Rise of No-Code Development Platforms",
			SourceName:    "VentureBeat",
			Volume:        "15K posts",
			Difficulty:    post.DifficultyLow,
			Link:          "https://venturebeat.com",
			Snippet:       "No-code tools are democratizing software creation, allowing non-engineers to build powerful apps.",
			PublishedDate: "Dec 08, 2025",
		},
	}

	if niche == "" {
		return base
	}
	for i := range base {
		base[i].Title = niche + ": " + base[i].Title
	}
	return base
}
