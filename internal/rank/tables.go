package rank

// GeneralCategory is the label for items that match no keyword dictionary.
const GeneralCategory = "general"

// CategoryKeywords binds a category label to its match vocabulary. The
// order of dictionaries inside Tables.Categories is the declared priority
// order: when raw match counts tie, the first-declared category wins.
type CategoryKeywords struct {
	Category string
	Keywords []string
}

// SourceWeight assigns an authority weight to sources whose id contains
// Match (case-insensitive). First match in table order wins.
type SourceWeight struct {
	Match  string
	Weight float64
}

// Tables is the static scoring configuration injected into a Scorer.
// Values are treated as immutable after construction.
type Tables struct {
	Categories     []CategoryKeywords
	SourceWeights  []SourceWeight
	DefaultWeight  float64
	AttentionWords []string
}

// DefaultTables returns the stock scoring configuration: four topical
// keyword dictionaries, a source authority table, and the attention
// vocabulary used by the popularity score.
func DefaultTables() Tables {
	return Tables{
		Categories: []CategoryKeywords{
			{Category: "ai", Keywords: []string{
				"AI", "artificial intelligence", "ChatGPT", "GPT", "Claude",
				"Gemini", "machine learning", "deep learning", "LLM",
				"large language model", "OpenAI", "Anthropic", "AGI",
				"transformer", "neural network", "autonomous driving",
				"robotics",
			}},
			{Category: "tech", Keywords: []string{
				"technology", "internet", "blockchain", "cloud computing",
				"5G", "6G", "IoT", "augmented reality", "virtual reality",
				"quantum computing", "chip", "semiconductor", "CPU", "GPU",
				"algorithm", "API", "open source", "GitHub", "software",
			}},
			{Category: "business", Keywords: []string{
				"startup", "investment", "funding", "IPO", "acquisition",
				"merger", "valuation", "venture capital", "unicorn",
				"market", "revenue", "profit", "stock", "earnings",
				"e-commerce", "retail",
			}},
			{Category: "product", Keywords: []string{
				"product manager", "UX", "UI", "design", "user experience",
				"product design", "requirements", "data analysis", "growth",
				"operations", "KPI", "OKR", "MVP", "agile", "scrum",
				"roadmap",
			}},
		},
		SourceWeights: []SourceWeight{
			{Match: "techcrunch", Weight: 1.0},
			{Match: "wired", Weight: 1.0},
			{Match: "theverge", Weight: 1.0},
			{Match: "hacker", Weight: 0.9},
			{Match: "arstechnica", Weight: 0.9},
			{Match: "36kr", Weight: 0.9},
			{Match: "geekpark", Weight: 0.8},
			{Match: "ifanr", Weight: 0.8},
			{Match: "engadget", Weight: 0.8},
			{Match: "bestblogs", Weight: 0.7},
		},
		DefaultWeight: 0.6,
		AttentionWords: []string{
			"breaking", "exclusive", "first-ever", "first ever", "major",
			"unveil", "launch", "milestone", "record-breaking",
			"breakthrough", "revolutionary", "disrupt",
		},
	}
}

// CategoryNames returns the declared category labels in priority order,
// without the implicit general bucket.
func (t Tables) CategoryNames() []string {
	names := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		names = append(names, c.Category)
	}
	return names
}
