package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Assistant is the optional AI capability consumed by the enrichment
// stage. Implementations are called sequentially; every method may fail
// and callers are expected to degrade, not abort.
type Assistant interface {
	// Enabled reports whether the capability is configured and usable.
	Enabled() bool
	// Summarize returns a summary of text no longer than maxLen runes.
	Summarize(ctx context.Context, text string, maxLen int) (string, error)
	// Classify returns one of the known category labels for text, or an
	// empty string when no label could be determined.
	Classify(ctx context.Context, text string) (string, error)
	// TitleFor returns a display title for a trending list.
	TitleFor(ctx context.Context, category string, count int) (string, error)
}

// Config carries the OpenAI connection settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

// OpenAIClient implements Assistant using the Chat Completions API.
type OpenAIClient struct {
	client     *openai.Client
	model      string
	categories []string // valid classification labels
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// NewOpenAI builds a client. The categories are the labels Classify may
// return; an unrecognized answer from the model is coerced to the last
// entry, so callers pass the general bucket last.
func NewOpenAI(cfg Config, categories []string) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		panic("OpenAI model must be specified")
	}
	return &OpenAIClient{client: c, model: model, categories: categories}
}

func (o *OpenAIClient) Enabled() bool {
	return o != nil && o.client != nil
}

// Summarize condenses the text to at most maxLen runes. Text short enough
// already is returned as-is without an API call.
func (o *OpenAIClient) Summarize(ctx context.Context, text string, maxLen int) (string, error) {
	// set timeout to 120s for item-level summary
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	clean := cleanText(text)
	if clean == "" {
		return "", nil
	}
	if len([]rune(clean)) <= maxLen {
		return clean, nil
	}
	if len([]rune(clean)) > 2000 {
		clean = string([]rune(clean)[:2000])
	}

	sys := fmt.Sprintf(`
		Write a concise, accurate summary of the text in at most %d characters.
		Capture the core information and key points.
		Keep the language plain and quick to read, neutral in tone.
		Output the summary only, no preamble.
		`, maxLen)
	out, err := o.create(ctx, sys, clean)
	if err != nil {
		return "", err
	}
	return truncateRunes(strings.TrimSpace(out), maxLen), nil
}

// Classify asks the model for the best-fitting category label.
func (o *OpenAIClient) Classify(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	clean := cleanText(text)
	if len([]rune(clean)) > 500 {
		clean = string([]rune(clean)[:500])
	}

	sys := fmt.Sprintf(`
		Pick the single best category for the content from this list: %s.
		Answer with the category name only, no explanation.
		`, strings.Join(o.categories, ", "))
	out, err := o.create(ctx, sys, clean)
	if err != nil {
		return "", err
	}
	got := strings.ToLower(strings.TrimSpace(out))
	for _, c := range o.categories {
		if got == strings.ToLower(c) {
			return c, nil
		}
	}
	if len(o.categories) > 0 {
		return o.categories[len(o.categories)-1], nil
	}
	return "", nil
}

// TitleFor produces a short display title for a trending list.
func (o *OpenAIClient) TitleFor(ctx context.Context, category string, count int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	sys := `
		Create a catchy title for a trending-content list.
		At most 8 words, timely and energetic, plain text only.
		Output the title only.
		`
	user := fmt.Sprintf("The list holds the top %d trending items in the %q category.", count, category)
	out, err := o.create(ctx, sys, user)
	if err != nil {
		return "", err
	}
	return truncateRunes(strings.TrimSpace(out), 60), nil
}

func (o *OpenAIClient) create(ctx context.Context, system, user string) (string, error) {
	// Default timeout guard, if caller didn't set one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 300*time.Second)
		defer cancel()
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func cleanText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
