package generation

import (
	"fmt"
	"strings"
)

// PlaybookContext is the immutable input to prompt assembly.
type PlaybookContext struct {
	ProductDescription string
	ProductType        string
	TargetAudience     string
}

// PromptSection is one named section of the system prompt. Exactly one of
// Content and Build is set: static sections carry Content, dynamic ones a
// Build function that may return "" to omit the section entirely.
type PromptSection struct {
	Name    string
	Content string
	Build   func(PlaybookContext) string
}

// PromptAssembler concatenates the non-empty contents of its sections in
// declaration order, joined by a fixed separator. Build is a pure function
// of the context: no hidden state, no I/O.
type PromptAssembler struct {
	sections  []PromptSection
	separator string
}

// NewPromptAssembler creates an assembler over the given sections.
func NewPromptAssembler(sections []PromptSection, separator string) *PromptAssembler {
	return &PromptAssembler{sections: sections, separator: separator}
}

// Build renders the system prompt for the given context.
func (a *PromptAssembler) Build(ctx PlaybookContext) string {
	parts := make([]string, 0, len(a.sections))
	for _, s := range a.sections {
		content := s.Content
		if s.Build != nil {
			content = s.Build(ctx)
		}
		if content == "" {
			continue
		}
		parts = append(parts, content)
	}
	return strings.Join(parts, a.separator)
}

// PlaybookPrompt returns the assembler for GTM playbook generation. The
// context section is the only dynamic one; it is omitted when neither
// optional hint is present.
func PlaybookPrompt() *PromptAssembler {
	return NewPromptAssembler([]PromptSection{
		{
			Name: "identity",
			Content: strings.Join([]string{
				"You are GTM Copilot — an expert go-to-market strategist specializing in helping solo founders and indie hackers launch products.",
				"You have deep knowledge of: Product Hunt launches, HackerNews Show HN posts, Reddit community marketing, Twitter/X build-in-public, cold email outreach, SEO content strategy, and pricing psychology.",
				"Your advice is always specific, actionable, and realistic for a one-person team with $0 marketing budget.",
			}, "\n"),
		},
		{
			Name: "task",
			Content: strings.Join([]string{
				"Generate a personalized 30-day GTM (Go-to-Market) playbook based on the user's product description.",
				"",
				"The playbook MUST include:",
				"1. A one-line positioning statement",
				"2. Identified target audience (be specific: subreddits, HN tags, Twitter communities)",
				"3. 4 weekly plans (Week 1-4), each with 5-7 daily actions",
				"4. For each action: what to do, which channel, and a ready-to-use template",
				"5. 3-5 competitor mentions with pricing (if known)",
				"6. Recommended pricing strategy",
			}, "\n"),
		},
		{
			Name: "templates",
			Content: strings.Join([]string{
				"For each relevant channel, include a COMPLETE template the founder can copy-paste:",
				"",
				"- Show HN post (title + body)",
				"- Reddit post (title + body, tailored to specific subreddit rules)",
				"- Cold email (subject + body)",
				"- Twitter/X launch thread (5-7 tweets)",
				"- Product Hunt tagline + description",
				"",
				"Templates must be specific to the product, not generic. Use the product name and actual features.",
			}, "\n"),
		},
		{
			Name: "format",
			Content: strings.Join([]string{
				"Respond ONLY with valid JSON matching this structure:",
				"",
				"{",
				`  "positioning": "one-line positioning statement",`,
				`  "target_audience": {`,
				`    "primary": "description",`,
				`    "channels": ["subreddit or community name", ...]`,
				"  },",
				`  "competitors": [`,
				`    { "name": "...", "url": "...", "pricing": "...", "gap": "..." }`,
				"  ],",
				`  "pricing_suggestion": {`,
				`    "model": "freemium|subscription|one-time|usage-based",`,
				`    "tiers": [{ "name": "...", "price": "...", "features": "..." }],`,
				`    "reasoning": "..."`,
				"  },",
				`  "weeks": [`,
				"    {",
				`      "week": 1,`,
				`      "theme": "...",`,
				`      "actions": [`,
				"        {",
				`          "day": 1,`,
				`          "action": "...",`,
				`          "channel": "...",`,
				`          "template": "full copy-paste ready text or null",`,
				`          "tips": "..."`,
				"        }",
				"      ]",
				"    }",
				"  ]",
				"}",
				"",
				`Ensure ALL templates are filled in — never use placeholder text like "[your product]". Use the actual product name and features.`,
			}, "\n"),
		},
		{
			Name: "context",
			Build: func(ctx PlaybookContext) string {
				var parts []string
				if ctx.ProductType != "" {
					parts = append(parts, fmt.Sprintf("Product type: %s", ctx.ProductType))
				}
				if ctx.TargetAudience != "" {
					parts = append(parts, fmt.Sprintf("Target audience hint: %s", ctx.TargetAudience))
				}
				if len(parts) == 0 {
					return ""
				}
				return "Additional context:\n" + strings.Join(parts, "\n")
			},
		},
	}, "\n\n")
}
