package domain

import "fmt"

// WeekCount is the fixed number of weekly plans in every playbook.
const WeekCount = 4

// Playbook is a 30-day go-to-market plan generated for one product
// description. Field names mirror the JSON shape the model is instructed
// to produce.
type Playbook struct {
	Positioning       string            `json:"positioning"`
	TargetAudience    TargetAudience    `json:"target_audience"`
	Competitors       []Competitor      `json:"competitors"`
	PricingSuggestion PricingSuggestion `json:"pricing_suggestion"`
	Weeks             []Week            `json:"weeks"`
}

// TargetAudience identifies who the product is for and where to reach them.
type TargetAudience struct {
	Primary  string   `json:"primary"`
	Channels []string `json:"channels"`
}

// Competitor is one competing product with its pricing and the gap the
// user's product can exploit.
type Competitor struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Pricing string `json:"pricing"`
	Gap     string `json:"gap"`
}

// PricingSuggestion recommends a pricing model with concrete tiers.
type PricingSuggestion struct {
	Model     string        `json:"model"`
	Tiers     []PricingTier `json:"tiers"`
	Reasoning string        `json:"reasoning"`
}

// PricingTier is a single priced tier within a pricing suggestion.
type PricingTier struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Features string `json:"features"`
}

// Week groups the daily actions of one week under a theme.
type Week struct {
	Week    int      `json:"week"`
	Theme   string   `json:"theme"`
	Actions []Action `json:"actions"`
}

// Action is a single daily task. Template is nullable: the model emits
// null for actions that have no copy-paste template.
type Action struct {
	Day      int     `json:"day"`
	Action   string  `json:"action"`
	Channel  string  `json:"channel"`
	Template *string `json:"template"`
	Tips     string  `json:"tips"`
}

// HasTemplate reports whether the action carries usable template text.
// An empty string is treated the same as null here; the two remain
// distinguishable on the struct itself for callers that care.
func (a *Action) HasTemplate() bool {
	return a.Template != nil && *a.Template != ""
}

// Validate checks the playbook field by field and returns a FieldError
// naming the first field that is missing or malformed.
func (p *Playbook) Validate() error {
	if p.Positioning == "" {
		return newFieldError("positioning", "must be a non-empty string")
	}
	if p.TargetAudience.Primary == "" {
		return newFieldError("target_audience.primary", "must be a non-empty string")
	}
	if p.TargetAudience.Channels == nil {
		return newFieldError("target_audience.channels", "is required")
	}
	if p.Competitors == nil {
		return newFieldError("competitors", "is required")
	}
	for i, c := range p.Competitors {
		if err := c.validate(fmt.Sprintf("competitors[%d]", i)); err != nil {
			return err
		}
	}
	if err := p.PricingSuggestion.validate("pricing_suggestion"); err != nil {
		return err
	}
	if p.Weeks == nil {
		return newFieldError("weeks", "is required")
	}
	if len(p.Weeks) != WeekCount {
		return newFieldError("weeks", fmt.Sprintf("must contain exactly %d entries, got %d", WeekCount, len(p.Weeks)))
	}
	for i := range p.Weeks {
		if err := p.Weeks[i].validate(fmt.Sprintf("weeks[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Competitor) validate(path string) error {
	if c.Name == "" {
		return newFieldError(path+".name", "must be a non-empty string")
	}
	if c.URL == "" {
		return newFieldError(path+".url", "must be a non-empty string")
	}
	if c.Pricing == "" {
		return newFieldError(path+".pricing", "must be a non-empty string")
	}
	if c.Gap == "" {
		return newFieldError(path+".gap", "must be a non-empty string")
	}
	return nil
}

func (s *PricingSuggestion) validate(path string) error {
	if s.Model == "" {
		return newFieldError(path+".model", "must be a non-empty string")
	}
	if len(s.Tiers) == 0 {
		return newFieldError(path+".tiers", "must contain at least one tier")
	}
	for i, t := range s.Tiers {
		tierPath := fmt.Sprintf("%s.tiers[%d]", path, i)
		if t.Name == "" {
			return newFieldError(tierPath+".name", "must be a non-empty string")
		}
		if t.Price == "" {
			return newFieldError(tierPath+".price", "must be a non-empty string")
		}
		if t.Features == "" {
			return newFieldError(tierPath+".features", "must be a non-empty string")
		}
	}
	if s.Reasoning == "" {
		return newFieldError(path+".reasoning", "must be a non-empty string")
	}
	return nil
}

func (w *Week) validate(path string) error {
	if w.Week < 1 || w.Week > WeekCount {
		return newFieldError(path+".week", fmt.Sprintf("must be between 1 and %d", WeekCount))
	}
	if w.Theme == "" {
		return newFieldError(path+".theme", "must be a non-empty string")
	}
	if len(w.Actions) == 0 {
		return newFieldError(path+".actions", "must contain at least one action")
	}
	for i := range w.Actions {
		if err := w.Actions[i].validate(fmt.Sprintf("%s.actions[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (a *Action) validate(path string) error {
	if a.Day < 1 {
		return newFieldError(path+".day", "must be a positive integer")
	}
	if a.Action == "" {
		return newFieldError(path+".action", "must be a non-empty string")
	}
	if a.Channel == "" {
		return newFieldError(path+".channel", "must be a non-empty string")
	}
	if a.Tips == "" {
		return newFieldError(path+".tips", "must be a non-empty string")
	}
	return nil
}
