package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Bounds of the summary contract. The model must return a JSON object with
// all four sections populated and each section inside its own limits.
const (
	maxOverviewLength = 1200
	minHighlights     = 2
	maxHighlights     = 5
	minRisks          = 1
	maxRisks          = 8
	maxItemLength     = 500
	maxOutlookLength  = 3000
)

// Payload is the structured summary the model must produce.
type Payload struct {
	Overview            string   `json:"overview"`
	FinancialHighlights []string `json:"financial_highlights"`
	Risks               []string `json:"risks"`
	Outlook             string   `json:"outlook"`
}

// ParsePayload decodes raw model output and validates it against the
// contract. Models sometimes wrap JSON in a markdown fence despite
// instructions, so fences are stripped before decoding.
func ParsePayload(raw string) (*Payload, error) {
	raw = stripFence(raw)

	var p Payload
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode summary payload: %w", err)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// validate enforces the section requirements of the contract.
func (p *Payload) validate() error {
	if err := prose("overview", p.Overview, maxOverviewLength); err != nil {
		return err
	}
	if err := list("financial_highlights", p.FinancialHighlights, minHighlights, maxHighlights); err != nil {
		return err
	}
	if err := list("risks", p.Risks, minRisks, maxRisks); err != nil {
		return err
	}
	if err := prose("outlook", p.Outlook, maxOutlookLength); err != nil {
		return err
	}
	return nil
}

func prose(section, text string, max int) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("section %q is empty", section)
	}
	if utf8.RuneCountInString(text) > max {
		return fmt.Errorf("section %q exceeds %d characters", section, max)
	}
	return nil
}

func list(section string, items []string, min, max int) error {
	if len(items) < min || len(items) > max {
		return fmt.Errorf("section %q must have %d-%d items, got %d", section, min, max, len(items))
	}
	for i, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			return fmt.Errorf("section %q item %d is empty", section, i)
		}
		if utf8.RuneCountInString(item) > maxItemLength {
			return fmt.Errorf("section %q item %d exceeds %d characters", section, i, maxItemLength)
		}
	}
	return nil
}

// stripFence removes a surrounding ```json ... ``` markdown fence.
func stripFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
