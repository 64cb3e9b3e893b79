package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPayloadJSON() string {
	return `{
		"overview": "Revenue grew on strong cloud demand.",
		"financial_highlights": ["Revenue up 12% year over year", "Operating margin expanded to 30%"],
		"risks": ["Customer concentration", "Currency headwinds"],
		"outlook": "Management guided to continued double-digit growth."
	}`
}

func TestParsePayload(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		p, err := ParsePayload(validPayloadJSON())
		assert.NoError(t, err)
		assert.Equal(t, 2, len(p.FinancialHighlights))
		assert.Equal(t, 2, len(p.Risks))
	})

	t.Run("markdown fence is stripped", func(t *testing.T) {
		fenced := "```json\n" + validPayloadJSON() + "\n```"
		p, err := ParsePayload(fenced)
		assert.NoError(t, err)
		assert.NotEmpty(t, p.Overview)
	})

	t.Run("bare fence is stripped", func(t *testing.T) {
		fenced := "```\n" + validPayloadJSON() + "\n```"
		_, err := ParsePayload(fenced)
		assert.NoError(t, err)
	})

	t.Run("not JSON", func(t *testing.T) {
		_, err := ParsePayload("Here is your summary: revenue went up.")
		assert.Error(t, err)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		raw := strings.Replace(validPayloadJSON(), `"overview"`, `"extra": 1, "overview"`, 1)
		_, err := ParsePayload(raw)
		assert.Error(t, err)
	})

	t.Run("empty overview", func(t *testing.T) {
		raw := strings.Replace(validPayloadJSON(), "Revenue grew on strong cloud demand.", "  ", 1)
		_, err := ParsePayload(raw)
		assert.ErrorContains(t, err, "overview")
	})

	t.Run("single risk is accepted", func(t *testing.T) {
		raw := strings.Replace(validPayloadJSON(),
			`["Customer concentration", "Currency headwinds"]`,
			`["Customer concentration"]`, 1)
		p, err := ParsePayload(raw)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(p.Risks))
	})

	t.Run("too many highlights", func(t *testing.T) {
		items := `["` + strings.Repeat(`h", "`, 5) + `h"]` // 6 items
		raw := strings.Replace(validPayloadJSON(),
			`["Revenue up 12% year over year", "Operating margin expanded to 30%"]`, items, 1)
		_, err := ParsePayload(raw)
		assert.ErrorContains(t, err, "financial_highlights")
	})

	t.Run("overlong overview", func(t *testing.T) {
		raw := strings.Replace(validPayloadJSON(),
			"Revenue grew on strong cloud demand.", strings.Repeat("o", 2000), 1)
		_, err := ParsePayload(raw)
		assert.ErrorContains(t, err, "overview")
	})

	t.Run("too few highlights", func(t *testing.T) {
		raw := strings.Replace(validPayloadJSON(),
			`["Revenue up 12% year over year", "Operating margin expanded to 30%"]`,
			`["Only one"]`, 1)
		_, err := ParsePayload(raw)
		assert.ErrorContains(t, err, "financial_highlights")
	})

	t.Run("too many risks", func(t *testing.T) {
		items := `["` + strings.Repeat(`r", "`, 8) + `r"]` // 9 items
		raw := strings.Replace(validPayloadJSON(),
			`["Customer concentration", "Currency headwinds"]`, items, 1)
		_, err := ParsePayload(raw)
		assert.ErrorContains(t, err, "risks")
	})

	t.Run("blank list item", func(t *testing.T) {
		raw := strings.Replace(validPayloadJSON(), `"Customer concentration"`, `"   "`, 1)
		_, err := ParsePayload(raw)
		assert.ErrorContains(t, err, "item")
	})

	t.Run("overlong item", func(t *testing.T) {
		raw := strings.Replace(validPayloadJSON(), "Customer concentration", strings.Repeat("x", 501), 1)
		_, err := ParsePayload(raw)
		assert.ErrorContains(t, err, "exceeds")
	})

	t.Run("overlong outlook", func(t *testing.T) {
		raw := strings.Replace(validPayloadJSON(),
			"Management guided to continued double-digit growth.", strings.Repeat("y", 3001), 1)
		_, err := ParsePayload(raw)
		assert.ErrorContains(t, err, "outlook")
	})
}
