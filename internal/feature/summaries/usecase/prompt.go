package usecase

import (
	"fmt"
	"strings"

	companyentity "earningsnerd_backend/internal/feature/companies/domain/entity"
	filingentity "earningsnerd_backend/internal/feature/filings/domain/entity"
	financialentity "earningsnerd_backend/internal/feature/financials/domain/entity"
)

// buildPrompt renders the generation prompt from filing metadata and the
// extracted financial snapshot.
func buildPrompt(company *companyentity.Company, filing *filingentity.Filing, snapshot *financialentity.FinancialSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an equity research assistant. Summarize the %s filing of %s (%s) for the period ending %s.\n\n",
		filing.Form, company.Name, company.Ticker, filing.PeriodEnd.Format("2006-01-02"))

	b.WriteString("Reported financials (from XBRL, null means not reported):\n")
	writeMetric(&b, "Revenue", snapshot.Revenue, snapshot.RevenueYoY)
	writeMetric(&b, "Net income", snapshot.NetIncome, snapshot.NetIncomeYoY)
	writeMetric(&b, "Diluted EPS", snapshot.EPSDiluted, nil)
	writeMetric(&b, "Total assets", snapshot.Assets, nil)
	writeMetric(&b, "Total liabilities", snapshot.Liabilities, nil)
	writeMetric(&b, "Stockholders equity", snapshot.Equity, nil)
	writeMetric(&b, "Cash and equivalents", snapshot.Cash, nil)
	writeMetric(&b, "Operating cash flow", snapshot.OperatingCashFlow, nil)

	b.WriteString("\nRespond with a single JSON object and nothing else, using exactly these keys:\n")
	b.WriteString(`{"overview": string, "financial_highlights": [string], "risks": [string], "outlook": string}` + "\n")
	fmt.Fprintf(&b, "The overview must stay under %d characters and the outlook under %d. ", maxOverviewLength, maxOutlookLength)
	fmt.Fprintf(&b, "financial_highlights must have %d to %d items and risks %d to %d, each under %d characters. ",
		minHighlights, maxHighlights, minRisks, maxRisks, maxItemLength)
	b.WriteString("Base every statement on the figures above; do not invent numbers.\n")

	return b.String()
}

// escalatePrompt appends stricter formatting instructions for the retry
// attempt after a contract violation.
func escalatePrompt(prompt, violation string) string {
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\nYour previous answer was rejected: ")
	b.WriteString(violation)
	b.WriteString("\nReturn ONLY the raw JSON object. No markdown fences, no commentary, no extra keys. ")
	b.WriteString("Every section is mandatory and must respect the stated item counts.\n")
	return b.String()
}

// writeMetric renders one metric line, with the YoY delta when available.
func writeMetric(b *strings.Builder, label string, value, delta *float64) {
	if value == nil {
		fmt.Fprintf(b, "- %s: not reported\n", label)
		return
	}
	if delta != nil {
		fmt.Fprintf(b, "- %s: %.0f (%+.1f%% YoY)\n", label, *value, *delta*100)
		return
	}
	fmt.Fprintf(b, "- %s: %.2f\n", label, *value)
}
