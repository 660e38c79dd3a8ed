package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/classification"
	"github.com/Veraticus/the-budget-must-flow/internal/engine"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// FormatClassification renders a single classifier decision.
func FormatClassification(description string, amount float64, result classification.Result) string {
	lines := []string{
		fmt.Sprintf("%s %s", BoldStyle.Render("Description:"), description),
		fmt.Sprintf("%s %.2f", BoldStyle.Render("Amount:"), amount),
		fmt.Sprintf("%s %s", BoldStyle.Render("Category:"), SuccessStyle.Render(result.Category)),
		fmt.Sprintf("%s %.2f", BoldStyle.Render("Confidence:"), result.Confidence),
		fmt.Sprintf("%s %s", BoldStyle.Render("Matched by:"), result.Source),
	}
	if result.Rule != "" {
		lines = append(lines, fmt.Sprintf("%s %q", BoldStyle.Render("Rule:"), result.Rule))
	}
	return RenderBox("Classification", strings.Join(lines, "\n"))
}

// FormatSplit renders categorized transactions grouped by reliability.
func FormatSplit(split engine.Split, threshold float64) string {
	summary := engine.Summarize(split)
	sections := []string{
		FormatTitle("Categorization"),
		SubtitleStyle.Render(fmt.Sprintf("%d transactions, %d reliable, %d need review (threshold %.2f)",
			summary.Total, summary.Reliable, summary.Uncertain, threshold)),
	}

	if len(split.Reliable) > 0 {
		sections = append(sections, "", SuccessStyle.Render(SuccessIcon+" Reliable"), categorizedTable(split.Reliable))
	}
	if len(split.Uncertain) > 0 {
		sections = append(sections, "", WarningStyle.Render(WarningIcon+" Needs review"), categorizedTable(split.Uncertain))
	}

	sources := make([]string, 0, len(summary.BySource))
	for source := range summary.BySource {
		sources = append(sources, string(source))
	}
	sort.Strings(sources)
	counts := make([]string, 0, len(sources))
	for _, source := range sources {
		counts = append(counts, fmt.Sprintf("%s=%d", source, summary.BySource[model.MatchSource(source)]))
	}
	if len(counts) > 0 {
		sections = append(sections, "", SubtleStyle.Render("By stage: "+strings.Join(counts, ", ")))
	}

	return strings.Join(sections, "\n")
}

func categorizedTable(categorized []model.CategorizedTransaction) string {
	rows := make([][]string, 0, len(categorized))
	for _, c := range categorized {
		rows = append(rows, []string{
			c.Transaction.Date.Format("2006-01-02"),
			c.Transaction.Description,
			fmt.Sprintf("%.2f", c.Transaction.Amount),
			c.Category,
			fmt.Sprintf("%.2f", c.Confidence),
			string(c.Source),
		})
	}
	return renderTable([]string{"Date", "Description", "Amount", "Category", "Conf", "Stage"}, rows)
}

// FormatPredictions renders month-end forecasts and current budget usage.
func FormatPredictions(budgets []model.Budget, predictions []model.BudgetPrediction) string {
	if len(predictions) == 0 {
		return FormatInfo("No budget limits configured.")
	}

	used := make(map[string]model.Budget, len(budgets))
	for _, b := range budgets {
		used[b.Category] = b
	}

	rows := make([][]string, 0, len(predictions))
	for _, p := range predictions {
		rows = append(rows, []string{
			p.Category,
			fmt.Sprintf("%.2f", p.Limit),
			fmt.Sprintf("%.2f", p.CurrentSpent),
			fmt.Sprintf("%.0f%%", used[p.Category].PercentUsed),
			fmt.Sprintf("%.2f", p.PredictedTotal),
			fmt.Sprintf("%.2f", p.PredictedOverspend),
			fmt.Sprintf("%d", p.DaysRemaining),
			SeverityStyle(p.RiskLevel).Render(string(p.RiskLevel)),
		})
	}
	return FormatTitle("Month-end forecast") + "\n" +
		renderTable([]string{"Category", "Limit", "Spent", "Used", "Projected", "Over", "Days left", "Risk"}, rows)
}

// FormatPatterns renders per-category trends.
func FormatPatterns(patterns []model.SpendingPattern) string {
	if len(patterns) == 0 {
		return FormatInfo("No spending in the lookback window.")
	}

	rows := make([][]string, 0, len(patterns))
	for _, p := range patterns {
		totals := make([]string, len(p.MonthlyTotals))
		for i, v := range p.MonthlyTotals {
			totals[i] = fmt.Sprintf("%.2f", v)
		}
		rows = append(rows, []string{
			p.Category,
			string(p.Pattern),
			fmt.Sprintf("%+.1f%%", p.PercentageChange),
			strings.Join(totals, " → "),
		})
	}
	return FormatTitle("Spending patterns") + "\n" +
		renderTable([]string{"Category", "Trend", "Avg change", "Monthly totals"}, rows)
}

// FormatInsights renders ranked insights.
func FormatInsights(insights []model.Insight) string {
	if len(insights) == 0 {
		return FormatSuccess("Nothing stands out this month.")
	}

	lines := []string{FormatTitle("Insights")}
	for _, insight := range insights {
		badge := SeverityStyle(insight.Severity).Render(fmt.Sprintf("[%s]", insight.Severity))
		lines = append(lines,
			fmt.Sprintf("%s %s", badge, BoldStyle.Render(insight.Title)),
			"    "+insight.Description)
	}
	return strings.Join(lines, "\n")
}

// FormatRecommendations renders ranked recommendations.
func FormatRecommendations(recs []model.Recommendation) string {
	if len(recs) == 0 {
		return FormatSuccess("No changes recommended.")
	}

	lines := []string{FormatTitle("Recommendations")}
	for i, rec := range recs {
		badge := SeverityStyle(rec.Impact).Render(fmt.Sprintf("[%s]", rec.Impact))
		lines = append(lines,
			fmt.Sprintf("%d. %s %s", i+1, badge, BoldStyle.Render(rec.Title)),
			"    "+rec.Description)
	}
	return strings.Join(lines, "\n")
}

// FormatAllocation renders a suggested budget allocation, largest first.
func FormatAllocation(allocation map[string]float64, income float64) string {
	if len(allocation) == 0 {
		return FormatInfo("No income to allocate.")
	}

	categories := make([]string, 0, len(allocation))
	for category := range allocation {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		a, b := allocation[categories[i]], allocation[categories[j]]
		if a != b {
			return a > b
		}
		return categories[i] < categories[j]
	})

	rows := make([][]string, 0, len(categories))
	for _, category := range categories {
		share := 0.0
		if income > 0 {
			share = allocation[category] / income * 100
		}
		rows = append(rows, []string{
			category,
			string(model.TypeOf(category)),
			fmt.Sprintf("%.2f", allocation[category]),
			fmt.Sprintf("%.1f%%", share),
		})
	}
	return FormatTitle(fmt.Sprintf("%s Suggested allocation of %.2f", MoneyIcon, income)) + "\n" +
		renderTable([]string{"Category", "Bucket", "Amount", "Share"}, rows)
}

// renderTable lays out rows in padded columns under a styled header.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(TableHeaderStyle.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	b.WriteString(SubtleStyle.Render(strings.Repeat("─", total+2*(len(widths)-1))))

	for _, row := range rows {
		b.WriteString("\n")
		for i, cell := range row {
			b.WriteString(pad(cell, widths[i]))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
