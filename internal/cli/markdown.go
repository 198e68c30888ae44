package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/smartspend/backend/internal/types"
	"github.com/smartspend/backend/pkg/export"
	"github.com/smartspend/backend/pkg/insight"
	"github.com/smartspend/backend/pkg/ledger"
)

// BalanceMarkdown lists all sources and the total balance.
func BalanceMarkdown(s ledger.Snapshot, currency string) string {
	var b strings.Builder

	b.WriteString("# Balance\n\n")
	b.WriteString("| Source | Type | Balance |\n")
	b.WriteString("|:---|:---|---:|\n")
	for _, src := range s.Sources {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", src.Name, src.Kind, export.FormatMoney(src.Balance, currency))
	}
	fmt.Fprintf(&b, "| **Total** | | **%s** |\n", export.FormatMoney(s.Balance(), currency))

	return b.String()
}

// ReportMarkdown summarizes a month: money flow, spending per category and
// the budgets for the periods containing now.
func ReportMarkdown(s ledger.Snapshot, month types.Month, now time.Time, currency string) string {
	var b strings.Builder
	totals := s.Totals(month.Start(), month.End())

	fmt.Fprintf(&b, "# Report %s\n\n", month)
	fmt.Fprintf(&b, "- Income: %s\n", export.FormatMoney(totals.Income, currency))
	fmt.Fprintf(&b, "- Spent: %s\n", export.FormatMoney(totals.Spent, currency))
	fmt.Fprintf(&b, "- Net: %s\n", export.FormatMoney(totals.Net, currency))

	b.WriteString("\n## Categories\n\n")
	b.WriteString("| Category | Transactions | Total |\n")
	b.WriteString("|:---|---:|---:|\n")
	for _, c := range s.SpendByCategory(month.Start(), month.End()) {
		if c.Count == 0 {
			continue
		}
		fmt.Fprintf(&b, "| %s | %d | %s |\n", c.Name, c.Count, export.FormatMoney(c.Total, currency))
	}

	progress := s.BudgetProgress(now)
	if len(progress) > 0 {
		b.WriteString("\n## Budgets\n\n")
		b.WriteString("| Category | Period | Spent | Limit | Used |\n")
		b.WriteString("|:---|:---|---:|---:|---:|\n")
		for _, p := range progress {
			used := p.Percent.StringFixed(0) + "%"
			if p.Over {
				used += " ⚠️"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				s.CategoryName(p.Budget.CategoryID),
				strings.ToLower(string(p.Budget.Period)),
				export.FormatMoney(p.Spent, currency),
				export.FormatMoney(p.Budget.Limit, currency),
				used,
			)
		}
	}

	if len(s.Goals) > 0 {
		b.WriteString("\n## Goals\n\n")
		for _, g := range s.Goals {
			p := ledger.GoalProgressOf(g)
			check := " "
			if p.Completed {
				check = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s: %s of %s (%s%%)\n", check, g.Title,
				export.FormatMoney(g.CurrentAmount, currency),
				export.FormatMoney(g.TargetAmount, currency),
				p.Percent.StringFixed(0),
			)
		}
	}

	return b.String()
}

// InsightMarkdown renders an insight. A nil insight is reported as unavailable.
func InsightMarkdown(i *insight.Insight) string {
	if i == nil {
		return "# Insight\n\nNo insight is available right now.\n"
	}

	return fmt.Sprintf("# Insight\n\n%s\n\n**Spending trend:** %s\n\n> %s\n", i.Summary, i.SpendingTrend, i.ActionableTip)
}
