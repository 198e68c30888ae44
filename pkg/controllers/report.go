package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/internal/types"
	"github.com/smartspend/backend/pkg/export"
	"github.com/smartspend/backend/pkg/httputil"
	"github.com/smartspend/backend/pkg/ledger"
)

// RegisterReportRoutes registers the read-only report routes with
// the RouterGroup that is passed.
func (co Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/balance", httputil.OptionsGet)
	r.GET("/balance", co.GetBalance)
	r.OPTIONS("/summary", httputil.OptionsGet)
	r.GET("/summary", co.GetSummary)
	r.OPTIONS("/insight", httputil.OptionsGet)
	r.GET("/insight", co.GetInsight)
	r.OPTIONS("/export", httputil.OptionsGet)
	r.GET("/export", co.GetExport)
}

// GetBalance returns the total balance
//
//	@Summary		Get balance
//	@Description	Returns the sum of all source balances and every source whose balance disagrees with its transaction history
//	@Tags			Reports
//	@Produce		json
//	@Success		200	{object}	BalanceResponse
//	@Router			/v1/balance [get]
func (co Controller) GetBalance(c *gin.Context) {
	total := co.Ledger.GetBalance()

	c.JSON(http.StatusOK, BalanceResponse{Data: &Balance{
		Total:     total,
		Formatted: export.FormatMoney(total, co.Currency),
		Sources:   co.Ledger.Sources(),
		Drift:     co.Ledger.CheckBalances(),
	}})
}

// GetSummary returns the summary of a month
//
//	@Summary		Get month summary
//	@Description	Returns income, spending, per category totals and budget progress for a month
//	@Tags			Reports
//	@Produce		json
//	@Success		200		{object}	SummaryResponse
//	@Failure		400		{object}	SummaryResponse
//	@Param			month	query		string	false	"Year and month in YYYY-MM format, defaults to the current month"
//	@Router			/v1/summary [get]
func (co Controller) GetSummary(c *gin.Context) {
	var query QueryMonth
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, SummaryResponse{Error: httputil.ErrInvalidQueryString.Error()})
		return
	}

	now := co.now()
	month := types.MonthOf(now)
	if query.Month != "" {
		m, err := types.ParseMonth(query.Month)
		if err != nil {
			c.JSON(http.StatusBadRequest, SummaryResponse{Error: errInvalidMonth.Error()})
			return
		}
		month = m
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: summarize(co.Ledger.Snapshot(), month, now)})
}

// summarize builds the summary of a month. Budget progress is for the
// periods containing now.
func summarize(s ledger.Snapshot, month types.Month, now time.Time) *Summary {
	return &Summary{
		Month:      month.String(),
		Totals:     s.Totals(month.Start(), month.End()),
		Categories: s.SpendByCategory(month.Start(), month.End()),
		Budgets:    s.BudgetProgress(now),
	}
}

// GetInsight returns an AI generated insight
//
//	@Summary		Get insight
//	@Description	Returns a summary, spending trend and tip generated from the recent transactions. Data is null if no insight could be generated.
//	@Tags			Reports
//	@Produce		json
//	@Success		200	{object}	InsightResponse
//	@Failure		503	{object}	InsightResponse
//	@Router			/v1/insight [get]
func (co Controller) GetInsight(c *gin.Context) {
	i := co.Insights.Analyze(c.Request.Context(), co.Ledger.Snapshot())
	if i == nil {
		c.JSON(http.StatusServiceUnavailable, InsightResponse{Error: errNoInsight.Error()})
		return
	}

	c.JSON(http.StatusOK, InsightResponse{Data: i})
}

// GetExport returns the transactions as a spreadsheet
//
//	@Summary		Export transactions
//	@Description	Returns the matching transactions and a per category summary as an xlsx workbook
//	@Tags			Reports
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success		200
//	@Failure		400			{object}	httputil.HTTPError
//	@Param			source		query		string	false	"Filter by source ID"
//	@Param			category	query		string	false	"Filter by category ID"
//	@Param			type		query		string	false	"Filter by type"
//	@Param			from		query		string	false	"Only transactions at or after this RFC3339 time"
//	@Param			until		query		string	false	"Only transactions before this RFC3339 time"
//	@Param			note		query		string	false	"Glob pattern for the note, e.g. Lunch*"
//	@Router			/v1/export [get]
func (co Controller) GetExport(c *gin.Context) {
	var query TransactionQueryFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		fail(c, httputil.ErrInvalidQueryString)
		return
	}

	filter, err := query.model()
	if err != nil {
		fail(c, err)
		return
	}

	f, err := export.Workbook(co.Ledger.Snapshot(), filter, co.Currency)
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		fail(c, err)
		return
	}

	name := fmt.Sprintf("smartspend-%s.xlsx", co.now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
