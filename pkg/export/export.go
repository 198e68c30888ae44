// Package export writes transactions to xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/smartspend/backend/pkg/ledger"
	"github.com/xuri/excelize/v2"
)

const (
	TransactionsSheet = "Transactions"
	SummarySheet      = "Summary"

	// ContentType is the MIME type of the written workbooks.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var transactionHeader = []any{"Date", "Type", "Category", "Source", "Note", "Amount"}

// Workbook builds a workbook with the transactions matching the filter and
// a per-category summary of them. Amounts are signed by their balance effect.
func Workbook(s ledger.Snapshot, filter ledger.TransactionFilter, currency string) (*excelize.File, error) {
	transactions := s.Filter(filter)

	return build(func(f *excelize.File) error {
		if err := f.SetSheetName(f.GetSheetName(0), TransactionsSheet); err != nil {
			return err
		}
		if _, err := f.NewSheet(SummarySheet); err != nil {
			return err
		}

		amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(TransactionsSheet, "A1", &transactionHeader); err != nil {
			return err
		}

		for i, t := range transactions {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}

			row := []any{
				t.Date.Format("2006-01-02"),
				string(t.Type),
				s.CategoryName(t.CategoryID),
				s.SourceName(t.SourceID),
				t.Note,
				t.Effect().InexactFloat64(),
			}
			if err := f.SetSheetRow(TransactionsSheet, cell, &row); err != nil {
				return err
			}
		}

		if len(transactions) > 0 {
			last := fmt.Sprintf("F%d", len(transactions)+1)
			if err := f.SetCellStyle(TransactionsSheet, "F2", last, amountStyle); err != nil {
				return err
			}
		}

		return summary(f, s, transactions, currency, amountStyle)
	})
}

// build creates a workbook and fills it. The file is closed when fill fails.
func build(fill func(*excelize.File) error) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fill(f); err != nil {
		if cerr := f.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("could not close workbook")
		}
		return nil, fmt.Errorf("could not build workbook: %w", err)
	}

	return f, nil
}

func summary(f *excelize.File, s ledger.Snapshot, transactions []ledger.Transaction, currency string, amountStyle int) error {
	filtered := s
	filtered.Transactions = transactions

	rows := [][]any{
		{"Currency", currency},
		{},
		{"Category", "Transactions", "Total"},
	}

	for _, c := range filtered.SpendByCategory(time.Time{}, time.Time{}) {
		if c.Count == 0 {
			continue
		}
		rows = append(rows, []any{c.Name, c.Count, c.Total.InexactFloat64()})
	}

	income, spent := decimal.Zero, decimal.Zero
	for _, t := range transactions {
		if t.Type == ledger.Income {
			income = income.Add(t.Amount)
		} else {
			spent = spent.Add(t.Amount)
		}
	}

	rows = append(rows,
		[]any{},
		[]any{"Income", "", income.InexactFloat64()},
		[]any{"Spent", "", spent.InexactFloat64()},
		[]any{"Net", "", income.Sub(spent).InexactFloat64()},
	)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetCellStyle(SummarySheet, "C4", fmt.Sprintf("C%d", len(rows)), amountStyle)
}

// Write writes the workbook for the filtered transactions to w.
func Write(w io.Writer, s ledger.Snapshot, filter ledger.TransactionFilter, currency string) error {
	f, err := Workbook(s, filter, currency)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}
