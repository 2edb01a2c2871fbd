// Package export renders loan summaries as spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"easyqarz/domain"
)

const (
	SummarySheet  = "Summary"
	ScheduleSheet = "Schedule"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// builtin "#,##0.00"
	numFmtMoney = 4
)

var scheduleHeader = []interface{}{"Month", "Payment", "Principal", "Interest", "Balance"}

// ScheduleWorkbook builds a workbook with a Summary sheet and a Schedule
// sheet holding one row per month. The caller owns the returned file and
// must Close it.
func ScheduleWorkbook(summary domain.LoanSummary) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}
	if _, err := f.NewSheet(ScheduleSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create schedule sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummary(f, styles, summary); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSchedule(f, styles, summary.Schedule); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteSchedule streams the workbook for summary to w.
func WriteSchedule(w io.Writer, summary domain.LoanSummary) error {
	f, err := ScheduleWorkbook(summary)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type styles struct {
	header int
	money  int
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4CAF50"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return styles{}, fmt.Errorf("create header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMoney})
	if err != nil {
		return styles{}, fmt.Errorf("create money style: %w", err)
	}
	return styles{header: header, money: money}, nil
}

func writeSummary(f *excelize.File, st styles, summary domain.LoanSummary) error {
	interestLabel := "Total Interest"
	if summary.Terms.Mode == domain.ModeLinearProfit {
		interestLabel = "Total Profit"
	}

	rows := [][]interface{}{
		{"Field", "Value"},
		{"Mode", string(summary.Terms.Mode)},
		{"Principal", summary.Terms.Principal},
		{"Annual Rate (%)", summary.Terms.AnnualRatePercent},
		{"Tenure (Years)", summary.Terms.TenureYears},
		{"Monthly Payment", summary.MonthlyPayment},
		{interestLabel, summary.TotalInterest},
		{"Total Payment", summary.TotalPayment},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}

	if err := f.SetCellStyle(SummarySheet, "A1", "B1", st.header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "B6", "B8", st.money); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "B", 20)
}

func writeSchedule(f *excelize.File, st styles, schedule domain.Schedule) error {
	if err := f.SetSheetRow(ScheduleSheet, "A1", &scheduleHeader); err != nil {
		return fmt.Errorf("write schedule header: %w", err)
	}

	for i, row := range schedule {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Month,
			row.Payment,
			row.PrincipalPortion,
			row.InterestPortion,
			row.RemainingBalance,
		}
		if err := f.SetSheetRow(ScheduleSheet, cell, &values); err != nil {
			return fmt.Errorf("write schedule month %d: %w", row.Month, err)
		}
	}

	if err := f.SetCellStyle(ScheduleSheet, "A1", "E1", st.header); err != nil {
		return err
	}
	if len(schedule) > 0 {
		last := fmt.Sprintf("E%d", len(schedule)+1)
		if err := f.SetCellStyle(ScheduleSheet, "B2", last, st.money); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(ScheduleSheet, "A", "E", 16); err != nil {
		return err
	}
	return f.SetPanes(ScheduleSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
