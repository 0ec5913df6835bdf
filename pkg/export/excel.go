// Package export builds Excel workbooks of the monthly duty breakdown and
// the rescue log for offline distribution.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/chupohan/brigade-duty/pkg/core/civiltime"
	"github.com/chupohan/brigade-duty/pkg/core/model"
	"github.com/chupohan/brigade-duty/pkg/db"
)

// BuildActivityWorkbook renders the admin monthly breakdown into a
// workbook. Anomalous rows keep their zeroed durations and carry a time
// error marker, so the export matches what the admin table shows.
func BuildActivityWorkbook(rows []model.UserMonthlyActivity, year int, month time.Month) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := fmt.Sprintf("%d-%02d", year, int(month))
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []interface{}{"Name", "Date", "Sign-in", "Sign-out", "Hours", "Type", "Time error"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		timeError := ""
		if row.IsTimeError {
			timeError = "yes"
		}
		values := []interface{}{
			row.UserName,
			row.Date,
			orBlank(row.SignInTime),
			orBlank(row.SignOutTime),
			row.Duration,
			row.ActivityType,
			timeError,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}

// BuildRescueWorkbook renders the rescue log, newest first, with case times
// in civil time.
func BuildRescueWorkbook(rescues []db.Rescue, names map[int64]string, clock *civiltime.Clock) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Rescues"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []interface{}{"Name", "Time", "Case type", "Subtype", "Treatment", "Hospital", "Level", "Address"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range rescues {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			names[r.UserID],
			clock.DateTimeString(r.Timestamp),
			r.CaseType,
			r.CaseSubtype,
			r.Treatment,
			r.Hospital,
			r.RescueType,
			r.RescueAddress,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}

func orBlank(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
