package projections

import (
	"context"
	"time"

	"gymdesk/internal/adapters/storage/attendance"
	domainAttendance "gymdesk/internal/domain/attendance"
	"gymdesk/internal/domain/dates"
)

// GetAttendanceQuery carries query parameters. Empty Date means today.
type GetAttendanceQuery struct {
	Date string
}

// GetAttendanceResult carries every member's mark for one day.
type GetAttendanceResult struct {
	Date    string
	Rows    []domainAttendance.Row
	Present int
}

// GetAttendanceDeps holds dependencies for GetAttendance.
type GetAttendanceDeps struct {
	AttendanceStore AttendanceStore
	Now             func() time.Time
}

// QueryGetAttendance loads the attendance sheet for a day.
// PRE: Date is empty or yyyy-MM-dd
// POST: One row per member, unmarked members Absent, ordered by name
func QueryGetAttendance(ctx context.Context, query GetAttendanceQuery, deps GetAttendanceDeps) (GetAttendanceResult, error) {
	date := query.Date
	if date == "" {
		_, date = clock(deps.Now)
	} else if _, err := dates.Parse(date); err != nil {
		return GetAttendanceResult{}, err
	}

	rows, err := deps.AttendanceStore.LoadForDate(ctx, date)
	if err != nil {
		return GetAttendanceResult{}, err
	}
	result := GetAttendanceResult{Date: date, Rows: rows}
	for _, r := range rows {
		if r.IsPresent() {
			result.Present++
		}
	}
	return result, nil
}

// GetAttendanceReportQuery bounds the report. Empty bounds are open.
type GetAttendanceReportQuery struct {
	From string
	To   string
}

// GetAttendanceReportResult carries stored marks, newest first.
type GetAttendanceReportResult struct {
	Rows    []attendance.ReportRow
	Present int
	Absent  int
}

// GetAttendanceReportDeps holds dependencies for GetAttendanceReport.
type GetAttendanceReportDeps struct {
	AttendanceStore AttendanceStore
}

// QueryGetAttendanceReport lists stored marks within a date range.
// PRE: From and To are empty or yyyy-MM-dd
// POST: Rows ordered by date descending
func QueryGetAttendanceReport(ctx context.Context, query GetAttendanceReportQuery, deps GetAttendanceReportDeps) (GetAttendanceReportResult, error) {
	if err := checkRange(query.From, query.To); err != nil {
		return GetAttendanceReportResult{}, err
	}
	rows, err := deps.AttendanceStore.List(ctx, attendance.ListFilter{From: query.From, To: query.To})
	if err != nil {
		return GetAttendanceReportResult{}, err
	}
	result := GetAttendanceReportResult{Rows: rows}
	for _, r := range rows {
		if r.Status == domainAttendance.StatusPresent {
			result.Present++
		} else {
			result.Absent++
		}
	}
	return result, nil
}
