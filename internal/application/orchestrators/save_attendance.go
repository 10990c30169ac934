package orchestrators

import (
	"context"
	"log/slog"

	"gymdesk/internal/domain/attendance"
	"gymdesk/internal/domain/dates"
)

// SaveAttendanceInput carries one day's marks.
type SaveAttendanceInput struct {
	Date    string
	Entries []attendance.Entry
}

// SaveAttendanceDeps holds dependencies for SaveAttendance.
type SaveAttendanceDeps struct {
	Tx      Transactor
	Refresh RefreshFunc
}

// ExecuteSaveAttendance upserts every mark of the batch for one date.
// PRE: Date is yyyy-MM-dd
// POST: Each member in Entries has exactly one row for Date with the given status
// INVARIANT: The whole batch commits together or not at all
func ExecuteSaveAttendance(ctx context.Context, input SaveAttendanceInput, deps SaveAttendanceDeps) error {
	if _, err := dates.Parse(input.Date); err != nil {
		return err
	}

	marks := make([]attendance.Attendance, 0, len(input.Entries))
	present := 0
	for _, e := range input.Entries {
		a := attendance.Attendance{MemberID: e.MemberID, Date: input.Date, Status: attendance.StatusFor(e.Present)}
		if err := a.Validate(); err != nil {
			return err
		}
		if e.Present {
			present++
		}
		marks = append(marks, a)
	}

	err := deps.Tx.InTx(ctx, "save_attendance", func(s Stores) error {
		for _, a := range marks {
			if err := s.Attendance.Upsert(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("attendance_event", "event", "attendance_saved", "date", input.Date,
		"entries", len(marks), "present", present)
	notify(ctx, "save_attendance", deps.Refresh)
	return nil
}
