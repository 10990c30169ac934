package attendance_test

import (
	"testing"

	"gymdesk/internal/domain/attendance"
)

// TestStatusFor tests the flag to status mapping.
func TestStatusFor(t *testing.T) {
	if got := attendance.StatusFor(true); got != attendance.StatusPresent {
		t.Errorf("StatusFor(true) = %q", got)
	}
	if got := attendance.StatusFor(false); got != attendance.StatusAbsent {
		t.Errorf("StatusFor(false) = %q", got)
	}
}

// TestAttendanceValidation tests validation of Attendance.
func TestAttendanceValidation(t *testing.T) {
	tests := []struct {
		name    string
		a       attendance.Attendance
		wantErr bool
	}{
		{"present", attendance.Attendance{MemberID: 1, Date: "2024-04-01", Status: attendance.StatusPresent}, false},
		{"absent", attendance.Attendance{MemberID: 1, Date: "2024-04-01", Status: attendance.StatusAbsent}, false},
		{"no member", attendance.Attendance{Date: "2024-04-01", Status: attendance.StatusAbsent}, true},
		{"bad date", attendance.Attendance{MemberID: 1, Date: "April 1", Status: attendance.StatusAbsent}, true},
		{"bad status", attendance.Attendance{MemberID: 1, Date: "2024-04-01", Status: "Late"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.a.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Attendance.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
