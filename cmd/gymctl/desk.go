package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gymdesk/internal/adapters/storage"
	accountStore "gymdesk/internal/adapters/storage/account"
	attendanceStore "gymdesk/internal/adapters/storage/attendance"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	domainAttendance "gymdesk/internal/domain/attendance"
	"gymdesk/internal/domain/dates"
	domainPayment "gymdesk/internal/domain/payment"
)

func today(a *app) string {
	return dates.TodayString(a.now())
}

func cmdInit(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "init")
	if err := parse(fs, args); err != nil {
		return err
	}
	v, err := storage.SchemaVersion(ctx, a.db)
	if err != nil {
		return err
	}
	success(a.out, "database %s ready (schema v%d)", a.cfg.Storage.Path, v)
	if a.seeded {
		fmt.Fprintf(a.out, "seeded admin account %q\n", a.cfg.Admin.Username)
	}
	return nil
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "login")
	user := fs.String("u", "", "username (required)")
	pass := fs.String("p", "", "password (required)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *user == "" || *pass == "" {
		return usagef("-u and -p are required")
	}
	u, err := orchestrators.ExecuteLogin(ctx, orchestrators.LoginInput{Username: *user, Password: *pass},
		orchestrators.LoginDeps{AccountStore: accountStore.NewSQLiteStore(a.db)})
	if err != nil {
		return err
	}
	success(a.out, "welcome, %s", u.Username)
	return nil
}

func cmdPay(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "pay")
	memberID := fs.Int64("member", 0, "member id (required)")
	amount := fs.String("amount", "", "amount paid (required)")
	paid := fs.String("paid", "", "paid date yyyy-mm-dd (default today)")
	due := fs.String("due", "", "next due date yyyy-mm-dd")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireID("member", *memberID); err != nil {
		return err
	}
	v, err := domainPayment.ParseAmount(*amount)
	if err != nil {
		return err
	}

	res, err := orchestrators.ExecuteRecordPayment(ctx, orchestrators.RecordPaymentInput{
		MemberID: *memberID,
		Amount:   v,
		PaidDate: *paid,
		DueDate:  *due,
	}, orchestrators.RecordPaymentDeps{
		Tx:          a.tx,
		RenewalDays: a.cfg.Membership.RenewalDays,
		Now:         a.now,
	})
	if err != nil {
		return err
	}
	success(a.out, "payment %d recorded, membership now ends %s (was %s)", res.PaymentID, res.NewEndDate, orDash(res.PreviousEnd))
	return nil
}

func cmdAttendanceShow(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "attendance show")
	date := fs.String("date", "", "day yyyy-mm-dd (default today)")
	asCSV := fs.Bool("csv", false, "write CSV")
	if err := parse(fs, args); err != nil {
		return err
	}
	res, err := projections.QueryGetAttendance(ctx, projections.GetAttendanceQuery{Date: *date}, projections.GetAttendanceDeps{
		AttendanceStore: attendanceStore.NewSQLiteStore(a.db),
		Now:             a.now,
	})
	if err != nil {
		return err
	}
	g := newGrid("ID", "NAME", "STATUS")
	g.status = 2
	for _, r := range res.Rows {
		g.add(itoa(r.MemberID), r.Name, r.Status)
	}
	if err := g.render(a.out, *asCSV); err != nil {
		return err
	}
	if !*asCSV {
		fmt.Fprintf(a.out, "%s: %d of %d present\n", res.Date, res.Present, len(res.Rows))
	}
	return nil
}

// cmdAttendanceMark saves the whole sheet for a day: listed members are
// Present, everyone else Absent. -all marks every member the same way.
func cmdAttendanceMark(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "attendance mark")
	date := fs.String("date", "", "day yyyy-mm-dd (default today)")
	present := fs.String("present", "", "comma separated member ids present that day")
	all := fs.String("all", "", "mark every member Present or Absent")
	if err := parse(fs, args); err != nil {
		return err
	}
	var everyone *bool
	switch strings.ToLower(*all) {
	case "":
	case "present", "absent":
		if *present != "" {
			return usagef("-all and -present are mutually exclusive")
		}
		v := strings.EqualFold(*all, domainAttendance.StatusPresent)
		everyone = &v
	default:
		return usagef("-all must be present or absent, got %q", *all)
	}
	ids, err := parseIDs(*present)
	if err != nil {
		return err
	}
	if *date == "" {
		*date = today(a)
	}

	sheet, err := projections.QueryGetAttendance(ctx, projections.GetAttendanceQuery{Date: *date}, projections.GetAttendanceDeps{
		AttendanceStore: attendanceStore.NewSQLiteStore(a.db),
		Now:             a.now,
	})
	if err != nil {
		return err
	}
	entries := make([]domainAttendance.Entry, 0, len(sheet.Rows))
	for _, r := range sheet.Rows {
		_, here := ids[r.MemberID]
		if everyone != nil {
			here = *everyone
		}
		entries = append(entries, domainAttendance.Entry{MemberID: r.MemberID, Present: here})
		delete(ids, r.MemberID)
	}
	// Unknown ids still go through so the store reports them.
	for id := range ids {
		entries = append(entries, domainAttendance.Entry{MemberID: id, Present: true})
	}

	if err := orchestrators.ExecuteSaveAttendance(ctx, orchestrators.SaveAttendanceInput{Date: *date, Entries: entries},
		orchestrators.SaveAttendanceDeps{Tx: a.tx}); err != nil {
		return err
	}
	success(a.out, "attendance for %s saved (%d members)", *date, len(entries))
	return nil
}

func parseIDs(s string) (map[int64]struct{}, error) {
	ids := make(map[int64]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, usagef("bad member id %q", part)
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}
