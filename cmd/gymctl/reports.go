package main

import (
	"context"
	"fmt"
	"strconv"

	attendanceStore "gymdesk/internal/adapters/storage/attendance"
	paymentStore "gymdesk/internal/adapters/storage/payment"
	"gymdesk/internal/application/projections"
)

func (a *app) paymentQueries() projections.GetPaymentsReportDeps {
	return projections.GetPaymentsReportDeps{
		PaymentStore: paymentStore.NewSQLiteStore(a.db),
		Now:          a.now,
		DueSoonDays:  a.cfg.Payments.DueSoonDays,
	}
}

// rangeFlags registers the -from/-to/-csv trio every report takes.
func rangeFlags(a *app, name string, args []string) (from, to string, asCSV bool, err error) {
	fs := newFlags(a, name)
	fs.StringVar(&from, "from", "", "first date yyyy-mm-dd (open when empty)")
	fs.StringVar(&to, "to", "", "last date yyyy-mm-dd (open when empty)")
	fs.BoolVar(&asCSV, "csv", false, "write CSV")
	err = parse(fs, args)
	return from, to, asCSV, err
}

func cmdReportPayments(ctx context.Context, a *app, args []string) error {
	from, to, asCSV, err := rangeFlags(a, "report payments", args)
	if err != nil {
		return err
	}
	res, err := projections.QueryGetPaymentsReport(ctx, projections.GetPaymentsReportQuery{From: from, To: to}, a.paymentQueries())
	if err != nil {
		return err
	}
	g := newGrid("ID", "MEMBER", "AMOUNT", "PAID", "DUE", "STATUS")
	g.status = 5
	for _, r := range res.Rows {
		g.add(itoa(r.ID), r.MemberName, money(r.Amount), r.PaidDate, orDash(r.DueDate), string(r.Status))
	}
	if err := g.render(a.out, asCSV); err != nil {
		return err
	}
	if !asCSV {
		fmt.Fprintf(a.out, "%d payments, total %s, %d overdue, %d due soon\n", res.Count, money(res.Total), res.Overdue, res.DueSoon)
	}
	return nil
}

func cmdReportRevenue(ctx context.Context, a *app, args []string) error {
	from, to, asCSV, err := rangeFlags(a, "report revenue", args)
	if err != nil {
		return err
	}
	months, err := projections.QueryGetRevenueByMonth(ctx, projections.GetPaymentsReportQuery{From: from, To: to}, a.paymentQueries())
	if err != nil {
		return err
	}
	g := newGrid("MONTH", "PAYMENTS", "TOTAL")
	for _, m := range months {
		g.add(m.Month, strconv.Itoa(m.Count), money(m.Total))
	}
	return g.render(a.out, asCSV)
}

func cmdReportOverdue(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "report overdue")
	asCSV := fs.Bool("csv", false, "write CSV")
	if err := parse(fs, args); err != nil {
		return err
	}
	list, err := projections.QueryGetOverduePayments(ctx, a.paymentQueries())
	if err != nil {
		return err
	}
	g := newGrid("ID", "MEMBER", "AMOUNT", "DUE", "DAYS OVERDUE")
	for _, r := range list {
		g.add(itoa(r.ID), r.MemberName, money(r.Amount), r.DueDate, strconv.Itoa(r.DaysOverdue))
	}
	return g.render(a.out, *asCSV)
}

func cmdReportAttendance(ctx context.Context, a *app, args []string) error {
	from, to, asCSV, err := rangeFlags(a, "report attendance", args)
	if err != nil {
		return err
	}
	res, err := projections.QueryGetAttendanceReport(ctx, projections.GetAttendanceReportQuery{From: from, To: to},
		projections.GetAttendanceReportDeps{AttendanceStore: attendanceStore.NewSQLiteStore(a.db)})
	if err != nil {
		return err
	}
	g := newGrid("DATE", "MEMBER", "STATUS")
	g.status = 2
	for _, r := range res.Rows {
		g.add(r.Date, r.MemberName, r.Status)
	}
	if err := g.render(a.out, asCSV); err != nil {
		return err
	}
	if !asCSV {
		fmt.Fprintf(a.out, "%d present, %d absent\n", res.Present, res.Absent)
	}
	return nil
}
