package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	memberStore "gymdesk/internal/adapters/storage/member"
	paymentStore "gymdesk/internal/adapters/storage/payment"
	slotStore "gymdesk/internal/adapters/storage/slot"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	domainMember "gymdesk/internal/domain/member"
)

// newFlags builds a subcommand FlagSet that reports errors instead of exiting.
func newFlags(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("gymctl "+name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// parse runs fs over args and turns flag problems into usage errors.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError{msg: err.Error()}
	}
	if fs.NArg() > 0 {
		return usagef("unexpected argument %q", fs.Arg(0))
	}
	return nil
}

func requireID(name string, id int64) error {
	if id <= 0 {
		return usagef("-%s is required", name)
	}
	return nil
}

func cmdMemberAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "member add")
	var in orchestrators.CreateMemberInput
	fs.StringVar(&in.Name, "name", "", "full name (required)")
	fs.StringVar(&in.Phone, "phone", "", "phone number")
	fs.StringVar(&in.Email, "email", "", "email address")
	fs.StringVar(&in.Address, "address", "", "postal address")
	fs.StringVar(&in.Gender, "gender", "", "Male, Female or Other (required)")
	fs.StringVar(&in.StartDate, "start", "", "membership start yyyy-mm-dd (default today)")
	fs.StringVar(&in.EndDate, "end", "", "membership end yyyy-mm-dd")
	fs.StringVar(&in.Plan, "plan", domainMember.PlanMonthly, "membership plan")
	fs.StringVar(&in.Photo, "photo", "", "photo path")
	fs.StringVar(&in.InitialAmount, "amount", "", "first payment amount")
	fs.StringVar(&in.DueDate, "due", "", "first payment due date yyyy-mm-dd")
	if err := parse(fs, args); err != nil {
		return err
	}
	if in.StartDate == "" {
		in.StartDate = today(a)
	}

	id, err := orchestrators.ExecuteCreateMember(ctx, in, orchestrators.CreateMemberDeps{Tx: a.tx})
	if err != nil {
		return err
	}
	success(a.out, "member %d created", id)
	return nil
}

func cmdMemberList(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "member list")
	var q projections.GetMemberListQuery
	fs.StringVar(&q.Plan, "plan", "", "only this plan")
	fs.StringVar(&q.Status, "status", domainMember.FilterAll, "All, Active or Expired")
	fs.StringVar(&q.Search, "search", "", "match name, phone or email")
	fs.IntVar(&q.Page, "page", 1, "page number")
	fs.IntVar(&q.PerPage, "per-page", 0, "rows per page (0 for all)")
	asCSV := fs.Bool("csv", false, "write CSV")
	if err := parse(fs, args); err != nil {
		return err
	}

	res, err := projections.QueryGetMemberList(ctx, q, projections.GetMemberListDeps{
		MemberStore:      memberStore.NewSQLiteStore(a.db),
		Now:              a.now,
		ExpiringSoonDays: a.cfg.Membership.ExpiringSoonDays,
	})
	if err != nil {
		return err
	}

	g := newGrid("ID", "NAME", "PHONE", "PLAN", "END", "STATUS", "DAYS", "NEXT BOOKING")
	g.status = 5
	for _, m := range res.Members {
		days := "-"
		if m.Expiry != domainMember.ExpiryNone {
			days = strconv.Itoa(m.DaysLeft)
		}
		next := "-"
		if m.NextBooking != nil {
			next = fmt.Sprintf("%s %s with %s", m.NextBooking.Date, m.NextBooking.SlotLabel, m.NextBooking.TrainerName)
		}
		g.add(itoa(m.ID), m.Name, orDash(m.Phone), orDash(m.Plan), orDash(m.EndDate), string(m.Expiry), days, next)
	}
	if err := g.render(a.out, *asCSV); err != nil {
		return err
	}
	if res.Page.Paged() && !*asCSV {
		fmt.Fprintf(a.out, "rows %d-%d of %d, page %d/%d\n",
			res.Page.StartRow(), res.Page.EndRow(), res.Page.Total, res.Page.Page, res.Page.TotalPages)
	}
	return nil
}

func cmdMemberShow(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "member show")
	id := fs.Int64("id", 0, "member id (required)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireID("id", *id); err != nil {
		return err
	}

	res, err := projections.QueryGetMemberProfile(ctx, projections.GetMemberProfileQuery{MemberID: *id}, projections.GetMemberProfileDeps{
		MemberStore:      memberStore.NewSQLiteStore(a.db),
		PaymentStore:     paymentStore.NewSQLiteStore(a.db),
		SlotStore:        slotStore.NewSQLiteStore(a.db),
		Now:              a.now,
		ExpiringSoonDays: a.cfg.Membership.ExpiringSoonDays,
	})
	if err != nil {
		return err
	}

	m := res.Member
	fmt.Fprintf(a.out, "#%d %s (%s)\n", m.ID, m.Name, m.Gender)
	fmt.Fprintf(a.out, "phone:   %s\nemail:   %s\naddress: %s\n", orDash(m.Phone), orDash(m.Email), orDash(m.Address))
	fmt.Fprintf(a.out, "plan:    %s, %s to %s  %s\n", orDash(m.Plan), orDash(m.StartDate), orDash(m.EndDate), paint(string(res.Expiry)))
	fmt.Fprintf(a.out, "paid:    %s over %d payments\n\n", money(res.TotalPaid), len(res.Payments))

	pg := newGrid("PAYMENT", "AMOUNT", "PAID", "DUE")
	for _, p := range res.Payments {
		pg.add(itoa(p.ID), money(p.Amount), p.PaidDate, orDash(p.DueDate))
	}
	if err := pg.render(a.out, false); err != nil {
		return err
	}
	if len(res.Slots) == 0 {
		return nil
	}
	fmt.Fprintln(a.out)
	sg := newGrid("SLOT", "TIME")
	for _, s := range res.Slots {
		sg.add(itoa(s.ID), s.Label())
	}
	return sg.render(a.out, false)
}

func cmdMemberUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "member update")
	id := fs.Int64("id", 0, "member id (required)")
	name := fs.String("name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	email := fs.String("email", "", "email address")
	address := fs.String("address", "", "postal address")
	gender := fs.String("gender", "", "Male, Female or Other")
	plan := fs.String("plan", "", "membership plan")
	photo := fs.String("photo", "", "photo path")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireID("id", *id); err != nil {
		return err
	}

	current, err := memberStore.NewSQLiteStore(a.db).GetByID(ctx, *id)
	if err != nil {
		return err
	}
	in := orchestrators.UpdateMemberInput{
		ID: current.ID, Name: current.Name, Phone: current.Phone, Email: current.Email,
		Address: current.Address, Gender: current.Gender, Plan: current.Plan, Photo: current.Photo,
	}
	// Only flags given on the command line replace stored values.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			in.Name = *name
		case "phone":
			in.Phone = *phone
		case "email":
			in.Email = *email
		case "address":
			in.Address = *address
		case "gender":
			in.Gender = *gender
		case "plan":
			in.Plan = *plan
		case "photo":
			in.Photo = *photo
		}
	})

	if err := orchestrators.ExecuteUpdateMember(ctx, in, orchestrators.UpdateMemberDeps{Tx: a.tx}); err != nil {
		return err
	}
	success(a.out, "member %d updated", *id)
	return nil
}

func cmdMemberDelete(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "member delete")
	id := fs.Int64("id", 0, "member id (required)")
	policy := fs.String("policy", "", "cascade or reject (default from config)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireID("id", *id); err != nil {
		return err
	}
	if *policy == "" {
		*policy = a.cfg.Members.DeletePolicy
	}

	res, err := orchestrators.ExecuteDeleteMember(ctx, orchestrators.DeleteMemberInput{MemberID: *id}, orchestrators.DeleteMemberDeps{
		Tx:     a.tx,
		Policy: *policy,
		Now:    a.now,
	})
	if err != nil {
		return err
	}
	success(a.out, "member %d deleted (%d payments, %d attendance, %d bookings, %d slot assignments removed)",
		*id, res.Payments, res.Attendance, res.Bookings, res.SlotAssignments)
	for _, t := range res.ReleasedTrainers {
		fmt.Fprintf(a.out, "trainer %d is available again\n", t)
	}
	return nil
}

func cmdMemberSummary(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "member summary")
	if err := parse(fs, args); err != nil {
		return err
	}
	res, err := projections.QueryGetDashboard(ctx, projections.GetDashboardDeps{
		MemberStore:      memberStore.NewSQLiteStore(a.db),
		Now:              a.now,
		ExpiringSoonDays: a.cfg.Membership.ExpiringSoonDays,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "as of %s\n", res.Today)
	g := newGrid("MEMBERS", "COUNT")
	g.status = 0
	g.add("Total", strconv.Itoa(res.Total))
	g.add(string(domainMember.ExpiryActive), strconv.Itoa(res.Active))
	g.add(string(domainMember.ExpiryExpiringSoon), strconv.Itoa(res.ExpiringSoon))
	g.add(string(domainMember.ExpiryExpired), strconv.Itoa(res.Expired))
	g.add("No end date", strconv.Itoa(res.NoEndDate))
	return g.render(a.out, false)
}

func cmdMemberImport(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "member import")
	path := fs.String("file", "", "CSV file with NAME, GENDER, START_DATE columns (required)")
	dryRun := fs.Bool("dry-run", false, "validate without writing")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *path == "" {
		return usagef("-file is required")
	}
	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := orchestrators.ExecuteImportMembers(ctx, orchestrators.ImportMembersInput{Reader: f, DryRun: *dryRun},
		orchestrators.ImportMembersDeps{Create: orchestrators.CreateMemberDeps{Tx: a.tx}})
	if err != nil {
		return err
	}
	for _, e := range res.Errors {
		fmt.Fprintf(a.out, "row %d: %s\n", e.Row, e.Message)
	}
	if len(res.Unknown) > 0 {
		fmt.Fprintf(a.out, "ignored columns: %v\n", res.Unknown)
	}
	verb := "imported"
	if res.DryRun {
		verb = "would import"
	}
	success(a.out, "%s %d of %d rows", verb, res.Created, res.Total)
	return nil
}
