package main

import (
	"context"
	"fmt"

	slotStore "gymdesk/internal/adapters/storage/slot"
	trainerStore "gymdesk/internal/adapters/storage/trainer"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	domainSlot "gymdesk/internal/domain/slot"
)

func (a *app) rosterQueries() projections.GetRosterDeps {
	return projections.GetRosterDeps{
		TrainerStore: trainerStore.NewSQLiteStore(a.db),
		SlotStore:    slotStore.NewSQLiteStore(a.db),
	}
}

func (a *app) booking() orchestrators.BookingDeps {
	return orchestrators.BookingDeps{Tx: a.tx, Now: a.now}
}

func cmdTrainerAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "trainer add")
	var in orchestrators.AddTrainerInput
	fs.StringVar(&in.Name, "name", "", "trainer name (required)")
	fs.StringVar(&in.Phone, "phone", "", "phone number")
	fs.StringVar(&in.Specialization, "spec", "", "specialization")
	if err := parse(fs, args); err != nil {
		return err
	}
	id, err := orchestrators.ExecuteAddTrainer(ctx, in, orchestrators.RosterDeps{Tx: a.tx})
	if err != nil {
		return err
	}
	success(a.out, "trainer %d added", id)
	return nil
}

func cmdTrainerList(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "trainer list")
	asCSV := fs.Bool("csv", false, "write CSV")
	if err := parse(fs, args); err != nil {
		return err
	}
	list, err := projections.QueryListTrainers(ctx, a.rosterQueries())
	if err != nil {
		return err
	}
	g := newGrid("ID", "NAME", "PHONE", "SPECIALIZATION", "STATUS")
	g.status = 4
	for _, t := range list {
		g.add(itoa(t.ID), t.Name, orDash(t.Phone), orDash(t.Specialization), t.Status)
	}
	return g.render(a.out, *asCSV)
}

func cmdTrainerBook(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "trainer book")
	var in orchestrators.BookInput
	fs.Int64Var(&in.TrainerID, "trainer", 0, "trainer id (required)")
	fs.Int64Var(&in.MemberID, "member", 0, "member id (required)")
	fs.Int64Var(&in.SlotID, "slot", 0, "slot id (required)")
	fs.StringVar(&in.BookingDate, "date", "", "booking date yyyy-mm-dd (default today)")
	if err := parse(fs, args); err != nil {
		return err
	}
	for name, id := range map[string]int64{"trainer": in.TrainerID, "member": in.MemberID, "slot": in.SlotID} {
		if err := requireID(name, id); err != nil {
			return err
		}
	}
	if in.BookingDate == "" {
		in.BookingDate = today(a)
	}
	id, err := orchestrators.ExecuteBook(ctx, in, a.booking())
	if err != nil {
		return err
	}
	success(a.out, "booking %d created for %s", id, in.BookingDate)
	return nil
}

func cmdTrainerRelease(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "trainer release")
	id := fs.Int64("trainer", 0, "trainer id (required)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireID("trainer", *id); err != nil {
		return err
	}
	n, err := orchestrators.ExecuteRelease(ctx, *id, a.booking())
	if err != nil {
		return err
	}
	success(a.out, "trainer %d available, %d booking(s) for today removed", *id, n)
	return nil
}

func cmdTrainerCancel(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "trainer cancel")
	bookingID := fs.Int64("booking", 0, "booking id")
	memberID := fs.Int64("member", 0, "cancel this member's booking for today instead")
	if err := parse(fs, args); err != nil {
		return err
	}
	switch {
	case *bookingID > 0 && *memberID > 0:
		return usagef("use either -booking or -member")
	case *bookingID > 0:
		if err := orchestrators.ExecuteCancelBooking(ctx, *bookingID, a.booking()); err != nil {
			return err
		}
		success(a.out, "booking %d cancelled", *bookingID)
	case *memberID > 0:
		n, err := orchestrators.ExecuteCancelMemberBookingToday(ctx, *memberID, a.booking())
		if err != nil {
			return err
		}
		success(a.out, "%d booking(s) for member %d today cancelled", n, *memberID)
	default:
		return usagef("-booking or -member is required")
	}
	return nil
}

func cmdTrainerHistory(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "trainer history")
	id := fs.Int64("trainer", 0, "trainer id (required)")
	asCSV := fs.Bool("csv", false, "write CSV")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireID("trainer", *id); err != nil {
		return err
	}
	res, err := projections.QueryGetTrainerHistory(ctx, *id, a.rosterQueries())
	if err != nil {
		return err
	}
	if !*asCSV {
		fmt.Fprintf(a.out, "%s (%s)\n", res.Trainer.Name, paint(res.Trainer.Status))
	}
	g := newGrid("BOOKING", "DATE", "SLOT", "MEMBER")
	for _, b := range res.Bookings {
		g.add(itoa(b.ID), b.BookingDate, b.SlotLabel, b.MemberName)
	}
	return g.render(a.out, *asCSV)
}

func cmdSlotAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "slot add")
	var in orchestrators.AddSlotInput
	fs.StringVar(&in.StartTime, "start", "", "start time, e.g. 06:00 (required)")
	fs.StringVar(&in.EndTime, "end", "", "end time, e.g. 07:00 (required)")
	fs.StringVar(&in.Gender, "gender", domainSlot.GenderMixed, "Male, Female or Mixed")
	if err := parse(fs, args); err != nil {
		return err
	}
	id, err := orchestrators.ExecuteAddSlot(ctx, in, orchestrators.RosterDeps{Tx: a.tx})
	if err != nil {
		return err
	}
	success(a.out, "slot %d added", id)
	return nil
}

func cmdSlotList(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "slot list")
	asCSV := fs.Bool("csv", false, "write CSV")
	if err := parse(fs, args); err != nil {
		return err
	}
	list, err := projections.QueryListSlots(ctx, a.rosterQueries())
	if err != nil {
		return err
	}
	g := newGrid("ID", "START", "END", "GENDER")
	for _, s := range list {
		g.add(itoa(s.ID), s.StartTime, s.EndTime, s.Gender)
	}
	return g.render(a.out, *asCSV)
}

func slotAssignment(a *app, name string, args []string) (int64, int64, error) {
	fs := newFlags(a, name)
	memberID := fs.Int64("member", 0, "member id (required)")
	slotID := fs.Int64("slot", 0, "slot id (required)")
	if err := parse(fs, args); err != nil {
		return 0, 0, err
	}
	if err := requireID("member", *memberID); err != nil {
		return 0, 0, err
	}
	if err := requireID("slot", *slotID); err != nil {
		return 0, 0, err
	}
	return *memberID, *slotID, nil
}

func cmdSlotAssign(ctx context.Context, a *app, args []string) error {
	memberID, slotID, err := slotAssignment(a, "slot assign", args)
	if err != nil {
		return err
	}
	if err := orchestrators.ExecuteAssignSlot(ctx, memberID, slotID, orchestrators.RosterDeps{Tx: a.tx}); err != nil {
		return err
	}
	success(a.out, "member %d assigned to slot %d", memberID, slotID)
	return nil
}

func cmdSlotUnassign(ctx context.Context, a *app, args []string) error {
	memberID, slotID, err := slotAssignment(a, "slot unassign", args)
	if err != nil {
		return err
	}
	if err := orchestrators.ExecuteUnassignSlot(ctx, memberID, slotID, orchestrators.RosterDeps{Tx: a.tx}); err != nil {
		return err
	}
	success(a.out, "member %d removed from slot %d", memberID, slotID)
	return nil
}
