package payment_test

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/adapters/storage/payment"
	"gymdesk/internal/adapters/storage/storagetest"
	"gymdesk/internal/domain/apperr"
	domain "gymdesk/internal/domain/payment"
)

func seed(t *testing.T, store *payment.SQLiteStore, memberID int64, amount float64, paid, due string) int64 {
	t.Helper()
	id, err := store.Create(context.Background(), domain.Payment{MemberID: memberID, Amount: amount, PaidDate: paid, DueDate: due})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return id
}

// TestSQLiteStore_CreateUnknownMember maps the foreign key failure to ErrNotFound.
func TestSQLiteStore_CreateUnknownMember(t *testing.T) {
	store := payment.NewSQLiteStore(storagetest.Open(t))
	_, err := store.Create(context.Background(), domain.Payment{MemberID: 9, Amount: 5, PaidDate: "2024-01-01"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// TestSQLiteStore_ListByMemberAndDelete covers per-member listing and removal.
func TestSQLiteStore_ListByMemberAndDelete(t *testing.T) {
	db := storagetest.Open(t)
	store := payment.NewSQLiteStore(db)
	ann := storagetest.InsertMember(t, db, "Ann", "Female", "")
	ben := storagetest.InsertMember(t, db, "Ben", "Male", "")
	seed(t, store, ann, 10, "2024-01-01", "")
	seed(t, store, ann, 20, "2024-02-01", "2024-03-01")
	seed(t, store, ben, 30, "2024-02-01", "")

	list, err := store.ListByMember(context.Background(), ann)
	if err != nil {
		t.Fatalf("ListByMember: %v", err)
	}
	if len(list) != 2 || list[0].PaidDate != "2024-02-01" || list[0].DueDate != "2024-03-01" || list[1].DueDate != "" {
		t.Errorf("ListByMember = %+v", list)
	}

	n, err := store.DeleteByMember(context.Background(), ann)
	if err != nil || n != 2 {
		t.Errorf("DeleteByMember = %d, %v; want 2, nil", n, err)
	}
	if c := storagetest.Count(t, db, "payments", ""); c != 1 {
		t.Errorf("remaining payments = %d, want 1", c)
	}
}

// TestSQLiteStore_Reports covers the range list, monthly revenue and overdue queries.
func TestSQLiteStore_Reports(t *testing.T) {
	db := storagetest.Open(t)
	store := payment.NewSQLiteStore(db)
	ctx := context.Background()
	ann := storagetest.InsertMember(t, db, "Ann", "Female", "")
	seed(t, store, ann, 10, "2024-01-05", "2024-02-05")
	seed(t, store, ann, 15, "2024-01-20", "2024-06-09")
	seed(t, store, ann, 25, "2024-03-02", "2024-06-10")
	seed(t, store, ann, 40, "2024-04-01", "")

	rows, err := store.List(ctx, payment.ListFilter{From: "2024-01-10", To: "2024-03-31"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 || rows[0].PaidDate != "2024-03-02" || rows[0].MemberName != "Ann" {
		t.Errorf("List = %+v", rows)
	}

	months, err := store.RevenueByMonth(ctx, payment.ListFilter{})
	if err != nil {
		t.Fatalf("RevenueByMonth: %v", err)
	}
	want := []payment.MonthTotal{{"2024-01", 25, 2}, {"2024-03", 25, 1}, {"2024-04", 40, 1}}
	if len(months) != len(want) {
		t.Fatalf("RevenueByMonth = %+v, want %+v", months, want)
	}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("month[%d] = %+v, want %+v", i, months[i], want[i])
		}
	}

	overdue, err := store.ListOverdue(ctx, "2024-06-10")
	if err != nil {
		t.Fatalf("ListOverdue: %v", err)
	}
	if len(overdue) != 2 || overdue[0].DueDate != "2024-02-05" || overdue[1].DueDate != "2024-06-09" {
		t.Errorf("ListOverdue = %+v", overdue)
	}
}
