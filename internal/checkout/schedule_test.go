package checkout

import (
	"testing"
	"time"

	"boutique-pos/internal/models"
)

func TestGenerateScheduleEqualSplitWithDrift(t *testing.T) {
	anchor := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	rows := GenerateSchedule(dec("100.00"), 3, anchor)
	if len(rows) != 3 {
		t.Fatalf("expected 3 installments, got %d", len(rows))
	}

	wantDue := []time.Time{
		time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
	}

	sum := dec("0")
	for i, row := range rows {
		if row.InstallmentNumber != i+1 {
			t.Errorf("row %d: number = %d", i, row.InstallmentNumber)
		}
		if !row.Amount.Equal(dec("33.33")) {
			t.Errorf("row %d: amount = %s, want 33.33", i, row.Amount)
		}
		if !row.DueDate.Equal(wantDue[i]) {
			t.Errorf("row %d: due = %s, want %s", i, row.DueDate, wantDue[i])
		}
		if row.Status != StatusPending {
			t.Errorf("row %d: status = %s, want pending", i, row.Status)
		}
		if row.PaymentDate != nil {
			t.Errorf("row %d: fresh installment has a payment date", i)
		}
		sum = sum.Add(row.Amount)
	}

	// The equal split is not reconciled: 3 x 33.33 = 99.99, one cent
	// short of the total.
	if !sum.Equal(dec("99.99")) {
		t.Errorf("sum = %s, want 99.99", sum)
	}
}

func TestGenerateScheduleExactSplit(t *testing.T) {
	anchor := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	rows := GenerateSchedule(dec("100.00"), 4, anchor)
	if len(rows) != 4 {
		t.Fatalf("expected 4 installments, got %d", len(rows))
	}
	for i, row := range rows {
		if !row.Amount.Equal(dec("25.00")) {
			t.Errorf("row %d: amount = %s, want 25.00", i, row.Amount)
		}
	}
}

func TestGenerateScheduleBelowTwoProducesNothing(t *testing.T) {
	anchor := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if rows := GenerateSchedule(dec("100.00"), 1, anchor); rows != nil {
		t.Errorf("count 1 must not produce rows, got %d", len(rows))
	}
	if rows := GenerateSchedule(dec("100.00"), 0, anchor); rows != nil {
		t.Errorf("count 0 must not produce rows, got %d", len(rows))
	}
}

func TestGenerateScheduleMonthOverflowNormalizes(t *testing.T) {
	// Jan 31 + 1 month has no Feb 31; Go's AddDate rolls it into March.
	anchor := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	rows := GenerateSchedule(dec("60.00"), 2, anchor)
	want := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC) // 2024 is a leap year
	if !rows[0].DueDate.Equal(want) {
		t.Errorf("first due = %s, want %s", rows[0].DueDate, want)
	}
}

func TestDeriveStatus(t *testing.T) {
	today := time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)
	paidAt := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		installment models.Installment
		want        string
	}{
		{
			name:        "pending with future due date",
			installment: models.Installment{Status: StatusPending, DueDate: today.AddDate(0, 0, 1)},
			want:        StatusPending,
		},
		{
			name:        "pending due today is not overdue",
			installment: models.Installment{Status: StatusPending, DueDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
			want:        StatusPending,
		},
		{
			name:        "pending due yesterday is overdue",
			installment: models.Installment{Status: StatusPending, DueDate: today.AddDate(0, 0, -1)},
			want:        StatusOverdue,
		},
		{
			name:        "paid wins regardless of due date",
			installment: models.Installment{Status: StatusPaid, DueDate: today.AddDate(0, 0, -30), PaymentDate: &paidAt},
			want:        StatusPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.installment, today); got != tt.want {
				t.Errorf("DeriveStatus = %s, want %s", got, tt.want)
			}
		})
	}
}
