package checkout

import (
	"time"

	"boutique-pos/internal/models"

	"github.com/shopspring/decimal"
)

// GenerateSchedule splits totalAmount into installmentCount equal parts
// rounded to 2 decimal places, due at 1..N month offsets from anchorDate.
// The split is a plain equal division: the last installment is not
// adjusted to absorb rounding drift, so the sum of the generated amounts
// can differ from totalAmount by a few cents. Callers must only invoke
// this for installmentCount >= 2; single-payment sales never produce
// installment rows.
func GenerateSchedule(totalAmount decimal.Decimal, installmentCount int, anchorDate time.Time) []models.Installment {
	if installmentCount < 2 {
		return nil
	}

	perInstallment := totalAmount.Div(decimal.NewFromInt(int64(installmentCount))).Round(2)

	rows := make([]models.Installment, 0, installmentCount)
	for i := 1; i <= installmentCount; i++ {
		rows = append(rows, models.Installment{
			InstallmentNumber: i,
			Amount:            perInstallment,
			// AddDate normalizes month overflow (Jan 31 + 1 month lands in
			// March); that is accepted as-is.
			DueDate: anchorDate.AddDate(0, i, 0),
			Status:  StatusPending,
		})
	}
	return rows
}

// DeriveStatus projects an installment's effective status for a given
// day. Stored status only ever holds pending or paid; overdue exists
// purely as this read-time projection and is never persisted.
func DeriveStatus(installment models.Installment, today time.Time) string {
	if installment.Status == StatusPaid {
		return StatusPaid
	}
	if dateOnly(installment.DueDate).Before(dateOnly(today)) {
		return StatusOverdue
	}
	return StatusPending
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
