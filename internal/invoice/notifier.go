package invoice

import (
	"context"
	"log/slog"
)

// LogNotifier records reminders in the application log. It stands in for a
// real notification channel; delivery is out of scope here.
type LogNotifier struct{}

func (LogNotifier) SendPaymentReminder(_ context.Context, inv *Invoice) error {
	slog.Info("payment reminder queued",
		"invoice_no", inv.InvoiceNo,
		"claimant", inv.ClaimantName,
		"amount_due", inv.AmountDue.StringFixed(2),
	)

	return nil
}
