package jobs

import (
	"context"

	"fleetrent-backend/internal/logger"
)

// SendOverdueReminders notifies customers whose contract end date has passed
// without a recorded return. The scan is a pure read; it changes no contract
// state and is safe to run while writes are in flight.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.rental.ListOverdueContracts(ctx, "")
		if err != nil {
			logger.Error("Failed to list overdue contracts", "error", err)
			return
		}

		for i := range overdue {
			item := &overdue[i]
			jr.notifier.ContractOverdue(ctx, item)
			logger.Debug("Sent overdue reminder",
				"contract_id", item.ID,
				"contract_number", item.ContractNumber,
				"customer_id", item.CustomerID,
				"end_date", item.EndDate)
		}

		logger.Info("Overdue reminders sent", "count", len(overdue))
	})
}
