package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

// emailNotifier delivers lifecycle notifications over SMTP. Every send is
// best-effort: failures are logged, never propagated.
type emailNotifier struct {
	store      repository.Store
	host       string
	port       int
	username   string
	password   string
	from       string
	backOffice string
}

func NewEmailNotifier(store repository.Store, host string, port int, username, password, from, backOffice string) Notifier {
	return &emailNotifier{
		store:      store,
		host:       host,
		port:       port,
		username:   username,
		password:   password,
		from:       from,
		backOffice: backOffice,
	}
}

func (n *emailNotifier) send(to, subject, body string) {
	if to == "" {
		return
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	if n.backOffice != "" && n.backOffice != to {
		m.SetHeader("Cc", n.backOffice)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(n.host, n.port, n.username, n.password)
	if err := d.DialAndSend(m); err != nil {
		logger.Warn("Email notification failed", "to", to, "subject", subject, "error", err)
	}
}

func (n *emailNotifier) customerEmail(ctx context.Context, customerID int64) string {
	customer, err := n.store.Customers().GetByID(ctx, customerID)
	if err != nil {
		logger.Warn("Could not resolve customer for notification", "customer_id", customerID, "error", err)
		return ""
	}
	return customer.Email
}

func (n *emailNotifier) ContractCreated(ctx context.Context, c *domain.Contract) {
	body := fmt.Sprintf("Your rental contract %s has been registered for %s to %s.\nTotal amount: %s. Deposit: %s.",
		c.ContractNumber, c.StartDate, c.EndDate, c.TotalAmount.StringFixed(2), c.DepositAmount.StringFixed(2))
	n.send(n.customerEmail(ctx, c.CustomerID), fmt.Sprintf("Rental contract %s registered", c.ContractNumber), body)
}

func (n *emailNotifier) ContractConfirmed(ctx context.Context, c *domain.Contract) {
	body := fmt.Sprintf("Your rental contract %s has been confirmed. Pickup is scheduled for %s.",
		c.ContractNumber, c.StartDate)
	n.send(n.customerEmail(ctx, c.CustomerID), fmt.Sprintf("Rental contract %s confirmed", c.ContractNumber), body)
}

func (n *emailNotifier) ContractActivated(ctx context.Context, c *domain.Contract) {
	body := fmt.Sprintf("Rental contract %s is now active. The vehicle is due back on %s.",
		c.ContractNumber, c.EndDate)
	n.send(n.customerEmail(ctx, c.CustomerID), fmt.Sprintf("Rental contract %s active", c.ContractNumber), body)
}

func (n *emailNotifier) ContractCompleted(ctx context.Context, c *domain.Contract) {
	body := fmt.Sprintf("Rental contract %s has been completed. Remaining balance: %s.",
		c.ContractNumber, c.RemainingAmount.StringFixed(2))
	n.send(n.customerEmail(ctx, c.CustomerID), fmt.Sprintf("Rental contract %s completed", c.ContractNumber), body)
}

func (n *emailNotifier) ContractCancelled(ctx context.Context, c *domain.Contract) {
	body := fmt.Sprintf("Rental contract %s has been cancelled.", c.ContractNumber)
	if c.CancelReason != "" {
		body += fmt.Sprintf("\nReason: %s", c.CancelReason)
	}
	n.send(n.customerEmail(ctx, c.CustomerID), fmt.Sprintf("Rental contract %s cancelled", c.ContractNumber), body)
}

func (n *emailNotifier) ContractExtended(ctx context.Context, c *domain.Contract, e *domain.Extension) {
	body := fmt.Sprintf("Rental contract %s has been extended from %s to %s (%d days).\nAdditional amount: %s. New total: %s.",
		c.ContractNumber, e.OriginalEndDate, e.NewEndDate, e.ExtensionDays, e.Amount.StringFixed(2), c.TotalAmount.StringFixed(2))
	n.send(n.customerEmail(ctx, c.CustomerID), fmt.Sprintf("Rental contract %s extended", c.ContractNumber), body)
}

func (n *emailNotifier) PaymentRecorded(ctx context.Context, p *domain.Payment) {
	contract, err := n.store.Contracts().GetByID(ctx, p.ContractID)
	if err != nil {
		logger.Warn("Could not resolve contract for payment notification", "contract_id", p.ContractID, "error", err)
		return
	}
	body := fmt.Sprintf("A %s payment of %s was recorded on contract %s (reference %s).\nRemaining balance: %s.",
		p.Type, p.Amount.StringFixed(2), contract.ContractNumber, p.ReferenceNo, contract.RemainingAmount.StringFixed(2))
	n.send(n.customerEmail(ctx, contract.CustomerID), fmt.Sprintf("Payment received on contract %s", contract.ContractNumber), body)
}

func (n *emailNotifier) ContractOverdue(ctx context.Context, item *domain.ContractListItem) {
	body := fmt.Sprintf("Hello %s,\n\nRental contract %s for %s (%s) was due back on %s and has not been returned.\nPlease contact the %s branch.",
		item.CustomerName, item.ContractNumber, item.VehicleLabel, item.PlateNumber, item.EndDate, item.BranchName)
	n.send(item.CustomerEmail, fmt.Sprintf("Rental contract %s is overdue", item.ContractNumber), body)
}
