package service

import (
	"context"

	"github.com/google/uuid"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/pricing"
	"fleetrent-backend/internal/repository"
)

type paymentService struct {
	store    repository.Store
	notifier Notifier
}

func NewPaymentService(store repository.Store, notifier Notifier) PaymentService {
	return &paymentService{store: store, notifier: notifier}
}

// AddPayment inserts a payment and reconciles the owning contract's derived
// amounts in the same transaction. Only RENTAL-typed payments count toward
// the paid sum; deposits and fines settle separate obligations.
func (s *paymentService) AddPayment(ctx context.Context, in AddPaymentInput) (*domain.Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.NewInvalidAmount("amount", "payment amount must be positive")
	}
	if !in.Type.Valid() {
		return nil, domain.NewInvalidAmount("type", "unknown payment type "+string(in.Type))
	}
	if !in.Method.Valid() {
		return nil, domain.NewInvalidAmount("method", "unknown payment method "+string(in.Method))
	}
	if _, err := pricing.ParseDate(in.PaymentDate); err != nil {
		return nil, domain.NewInvalidInterval("payment_date", "expected yyyy-mm-dd, got "+in.PaymentDate)
	}

	reference := in.ReferenceNo
	if reference == "" {
		reference = uuid.NewString()
	}

	var payment *domain.Payment
	err := s.store.WithinTx(ctx, func(uow repository.UnitOfWork) error {
		contract, err := uow.Contracts().GetForUpdate(ctx, in.ContractID)
		if err != nil {
			return err
		}

		payment = &domain.Payment{
			ContractID:  in.ContractID,
			Amount:      in.Amount,
			Type:        in.Type,
			Method:      in.Method,
			PaymentDate: in.PaymentDate,
			ReferenceNo: reference,
			RecordedBy:  in.RecordedBy,
		}
		if err := uow.Payments().Create(ctx, payment); err != nil {
			return err
		}
		return reconcile(ctx, uow, contract)
	})
	if err != nil {
		return nil, err
	}

	writeAudit(ctx, s.store, "create", "payment", payment.ID, in.RecordedBy, nil, payment)
	s.notifier.PaymentRecorded(ctx, payment)
	return payment, nil
}

// DeletePayment removes a payment and re-derives the owning contract's
// amounts from the rows that remain.
func (s *paymentService) DeletePayment(ctx context.Context, paymentID, actorID int64) error {
	var payment *domain.Payment
	err := s.store.WithinTx(ctx, func(uow repository.UnitOfWork) error {
		p, err := uow.Payments().GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		contract, err := uow.Contracts().GetForUpdate(ctx, p.ContractID)
		if err != nil {
			return err
		}
		if err := uow.Payments().Delete(ctx, paymentID); err != nil {
			return err
		}
		payment = p
		return reconcile(ctx, uow, contract)
	})
	if err != nil {
		return err
	}

	writeAudit(ctx, s.store, "delete", "payment", paymentID, actorID, payment, nil)
	return nil
}

// ReconcileContract re-derives paid/remaining/payment-status from the payment
// rows. Running it twice with no new payments is a no-op.
func (s *paymentService) ReconcileContract(ctx context.Context, contractID int64) (*domain.Contract, error) {
	var contract *domain.Contract
	err := s.store.WithinTx(ctx, func(uow repository.UnitOfWork) error {
		c, err := uow.Contracts().GetForUpdate(ctx, contractID)
		if err != nil {
			return err
		}
		if err := reconcile(ctx, uow, c); err != nil {
			return err
		}
		contract = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *paymentService) ListPayments(ctx context.Context, contractID int64) ([]domain.Payment, error) {
	if _, err := s.store.Contracts().GetByID(ctx, contractID); err != nil {
		return nil, err
	}
	return s.store.Payments().ListByContract(ctx, contractID)
}

// reconcile recomputes a contract's derived payment fields from its RENTAL
// payments and persists them. Must run inside the transaction that changed
// the payment rows.
func reconcile(ctx context.Context, uow repository.UnitOfWork, contract *domain.Contract) error {
	paid, err := uow.Payments().SumByType(ctx, contract.ID, domain.PaymentTypeRental)
	if err != nil {
		return err
	}
	contract.PaidAmount = paid
	contract.RemainingAmount = contract.TotalAmount.Sub(paid)
	contract.PaymentStatus = pricing.DerivePaymentStatus(paid, contract.TotalAmount)
	return uow.Contracts().Update(ctx, contract)
}
