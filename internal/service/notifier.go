package service

import (
	"context"

	"fleetrent-backend/internal/domain"
)

// NopNotifier is the default hook implementation: it does nothing. Callers
// wire a real notifier (email, message queue) when they want delivery.
type NopNotifier struct{}

func NewNopNotifier() Notifier { return NopNotifier{} }

func (NopNotifier) ContractCreated(context.Context, *domain.Contract) {}
func (NopNotifier) ContractConfirmed(context.Context, *domain.Contract) {}
func (NopNotifier) ContractActivated(context.Context, *domain.Contract) {}
func (NopNotifier) ContractCompleted(context.Context, *domain.Contract) {}
func (NopNotifier) ContractCancelled(context.Context, *domain.Contract) {}
func (NopNotifier) ContractExtended(context.Context, *domain.Contract, *domain.Extension) {}
func (NopNotifier) PaymentRecorded(context.Context, *domain.Payment) {}
func (NopNotifier) ContractOverdue(context.Context, *domain.ContractListItem) {}
