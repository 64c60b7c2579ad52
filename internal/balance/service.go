package balance

import (
	"context"

	"lokatiket/internal/ledger"
	"lokatiket/internal/withdrawal"
)

// Summary is a seller's balance sheet, derived on every read from the
// ledger and withdrawal stores. Nothing here is stored.
type Summary struct {
	// Available is the released earnings minus completed withdrawals.
	Available int64 `json:"available"`
	// Pending is earnings still inside the holding period.
	Pending int64 `json:"pending"`
	// Reserved is the amount tied up in pending or approved withdrawal
	// requests; it is not debited from Available until completion.
	Reserved int64 `json:"reserved"`
	// Withdrawable is what the seller may actually request right now.
	Withdrawable int64 `json:"withdrawable"`
	TotalEarned  int64 `json:"total_earned"`
	Withdrawn    int64 `json:"withdrawn"`
	TotalSales   int   `json:"total_sales"`
}

type Service interface {
	GetBalances(ctx context.Context, sellerID int) (*Summary, error)
	Withdrawable(ctx context.Context, sellerID int) (int64, error)
}

type service struct {
	ledgerRepo     ledger.Repository
	withdrawalRepo withdrawal.Repository
}

// NewService builds the read-side aggregator. It never mutates either store
// and is safe to call concurrently with any writer.
func NewService(ledgerRepo ledger.Repository, withdrawalRepo withdrawal.Repository) Service {
	return &service{
		ledgerRepo:     ledgerRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

func (s *service) GetBalances(ctx context.Context, sellerID int) (*Summary, error) {
	available, err := s.ledgerRepo.SumBySellerAndStatus(ctx, sellerID, ledger.StatusAvailable)
	if err != nil {
		return nil, err
	}

	pending, err := s.ledgerRepo.SumBySellerAndStatus(ctx, sellerID, ledger.StatusPending)
	if err != nil {
		return nil, err
	}

	totalSales, err := s.ledgerRepo.CountBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	withdrawn, err := s.withdrawalRepo.SumAmountByStatus(ctx, sellerID, withdrawal.StatusCompleted)
	if err != nil {
		return nil, err
	}

	reserved, err := s.withdrawalRepo.SumAmountByStatus(ctx, sellerID,
		withdrawal.StatusPending, withdrawal.StatusApproved)
	if err != nil {
		return nil, err
	}

	availableBalance := available - withdrawn

	return &Summary{
		Available:    availableBalance,
		Pending:      pending,
		Reserved:     reserved,
		Withdrawable: availableBalance - reserved,
		TotalEarned:  available + pending,
		Withdrawn:    withdrawn,
		TotalSales:   totalSales,
	}, nil
}

func (s *service) Withdrawable(ctx context.Context, sellerID int) (int64, error) {
	summary, err := s.GetBalances(ctx, sellerID)
	if err != nil {
		return 0, err
	}
	return summary.Withdrawable, nil
}
