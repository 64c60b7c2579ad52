package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lokatiket/internal/logger"
	"lokatiket/internal/metrics"
)

var (
	ErrBelowMinimum        = errors.New("amount is below the minimum withdrawal")
	ErrInsufficientBalance = errors.New("amount exceeds withdrawable balance")
	ErrValidation          = errors.New("invalid withdrawal input")
)

// BalanceReader is the slice of the balance aggregator this service needs:
// the amount a seller may cash out right now (available minus reserved).
type BalanceReader interface {
	Withdrawable(ctx context.Context, sellerID int) (int64, error)
}

// Notifier delivers best-effort seller notifications. Failures are logged,
// never returned: a lost email must not undo a committed transition.
type Notifier interface {
	WithdrawalReviewed(ctx context.Context, req *Request)
	WithdrawalPaid(ctx context.Context, req *Request)
}

type Service interface {
	Create(ctx context.Context, sellerID int, req CreateRequest) (*Request, error)
	GetForSeller(ctx context.Context, sellerID, requestID int) (*Request, error)
	ListBySeller(ctx context.Context, sellerID, limit int) ([]Request, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]Request, error)

	Approve(ctx context.Context, requestID, adminID int, adminNotes string) (*Request, error)
	Reject(ctx context.Context, requestID, adminID int, adminNotes string) (*Request, error)
	Complete(ctx context.Context, requestID int) (*Request, error)
}

type service struct {
	repo          Repository
	balances      BalanceReader
	notifier      Notifier
	minWithdrawal int64
}

func NewService(repo Repository, balances BalanceReader, notifier Notifier, minWithdrawal int64) Service {
	return &service{
		repo:          repo,
		balances:      balances,
		notifier:      notifier,
		minWithdrawal: minWithdrawal,
	}
}

func (s *service) Create(ctx context.Context, sellerID int, req CreateRequest) (*Request, error) {
	if req.Amount < s.minWithdrawal {
		return nil, fmt.Errorf("%w: minimum is %d, got %d", ErrBelowMinimum, s.minWithdrawal, req.Amount)
	}

	hasPending, err := s.repo.HasPendingForSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if hasPending {
		return nil, ErrPendingRequestExists
	}

	withdrawable, err := s.balances.Withdrawable(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if req.Amount > withdrawable {
		return nil, fmt.Errorf("%w: withdrawable is %d, requested %d", ErrInsufficientBalance, withdrawable, req.Amount)
	}

	if strings.TrimSpace(req.BankName) == "" {
		return nil, fmt.Errorf("%w: bank name is required", ErrValidation)
	}
	if strings.TrimSpace(req.AccountNumber) == "" {
		return nil, fmt.Errorf("%w: account number is required", ErrValidation)
	}
	if strings.TrimSpace(req.AccountHolder) == "" {
		return nil, fmt.Errorf("%w: account holder is required", ErrValidation)
	}

	// The repository re-checks the pending rule under the seller lock; a
	// concurrent create surfaces here as ErrPendingRequestExists and the
	// caller retries the whole flow, balance check included.
	request, err := s.repo.Create(ctx, sellerID, req)
	if err != nil {
		return nil, err
	}

	metrics.RecordWithdrawalTransition(string(StatusPending), request.Amount)
	logger.Info("withdrawal requested",
		"request_id", request.ID,
		"seller_id", sellerID,
		"amount", request.Amount,
	)

	return request, nil
}

func (s *service) GetForSeller(ctx context.Context, sellerID, requestID int) (*Request, error) {
	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.SellerID != sellerID {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, requestID)
	}
	return request, nil
}

func (s *service) ListBySeller(ctx context.Context, sellerID, limit int) ([]Request, error) {
	return s.repo.ListBySeller(ctx, sellerID, limit)
}

func (s *service) ListByStatus(ctx context.Context, status Status, limit int) ([]Request, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.repo.ListByStatus(ctx, status, limit)
}

func (s *service) Approve(ctx context.Context, requestID, adminID int, adminNotes string) (*Request, error) {
	request, err := s.repo.Approve(ctx, requestID, adminID, adminNotes)
	if err != nil {
		return nil, err
	}

	metrics.RecordWithdrawalTransition(string(StatusApproved), request.Amount)
	logger.Info("withdrawal approved",
		"request_id", request.ID,
		"seller_id", request.SellerID,
		"reviewer_id", adminID,
	)

	if s.notifier != nil {
		s.notifier.WithdrawalReviewed(ctx, request)
	}

	return request, nil
}

func (s *service) Reject(ctx context.Context, requestID, adminID int, adminNotes string) (*Request, error) {
	// A rejection without a reason is useless to the seller.
	if strings.TrimSpace(adminNotes) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	request, err := s.repo.Reject(ctx, requestID, adminID, adminNotes)
	if err != nil {
		return nil, err
	}

	metrics.RecordWithdrawalTransition(string(StatusRejected), request.Amount)
	logger.Info("withdrawal rejected",
		"request_id", request.ID,
		"seller_id", request.SellerID,
		"reviewer_id", adminID,
	)

	if s.notifier != nil {
		s.notifier.WithdrawalReviewed(ctx, request)
	}

	return request, nil
}

func (s *service) Complete(ctx context.Context, requestID int) (*Request, error) {
	request, err := s.repo.Complete(ctx, requestID)
	if err != nil {
		return nil, err
	}

	metrics.RecordWithdrawalTransition(string(StatusCompleted), request.Amount)
	logger.Info("withdrawal completed",
		"request_id", request.ID,
		"seller_id", request.SellerID,
		"amount", request.Amount,
	)

	if s.notifier != nil {
		s.notifier.WithdrawalPaid(ctx, request)
	}

	return request, nil
}
