package order

import (
	"context"
	"errors"
	"fmt"

	"lokatiket/internal/ledger"
	"lokatiket/internal/logger"
	"lokatiket/internal/metrics"
	"lokatiket/internal/ticket"
)

type Service interface {
	PlaceOrder(ctx context.Context, customerID int, req PlaceOrderRequest) (*OrderWithItems, error)
	// ConfirmPayment is the payment gateway's entry point: it marks the
	// order paid and records one ledger entry per item for each seller.
	// Safe to retry: a repeat call on a paid order re-runs settlement,
	// skipping items already recorded and filling in any that were missed.
	ConfirmPayment(ctx context.Context, orderID int) (*Order, error)
	GetOrder(ctx context.Context, customerID, orderID int) (*OrderWithItems, error)
	ListMyOrders(ctx context.Context, customerID int) ([]Order, error)
}

type service struct {
	orderRepo  Repository
	ticketRepo ticket.Repository
	ledgerRepo ledger.Repository
}

func NewService(orderRepo Repository, ticketRepo ticket.Repository, ledgerRepo ledger.Repository) Service {
	return &service{
		orderRepo:  orderRepo,
		ticketRepo: ticketRepo,
		ledgerRepo: ledgerRepo,
	}
}

func (s *service) PlaceOrder(ctx context.Context, customerID int, req PlaceOrderRequest) (*OrderWithItems, error) {
	items := make([]Item, 0, len(req.Items))
	for _, line := range req.Items {
		tkt, err := s.ticketRepo.GetByID(ctx, line.TicketID)
		if err != nil {
			return nil, err
		}

		if err := s.ticketRepo.DecrementQuota(ctx, tkt.ID, line.Quantity); err != nil {
			return nil, err
		}

		items = append(items, Item{
			TicketID:  tkt.ID,
			SellerID:  tkt.SellerID,
			Quantity:  line.Quantity,
			UnitPrice: tkt.Price,
			Subtotal:  tkt.Price * int64(line.Quantity),
		})
	}

	order, err := s.orderRepo.CreateOrder(ctx, customerID, items)
	if err != nil {
		return nil, err
	}

	created, err := s.orderRepo.GetItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("order placed",
		"order_id", order.ID,
		"customer_id", customerID,
		"total", order.TotalAmount,
	)

	return &OrderWithItems{Order: *order, Items: created}, nil
}

func (s *service) ConfirmPayment(ctx context.Context, orderID int) (*Order, error) {
	order, err := s.orderRepo.MarkPaid(ctx, orderID)
	if err != nil {
		if !errors.Is(err, ErrAlreadyPaid) {
			return nil, err
		}

		// Retried confirmation. The order row is already past
		// awaiting_payment, but an earlier attempt may have failed
		// mid-settlement, so the recording loop below must still run.
		order, err = s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if order.Status != StatusPaid {
			return nil, ErrAlreadyPaid
		}
	} else {
		metrics.RecordOrderPaid()
	}

	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		_, err := s.ledgerRepo.RecordSale(ctx, order.ID, item.TicketID, item.SellerID, item.Subtotal)
		if err != nil {
			// A duplicate means this item was already settled by an earlier
			// confirmation attempt; everything else is a real failure.
			if errors.Is(err, ledger.ErrDuplicateEntry) {
				continue
			}
			return nil, fmt.Errorf("record sale for order %d ticket %d: %w", order.ID, item.TicketID, err)
		}
		metrics.RecordLedgerEntry()
	}

	logger.Info("payment confirmed",
		"order_id", order.ID,
		"items", len(items),
	)

	return order, nil
}

func (s *service) GetOrder(ctx context.Context, customerID, orderID int) (*OrderWithItems, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}

	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &OrderWithItems{Order: *order, Items: items}, nil
}

func (s *service) ListMyOrders(ctx context.Context, customerID int) ([]Order, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID)
}
