package shop

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tokokita/internal/domain"
)

// checkoutDraft is the in-progress shipping/payment/address state.
// "Ready" is never stored; it is computed from the draft plus the
// selection set.
type checkoutDraft struct {
	address         string
	shippingMethod  string
	shippingCost    int64
	shippingSet     bool
	selectedPayment *domain.PaymentMethod
}

// Draft is a read-only view of the checkout draft for screens.
type Draft struct {
	Address         string                `json:"address"`
	ShippingMethod  string                `json:"shipping_method,omitempty"`
	ShippingCost    int64                 `json:"shipping_cost"`
	SelectedPayment *domain.PaymentMethod `json:"selected_payment,omitempty"`
}

func (s *Store) SetAddress(a string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.address = a
}

func (s *Store) SetShipping(method string, cost int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cost < 0 {
		cost = 0
	}
	s.draft.shippingMethod = method
	s.draft.shippingCost = cost
	s.draft.shippingSet = true
}

func (s *Store) SetPaymentMethod(m domain.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.selectedPayment = &m
}

func (s *Store) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := Draft{
		Address:        s.draft.address,
		ShippingMethod: s.draft.shippingMethod,
		ShippingCost:   s.draft.shippingCost,
	}
	if s.draft.selectedPayment != nil {
		m := *s.draft.selectedPayment
		d.SelectedPayment = &m
	}
	return d
}

// Ready reports whether checkout may proceed: non-empty selection,
// non-blank address, shipping chosen, payment chosen.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.missingFieldLocked() == ""
}

func (s *Store) missingFieldLocked() string {
	switch {
	case len(s.selected) == 0:
		return "selection"
	case strings.TrimSpace(s.draft.address) == "":
		return "address"
	case !s.draft.shippingSet:
		return "shipping"
	case s.draft.selectedPayment == nil:
		return "payment"
	}
	return ""
}

// SelectedSubtotal sums price x quantity over the selected lines.
// Integer arithmetic throughout.
func (s *Store) SelectedSubtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedSubtotalLocked()
}

func (s *Store) selectedSubtotalLocked() int64 {
	var sum int64
	for _, l := range s.selectedLinesLocked() {
		sum += l.Subtotal()
	}
	return sum
}

// CheckoutTotal is subtotal plus the drafted shipping cost.
func (s *Store) CheckoutTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedSubtotalLocked() + s.draft.shippingCost
}

// Checkout validates the draft, writes the order atomically (header,
// line snapshots, and remote removal of the checked-out cart lines in
// one gateway transaction), then clears the selected lines, the
// selection set, and the draft. On remote failure everything local is
// left untouched so the user can retry.
func (s *Store) Checkout(ctx context.Context) (domain.Order, error) {
	s.mu.Lock()
	userID, err := s.userID()
	if err != nil {
		s.mu.Unlock()
		return domain.Order{}, err
	}
	if field := s.missingFieldLocked(); field != "" {
		s.mu.Unlock()
		return domain.Order{}, &ValidationError{Field: field, Reason: "required before checkout"}
	}

	lines := s.selectedLinesLocked()
	ids := s.selectedIDsLocked()
	order := domain.Order{
		ID:             uuid.NewString(),
		Lines:          make([]domain.OrderLine, 0, len(lines)),
		ShippingCost:   s.draft.shippingCost,
		Address:        strings.TrimSpace(s.draft.address),
		PaymentMethod:  s.draft.selectedPayment.Name,
		ShippingMethod: s.draft.shippingMethod,
		CreatedAt:      time.Now().UTC(),
	}
	for _, l := range lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
		})
		order.Subtotal += l.Subtotal()
	}
	order.Total = order.Subtotal + order.ShippingCost
	s.mu.Unlock()

	// Settle queued cart writes first so the order transaction's line
	// removal cannot be resurrected by a late upsert.
	s.writer.Flush()

	if err := s.gw.Orders.Place(ctx, userID, order, ids); err != nil {
		return domain.Order{}, fmt.Errorf("place order: %w", err)
	}

	s.mu.Lock()
	for _, id := range ids {
		if idx := s.lineIndex(id); idx >= 0 {
			s.cart = append(s.cart[:idx], s.cart[idx+1:]...)
		}
		delete(s.selected, id)
	}
	s.draft = checkoutDraft{}
	s.orders = append([]domain.Order{order}, s.orders...)
	s.mu.Unlock()

	return order, nil
}

// Orders returns the order history snapshot, newest first.
func (s *Store) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// FetchOrders replaces the local history from the gateway; prior state
// survives a failed read.
func (s *Store) FetchOrders(ctx context.Context) error {
	s.mu.Lock()
	userID, err := s.userID()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	orders, err := s.gw.Orders.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}
