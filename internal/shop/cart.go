package shop

import (
	"context"

	"tokokita/internal/domain"
)

// AddToCart merges the product into the cart: an existing line gains one
// unit, otherwise a new line starts at quantity 1. Every call increments;
// debouncing duplicate clicks is the caller's job. The local change is
// applied immediately and the upsert is queued per cart line.
func (s *Store) AddToCart(p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, err := s.userID()
	if err != nil {
		return err
	}

	idx := s.lineIndex(p.ID)
	var line domain.CartLine
	if idx >= 0 {
		s.cart[idx].Quantity++
		line = s.cart[idx]
		// Compensation is a relative step back, not a snapshot: later
		// queued writes on this line may have settled by then.
		s.enqueueCartUpsert(userID, line, func() {
			s.adjustQuantityLocal(line.Product.ID, -1)
		})
		return nil
	}

	line = domain.CartLine{Product: p, Quantity: 1}
	s.cart = append(s.cart, line)
	s.enqueueCartUpsert(userID, line, func() {
		s.dropLineLocal(p.ID)
	})
	return nil
}

// RemoveFromCart deletes the line and its selection mark. Unknown ids
// are a no-op.
func (s *Store) RemoveFromCart(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, err := s.userID()
	if err != nil {
		return err
	}

	idx := s.lineIndex(id)
	if idx < 0 {
		return nil
	}
	removed := s.cart[idx]
	_, wasSelected := s.selected[id]
	s.cart = append(s.cart[:idx], s.cart[idx+1:]...)
	delete(s.selected, id)

	s.writer.Enqueue("cart/"+id, func(ctx context.Context) error {
		return s.gw.Cart.Delete(ctx, userID, id)
	}, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.lineIndex(id) < 0 {
			s.cart = append(s.cart, removed)
			if wasSelected {
				s.selected[id] = struct{}{}
			}
		}
	})
	return nil
}

// UpdateQuantity sets the line's quantity to max(1, n). The floor is a
// clamp, never a removal.
func (s *Store) UpdateQuantity(id string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, err := s.userID()
	if err != nil {
		return err
	}

	idx := s.lineIndex(id)
	if idx < 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	delta := n - s.cart[idx].Quantity
	s.cart[idx].Quantity = n

	s.writer.Enqueue("cart/"+id, func(ctx context.Context) error {
		return s.gw.Cart.SetQuantity(ctx, userID, id, n)
	}, func() {
		s.adjustQuantityLocal(id, -delta)
	})
	return nil
}

// ToggleSelectCartItem flips the line's checkout selection. Pure local;
// unknown ids are ignored so the selection stays a subset of live lines.
func (s *Store) ToggleSelectCartItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lineIndex(id) < 0 {
		return
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
}

// SelectAllCartItems sets the selection to exactly the current line ids.
func (s *Store) SelectAllCartItems() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{}, len(s.cart))
	for _, l := range s.cart {
		s.selected[l.Product.ID] = struct{}{}
	}
}

func (s *Store) DeselectAllCartItems() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{})
}

// Cart returns a snapshot copy of the cart lines in add order.
func (s *Store) Cart() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.cart))
	copy(out, s.cart)
	return out
}

// SelectedIDs returns the selected line ids in cart order.
func (s *Store) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedIDsLocked()
}

// SelectedLines returns snapshots of the lines slated for checkout.
func (s *Store) SelectedLines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLinesLocked()
}

// FetchCart replaces the local cart from the gateway. On failure the
// prior lines stay; stale selection marks are pruned on success.
func (s *Store) FetchCart(ctx context.Context) error {
	s.mu.Lock()
	userID, err := s.userID()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	lines, err := s.gw.Cart.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = lines
	for id := range s.selected {
		if s.lineIndex(id) < 0 {
			delete(s.selected, id)
		}
	}
	return nil
}

func (s *Store) lineIndex(id string) int {
	for i, l := range s.cart {
		if l.Product.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) selectedIDsLocked() []string {
	out := make([]string, 0, len(s.selected))
	for _, l := range s.cart {
		if _, ok := s.selected[l.Product.ID]; ok {
			out = append(out, l.Product.ID)
		}
	}
	return out
}

func (s *Store) selectedLinesLocked() []domain.CartLine {
	out := make([]domain.CartLine, 0, len(s.selected))
	for _, l := range s.cart {
		if _, ok := s.selected[l.Product.ID]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (s *Store) enqueueCartUpsert(userID string, line domain.CartLine, compensate func()) {
	s.writer.Enqueue("cart/"+line.Product.ID, func(ctx context.Context) error {
		return s.gw.Cart.Upsert(ctx, userID, line)
	}, compensate)
}

// adjustQuantityLocal is a compensation patch; it applies a relative
// delta with a floor of 1 and takes the lock itself.
func (s *Store) adjustQuantityLocal(id string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.lineIndex(id); idx >= 0 {
		q := s.cart[idx].Quantity + delta
		if q < 1 {
			q = 1
		}
		s.cart[idx].Quantity = q
	}
}

func (s *Store) dropLineLocal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.lineIndex(id); idx >= 0 {
		s.cart = append(s.cart[:idx], s.cart[idx+1:]...)
		delete(s.selected, id)
	}
}
