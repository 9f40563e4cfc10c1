package shop

import (
	"context"
	"fmt"

	applog "tokokita/internal/log"

	"tokokita/internal/domain"
)

// Login exchanges credentials with the gateway, then eagerly loads
// profile, favorites, cart, and orders, in that order. Failed fetches
// are logged and leave their slice at its prior (empty) value.
func (s *Store) Login(ctx context.Context, email, password string) error {
	u, err := s.gw.Auth.SignIn(ctx, email, password, s.sid)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = u
	s.mu.Unlock()

	s.refreshAll(ctx)
	return nil
}

// Register signs the account up; the caller signs in separately.
func (s *Store) Register(ctx context.Context, email, password string) error {
	return s.gw.Auth.SignUp(ctx, email, password)
}

// Restore rebinds a prior session: if the sid still maps to a user the
// container loads the same four slices login does.
func (s *Store) Restore(ctx context.Context) error {
	u, err := s.gw.Auth.SessionUser(ctx, s.sid)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = u
	s.mu.Unlock()

	s.refreshAll(ctx)
	return nil
}

// Logout clears every per-user slice. The payment taxonomy and the
// theme preference are process-wide and survive.
func (s *Store) Logout(ctx context.Context) error {
	s.writer.Flush()
	if err := s.gw.Auth.SignOut(ctx, s.sid); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}

	s.mu.Lock()
	s.user = nil
	s.profile = nil
	s.isAdmin = false
	s.cart = nil
	s.favorites = nil
	s.orders = nil
	s.selected = make(map[string]struct{})
	s.draft = checkoutDraft{}
	s.mu.Unlock()
	return nil
}

// FetchProfile loads the profile row and derives the admin flag from
// its role field.
func (s *Store) FetchProfile(ctx context.Context) error {
	s.mu.Lock()
	userID, err := s.userID()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	p, err := s.gw.Profiles.Get(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.profile = &p
	s.isAdmin = p.IsAdmin()
	s.mu.Unlock()
	return nil
}

// UpdateProfile writes name and address remotely, then patches the
// local copy.
func (s *Store) UpdateProfile(ctx context.Context, fullName, address string) error {
	s.mu.Lock()
	userID, err := s.userID()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := s.gw.Profiles.Upsert(ctx, userID, fullName, address); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	s.mu.Lock()
	if s.profile == nil {
		s.profile = &domain.Profile{ID: userID}
	}
	s.profile.FullName = fullName
	s.profile.Address = address
	s.mu.Unlock()
	return nil
}

func (s *Store) refreshAll(ctx context.Context) {
	if err := s.FetchProfile(ctx); err != nil {
		applog.Error(nil, "bootstrap.profile.fail", err, map[string]any{"sid": s.sid})
	}
	if err := s.FetchFavorites(ctx); err != nil {
		applog.Error(nil, "bootstrap.favorites.fail", err, map[string]any{"sid": s.sid})
	}
	if err := s.FetchCart(ctx); err != nil {
		applog.Error(nil, "bootstrap.cart.fail", err, map[string]any{"sid": s.sid})
	}
	if err := s.FetchOrders(ctx); err != nil {
		applog.Error(nil, "bootstrap.orders.fail", err, map[string]any{"sid": s.sid})
	}
}
