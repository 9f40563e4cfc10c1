package shop

import (
	"context"

	"tokokita/internal/domain"
)

// ToggleFavorite flips membership by product id and reports the resulting
// state, so "added"/"removed" feedback is accurate before the remote call
// settles. The insert/delete is queued per product; two rapid toggles run
// in order and the remote set ends where the local one did.
func (s *Store) ToggleFavorite(p domain.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, err := s.userID()
	if err != nil {
		return false, err
	}

	idx := s.favoriteIndex(p.ID)
	if idx >= 0 {
		removed := s.favorites[idx]
		s.favorites = append(s.favorites[:idx], s.favorites[idx+1:]...)
		s.writer.Enqueue("favorite/"+p.ID, func(ctx context.Context) error {
			return s.gw.Favorites.Delete(ctx, userID, p.ID)
		}, func() {
			s.restoreFavoriteLocal(removed)
		})
		return false, nil
	}

	s.favorites = append(s.favorites, p)
	s.writer.Enqueue("favorite/"+p.ID, func(ctx context.Context) error {
		return s.gw.Favorites.Insert(ctx, userID, p.ID)
	}, func() {
		s.removeFavoriteLocal(p.ID)
	})
	return true, nil
}

// IsFavorite is a pure read.
func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favoriteIndex(id) >= 0
}

func (s *Store) Favorites() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// FetchFavorites loads the membership ids, then resolves them to product
// snapshots. On failure the prior list stays.
func (s *Store) FetchFavorites(ctx context.Context) error {
	s.mu.Lock()
	userID, err := s.userID()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	ids, err := s.gw.Favorites.ListProductIDs(ctx, userID)
	if err != nil {
		return err
	}
	products, err := s.gw.Products.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.favorites = products
	s.mu.Unlock()
	return nil
}

func (s *Store) favoriteIndex(id string) int {
	for i, f := range s.favorites {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) restoreFavoriteLocal(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.favoriteIndex(p.ID) < 0 {
		s.favorites = append(s.favorites, p)
	}
}

func (s *Store) removeFavoriteLocal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.favoriteIndex(id); idx >= 0 {
		s.favorites = append(s.favorites[:idx], s.favorites[idx+1:]...)
	}
}
