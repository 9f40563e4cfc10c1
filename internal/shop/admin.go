package shop

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tokokita/internal/domain"
)

// ImageFile is a caller-supplied local image to attach to a product.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ProductInput is the payload for creating a product.
type ProductInput struct {
	Name        string
	Price       int64
	Image       string
	Description string
	Category    string
	Stock       int
}

// ProductPatch updates only the fields that are set.
type ProductPatch struct {
	Name        *string
	Price       *int64
	Image       *string
	Description *string
	Category    *string
	Stock       *int
}

// requireAdmin is the single authorization gate for every mutating
// catalog operation; handlers are not trusted to enforce it.
func (s *Store) requireAdmin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isAdmin {
		return &ValidationError{Field: "role", Reason: "admin only"}
	}
	return nil
}

// uploadImage pushes the image to blob storage and returns its public
// URL. Any failure aborts the surrounding operation: no product row is
// ever written with a dangling local file reference.
func (s *Store) uploadImage(ctx context.Context, img *ImageFile) (string, error) {
	url, err := s.gw.Blobs.Upload(ctx, img.Name, img.ContentType, img.Data)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

func (s *Store) AddProduct(ctx context.Context, in ProductInput, img *ImageFile) (domain.Product, error) {
	if err := s.requireAdmin(); err != nil {
		return domain.Product{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.Product{}, &ValidationError{Field: "name", Reason: "required"}
	}
	if in.Price < 0 {
		return domain.Product{}, &ValidationError{Field: "price", Reason: "must be non-negative"}
	}

	image := in.Image
	if img != nil {
		url, err := s.uploadImage(ctx, img)
		if err != nil {
			return domain.Product{}, err
		}
		image = url
	}

	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Image:       image,
		Description: in.Description,
		Category:    in.Category,
		Stock:       in.Stock,
	}
	if p.Category == "" {
		p.Category = "General"
	}
	if err := s.gw.Products.Insert(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	s.mu.Lock()
	s.catalog = append([]domain.Product{p}, s.catalog...)
	s.mu.Unlock()
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id string, patch ProductPatch, img *ImageFile) (domain.Product, error) {
	if err := s.requireAdmin(); err != nil {
		return domain.Product{}, err
	}

	p, err := s.gw.Products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("load product: %w", err)
	}

	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return domain.Product{}, &ValidationError{Field: "price", Reason: "must be non-negative"}
		}
		p.Price = *patch.Price
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if img != nil {
		url, err := s.uploadImage(ctx, img)
		if err != nil {
			return domain.Product{}, err
		}
		p.Image = url
	}

	if err := s.gw.Products.Update(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	s.mu.Lock()
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			s.catalog[i] = p
			break
		}
	}
	s.mu.Unlock()
	return p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if err := s.gw.Products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.mu.Lock()
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			s.catalog = append(s.catalog[:i], s.catalog[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// FetchProducts refreshes the cached catalog copies; a failed read
// leaves the prior cache.
func (s *Store) FetchProducts(ctx context.Context) error {
	products, err := s.gw.Products.List(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.catalog = products
	s.mu.Unlock()
	return nil
}

// Catalog returns the cached catalog snapshot.
func (s *Store) Catalog() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.catalog))
	copy(out, s.catalog)
	return out
}
