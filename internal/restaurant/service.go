package restaurant

import (
	"context"
	"strings"
)

type CreateRequest struct {
	OwnerID string
	Name    string
	Address string
	Cuisine string
}

type UpdateRequest struct {
	Name    *string
	Address *string
	Cuisine *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Restaurant, error)
	GetByID(ctx context.Context, id int64) (*Restaurant, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error)
	Update(ctx context.Context, id int64, ownerID string, req UpdateRequest) (*Restaurant, error)
	Delete(ctx context.Context, id int64, ownerID string) error

	// GetOwned fetches a restaurant and verifies ownership in one step.
	// Missing and unowned records are indistinguishable to the caller.
	GetOwned(ctx context.Context, id int64, ownerID string) (*Restaurant, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Restaurant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	rest := &Restaurant{
		OwnerID: req.OwnerID,
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		Cuisine: req.Cuisine,
	}

	if err := s.repo.Create(ctx, rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Restaurant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) GetOwned(ctx context.Context, id int64, ownerID string) (*Restaurant, error) {
	rest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rest.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return rest, nil
}

func (s *service) Update(ctx context.Context, id int64, ownerID string, req UpdateRequest) (*Restaurant, error) {
	rest, err := s.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		rest.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		rest.Address = *req.Address
	}
	if req.Cuisine != nil {
		rest.Cuisine = *req.Cuisine
	}

	if err := s.repo.Update(ctx, rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *service) Delete(ctx context.Context, id int64, ownerID string) error {
	if _, err := s.GetOwned(ctx, id, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
