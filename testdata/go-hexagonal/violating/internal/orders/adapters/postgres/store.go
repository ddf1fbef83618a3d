package postgres

import "example.com/shop/internal/orders/domain"

type Store struct{}

func NewStore() *Store { return &Store{} }

func (s *Store) Find(id string) (*domain.Order, error) {
	return &domain.Order{ID: id}, nil
}
