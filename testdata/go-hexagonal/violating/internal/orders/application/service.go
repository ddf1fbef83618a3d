package application

import "example.com/shop/internal/orders/domain"

type OrderRepository interface {
	Find(id string) (*domain.Order, error)
}

type OrderService struct {
	repo OrderRepository
}
