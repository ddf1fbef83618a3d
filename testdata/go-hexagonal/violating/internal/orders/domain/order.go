package domain

import (
	"net/http"

	"example.com/shop/internal/orders/adapters/postgres"
)

type Order struct {
	ID     string
	Client *http.Client
}

type repo interface {
	Find(id string) (*Order, error)
}

func Load(id string) (*Order, error) {
	return postgres.NewStore().Find(id)
}
