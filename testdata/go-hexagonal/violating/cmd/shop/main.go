package main

import (
	"fmt"

	"example.com/shop/internal/orders/application"
)

func main() { fmt.Println(application.OrderService{}) }
