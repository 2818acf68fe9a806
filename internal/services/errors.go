package services

import (
	"fmt"

	"tailorbook/internal/models"
)

type InvalidStatusError struct {
	Status models.OrderStatus
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid order status %q", e.Status)
}
