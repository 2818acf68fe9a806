package services

import (
	"sort"

	"tailorbook/internal/models"
)

// Read-side projections. None of these touch storage; they work on a snapshot
// returned by a repository List call and are recomputed on every call.

type StatusCounts struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

func FilterByCustomer(orders []models.Order, customerID string) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out
}

// FilterByStatus returns the orders in status, sorted the way that status is
// shown: pending soonest deadline first, completed newest first.
func FilterByStatus(orders []models.Order, status models.OrderStatus) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	switch status {
	case models.OrderPending:
		SortByDeadline(out)
	case models.OrderCompleted:
		SortNewestFirst(out)
	}
	return out
}

// PartitionByStatus splits orders into sorted pending and completed views.
func PartitionByStatus(orders []models.Order) (pending, completed []models.Order) {
	return FilterByStatus(orders, models.OrderPending), FilterByStatus(orders, models.OrderCompleted)
}

func SortByDeadline(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Deadline.Before(orders[j].Deadline)
	})
}

func SortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func CountByStatus(orders []models.Order) StatusCounts {
	var c StatusCounts
	for _, o := range orders {
		switch o.Status {
		case models.OrderPending:
			c.Pending++
		case models.OrderCompleted:
			c.Completed++
		}
	}
	c.Total = len(orders)
	return c
}

// CountByCustomer groups status counts by customer id.
func CountByCustomer(orders []models.Order) map[string]StatusCounts {
	out := make(map[string]StatusCounts)
	for _, o := range orders {
		c := out[o.CustomerID]
		switch o.Status {
		case models.OrderPending:
			c.Pending++
		case models.OrderCompleted:
			c.Completed++
		}
		c.Total++
		out[o.CustomerID] = c
	}
	return out
}

func ItemsInAlbum(items []models.GalleryItem, albumID string) []models.GalleryItem {
	out := make([]models.GalleryItem, 0, len(items))
	for _, item := range items {
		if item.AlbumID == albumID {
			out = append(out, item)
		}
	}
	return out
}
