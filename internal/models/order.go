package models

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID                 string        `json:"id" gorm:"primaryKey;size:64"`
	CustomerID         string        `json:"customer_id" gorm:"size:64;index"`
	Description        string        `json:"description" gorm:"type:text"`
	CustomMeasurements []Measurement `json:"custom_measurements" gorm:"type:text;serializer:json"`
	Materials          []string      `json:"materials" gorm:"type:text;serializer:json"`
	Styles             []string      `json:"styles" gorm:"type:text;serializer:json"`
	Deadline           time.Time     `json:"deadline"`
	Cost               string        `json:"cost" gorm:"size:64"`
	Notes              string        `json:"notes,omitempty" gorm:"type:text"`
	Status             OrderStatus   `json:"status" gorm:"size:16;index;default:'pending'"`
	CreatedAt          time.Time     `json:"created_at" gorm:"index"`
}

func (o *Order) AfterFind(tx *gorm.DB) error {
	o.Deadline = o.Deadline.UTC()
	o.CreatedAt = o.CreatedAt.UTC()
	return nil
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	return s == OrderPending || s == OrderCompleted
}

// Toggle flips pending and completed. Any other value becomes completed.
func (s OrderStatus) Toggle() OrderStatus {
	if s == OrderCompleted {
		return OrderPending
	}
	return OrderCompleted
}

// OrderInput carries the caller-owned fields of a new order. Status is accepted
// so callers can pass a full document, but creation always resets it to pending.
type OrderInput struct {
	CustomerID         string        `json:"customer_id"`
	Description        string        `json:"description"`
	CustomMeasurements []Measurement `json:"custom_measurements"`
	Materials          []string      `json:"materials"`
	Styles             []string      `json:"styles"`
	Deadline           time.Time     `json:"deadline"`
	Cost               string        `json:"cost"`
	Notes              string        `json:"notes"`
	Status             OrderStatus   `json:"status"`
}

type OrderPatch struct {
	CustomerID         *string       `json:"customer_id"`
	Description        *string       `json:"description"`
	CustomMeasurements []Measurement `json:"custom_measurements"`
	Materials          []string      `json:"materials"`
	Styles             []string      `json:"styles"`
	Deadline           *time.Time    `json:"deadline"`
	Cost               *string       `json:"cost"`
	Notes              *string       `json:"notes"`
	Status             *OrderStatus  `json:"status"`
}

func (p OrderPatch) Apply(o *Order) {
	if p.CustomerID != nil {
		o.CustomerID = *p.CustomerID
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	if p.CustomMeasurements != nil {
		o.CustomMeasurements = CloneMeasurements(p.CustomMeasurements)
	}
	if p.Materials != nil {
		o.Materials = CloneStrings(p.Materials)
	}
	if p.Styles != nil {
		o.Styles = CloneStrings(p.Styles)
	}
	if p.Deadline != nil {
		o.Deadline = p.Deadline.UTC()
	}
	if p.Cost != nil {
		o.Cost = *p.Cost
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
}

// FormatCost renders a stored cost with the currency symbol and thousands
// separators, e.g. "45000" -> "₦45,000". Anything that is not a plain decimal
// number (words, exponents, NaN) is returned as-is after the symbol.
func FormatCost(cost, symbol string) string {
	raw := strings.TrimSpace(cost)
	sign, whole, frac, ok := splitAmount(strings.ReplaceAll(raw, ",", ""))
	if !ok {
		return symbol + raw
	}
	n, _ := new(big.Int).SetString(whole, 10)
	cents := ""
	if frac != "" {
		f, err := strconv.ParseFloat("0."+frac, 64)
		if err == nil && f > 0.0049 {
			rounded := fmt.Sprintf("%.2f", f)
			if rounded == "1.00" {
				n.Add(n, big.NewInt(1))
			} else {
				cents = rounded[1:]
			}
		}
	}
	if n.Sign() == 0 && cents == "" {
		sign = ""
	}
	return sign + symbol + groupThousands(n.String()) + cents
}

// splitAmount splits "-1234.5" into "-", "1234" and "5". It accepts an optional
// sign, digits and an optional fraction, and nothing else.
func splitAmount(s string) (sign, whole, frac string, ok bool) {
	switch {
	case strings.HasPrefix(s, "-"):
		sign, s = "-", s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	whole, frac, hasPoint := strings.Cut(s, ".")
	if !allDigits(whole) || !allDigits(frac) || (hasPoint && frac == "") {
		return "", "", "", false
	}
	if whole == "" {
		if frac == "" {
			return "", "", "", false
		}
		whole = "0"
	}
	return sign, whole, frac, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
