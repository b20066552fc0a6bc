package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a salon offering listed in the public catalog.
type Service struct {
	ID          string
	Name        string
	Description *string
	Price       decimal.Decimal
	CreatedAt   time.Time
}

type Catalog struct {
	Services  []Service
	AvgRating *float64
}
