package model

import "time"

// Product describes a catalog entry managed through the admin surface.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Images      []string
	Category    string
	SubCategory string
	Sizes       []string
	Bestseller  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
