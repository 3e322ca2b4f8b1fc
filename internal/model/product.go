package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductImage is an image hosted by the media store.
type ProductImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// Dimensions holds the physical size of a product.
type Dimensions struct {
	Length float64 `json:"length,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Product represents an item in the catalogue.
type Product struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
	CountInStock  int              `json:"countInStock"`
	SKU           string           `json:"sku"`
	Category      string           `json:"category"`
	Brand         string           `json:"brand,omitempty"`
	Sizes         []string         `json:"sizes"`
	Colors        []string         `json:"colors"`
	Collections   string           `json:"collections"`
	Material      string           `json:"material,omitempty"`
	Gender        string           `json:"gender,omitempty"`
	Images        []ProductImage   `json:"images"`
	IsFeatured    bool             `json:"isFeatured"`
	IsPublished   bool             `json:"isPublished"`
	Rating        float64          `json:"rating"`
	NumReviews    int              `json:"numReviews"`
	Tags          []string         `json:"tags,omitempty"`
	Dimensions    *Dimensions      `json:"dimensions,omitempty"`
	Weight        float64          `json:"weight,omitempty"`
	UserID        uuid.UUID        `json:"user"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// PrimaryImage returns the URL of the first image, or an empty string.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// ProductInput carries the mutable product fields. Nil fields are left unchanged on update.
type ProductInput struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice"`
	CountInStock  *int             `json:"countInStock"`
	SKU           *string          `json:"sku"`
	Category      *string          `json:"category"`
	Brand         *string          `json:"brand"`
	Sizes         []string         `json:"sizes"`
	Colors        []string         `json:"colors"`
	Collections   *string          `json:"collections"`
	Material      *string          `json:"material"`
	Gender        *string          `json:"gender"`
	Images        []ProductImage   `json:"images"`
	IsFeatured    *bool            `json:"isFeatured"`
	IsPublished   *bool            `json:"isPublished"`
	Tags          []string         `json:"tags"`
	Dimensions    *Dimensions      `json:"dimensions"`
	Weight        *float64         `json:"weight"`
}

// Apply copies every non-nil field of in onto p.
func (in *ProductInput) Apply(p *Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.DiscountPrice != nil {
		d := *in.DiscountPrice
		p.DiscountPrice = &d
	}
	if in.CountInStock != nil {
		p.CountInStock = *in.CountInStock
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.Sizes != nil {
		p.Sizes = in.Sizes
	}
	if in.Colors != nil {
		p.Colors = in.Colors
	}
	if in.Collections != nil {
		p.Collections = *in.Collections
	}
	if in.Material != nil {
		p.Material = *in.Material
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	if in.IsPublished != nil {
		p.IsPublished = *in.IsPublished
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
	if in.Dimensions != nil {
		p.Dimensions = in.Dimensions
	}
	if in.Weight != nil {
		p.Weight = *in.Weight
	}
}

// Sort orders accepted by the product listing.
const (
	SortPriceAsc   = "priceAsc"
	SortPriceDesc  = "priceDesc"
	SortPopularity = "popularity"
)

// ProductFilter narrows a catalogue listing. Zero values mean "no constraint".
type ProductFilter struct {
	Collection string
	Category   string
	Materials  []string
	Brands     []string
	Sizes      []string
	Color      string
	Gender     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Search     string
	SortBy     string
	Limit      int
}
