package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryNone        Category = ""
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryTools       Category = "Tools"
	CategoryGroceries   Category = "Groceries"
	CategoryNFT         Category = "NFT"
	CategoryOthers      Category = "Others"
)

// Categories is the closed set offered by the listing form, in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryFashion,
	CategoryTools,
	CategoryGroceries,
	CategoryNFT,
	CategoryOthers,
}

func IsValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.TrimSpace(raw))
	if !IsValidCategory(c) {
		return CategoryNone, fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return c, nil
}

// Listing is a draft product record. The zero value is the empty draft.
type Listing struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    Category        `json:"category"`
}

type ListingField string

const (
	FieldTitle       ListingField = "title"
	FieldDescription ListingField = "description"
	FieldPrice       ListingField = "price"
	FieldImageURL    ListingField = "imageUrl"
	FieldCategory    ListingField = "category"
)

// ListingPatch carries the fields a client changed. Nil fields are left alone.
// Price is the raw text as typed into the form.
type ListingPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *string   `json:"price,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Category    *Category `json:"category,omitempty"`
}

// WithField returns a copy of l with a single field replaced.
func (l Listing) WithField(field ListingField, value string) (Listing, error) {
	switch field {
	case FieldTitle:
		l.Title = value
	case FieldDescription:
		l.Description = value
	case FieldImageURL:
		l.ImageURL = value
	case FieldPrice:
		price, err := ParsePrice(value)
		if err != nil {
			return l, err
		}
		l.Price = price
	case FieldCategory:
		c, err := ParseCategory(value)
		if err != nil {
			return l, err
		}
		l.Category = c
	default:
		return l, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return l, nil
}

// Apply returns a copy of l with every non-nil patch field applied. Nothing
// is applied when any field is rejected.
func (l Listing) Apply(p ListingPatch) (Listing, error) {
	next := l
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.ImageURL != nil {
		next.ImageURL = *p.ImageURL
	}
	if p.Price != nil {
		price, err := ParsePrice(*p.Price)
		if err != nil {
			return l, err
		}
		next.Price = price
	}
	if p.Category != nil {
		if !IsValidCategory(*p.Category) {
			return l, fmt.Errorf("%w: %q", ErrUnknownCategory, *p.Category)
		}
		next.Category = *p.Category
	}
	return next, nil
}

// ParsePrice reads a price as entered in the form. A cleared input counts as zero.
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	if price.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: must not be negative", ErrInvalidPrice)
	}
	return price, nil
}

var imageURLPattern = regexp.MustCompile(`(?i)^(https?:\/\/)?` +
	`((([a-z\d]([a-z\d-]*[a-z\d])*)\.?)+[a-z]{2,}|` +
	`((\d{1,3}\.){3}\d{1,3}))` +
	`(\:\d+)?(\/[-a-z\d%_.~+]*)*` +
	`(\?[;&a-z\d%_.~+=-]*)?` +
	`(\#[-a-z\d_]*)?$`)

// ValidateImageURL reports whether raw looks like a URL: optional http(s)
// scheme, a domain name or IPv4 host, then optional port, path, query and fragment.
func ValidateImageURL(raw string) bool {
	return imageURLPattern.MatchString(raw)
}
