package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImageURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://example.com/a.png", true},
		{"http://cdn.example.co.uk/img/cat.jpeg?w=200&h=100#top", true},
		{"example.com:8080/x?y=1", true},
		{"EXAMPLE.COM/A.PNG", true},
		{"192.168.0.10:9000/bucket/pic.png", true},
		{"not a url", false},
		{"", false},
		{"https://", false},
		{"ftp://example.com/a.png", false},
		{"https://exa mple.com", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidateImageURL(tc.in), "ValidateImageURL(%q)", tc.in)
	}
}

func TestListingWithField(t *testing.T) {
	l, err := Listing{}.WithField(FieldTitle, "  Lamp  ")
	require.NoError(t, err)
	assert.Equal(t, "  Lamp  ", l.Title, "strings are copied verbatim")

	l, err = l.WithField(FieldPrice, "12.50")
	require.NoError(t, err)
	assert.True(t, l.Price.Equal(decimal.RequireFromString("12.5")))

	l, err = l.WithField(FieldCategory, "NFT")
	require.NoError(t, err)
	assert.Equal(t, CategoryNFT, l.Category)

	_, err = l.WithField("colour", "red")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = l.WithField(FieldPrice, "-1")
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = l.WithField(FieldPrice, "ten")
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = l.WithField(FieldCategory, "Toys")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestListingApplyIsAllOrNothing(t *testing.T) {
	title := "Drill"
	badPrice := "abc"
	base := Listing{Title: "old"}

	got, err := base.Apply(ListingPatch{Title: &title, Price: &badPrice})
	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Equal(t, base, got)

	cat := CategoryTools
	got, err = base.Apply(ListingPatch{Title: &title, Category: &cat})
	require.NoError(t, err)
	assert.Equal(t, "Drill", got.Title)
	assert.Equal(t, CategoryTools, got.Category)
	assert.Equal(t, "old", base.Title, "receiver is not mutated")
}

func TestParsePriceEmptyIsZero(t *testing.T) {
	p, err := ParsePrice("   ")
	require.NoError(t, err)
	assert.True(t, p.IsZero())
}
