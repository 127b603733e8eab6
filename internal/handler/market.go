package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/model"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/repository"
)

// MarketHandler exposes the public marketplace browse endpoints.  No
// authentication is required; guests can inspect listings before signing
// up, the same way the storefront shows the marketplace to anonymous
// visitors.
type MarketHandler struct {
	Listings *repository.ListingRepo
}

func NewMarketHandler(l *repository.ListingRepo) *MarketHandler {
	return &MarketHandler{Listings: l}
}

// listingPart is the public JSON shape of a listing.  Price goes out in
// cents; the frontend formats currency.
type listingPart struct {
	ID         string `json:"id"`
	Project    string `json:"project"`
	Location   string `json:"location"`
	Credits    uint64 `json:"credits"`
	PriceCents uint64 `json:"price_cents"`
	Verified   bool   `json:"verified"`
	ImageURL   string `json:"image_url"`
}

func toListingPart(l model.CreditListing) listingPart {
	return listingPart{
		ID:         l.ID,
		Project:    l.Project,
		Location:   l.Location,
		Credits:    l.Credits,
		PriceCents: l.PriceCents,
		Verified:   l.Verified,
		ImageURL:   l.ImageURL,
	}
}

// GetListings returns all listings that still have credits for sale.
func (h *MarketHandler) GetListings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	listings, err := h.Listings.ListOpen(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]listingPart, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingPart(l))
	}
	return c.JSON(http.StatusOK, echo.Map{"listings": out})
}

// GetListing returns a single listing by id.
func (h *MarketHandler) GetListing(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Listings.Get(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"listing": toListingPart(l)})
}
