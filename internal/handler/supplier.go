package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/middleware"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/model"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/repository"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/session"
)

// SupplierHandler serves the supplier side of the marketplace: creating
// listings and the sales dashboard.  Routes are gated on the Supplier role.
type SupplierHandler struct {
	Listings  *repository.ListingRepo
	Purchases *repository.PurchaseRepo
}

func NewSupplierHandler(l *repository.ListingRepo, p *repository.PurchaseRepo) *SupplierHandler {
	return &SupplierHandler{Listings: l, Purchases: p}
}

type createListingReq struct {
	Project    string `json:"project"`
	Location   string `json:"location"`
	Credits    uint64 `json:"credits"`
	PriceCents uint64 `json:"price_cents"`
	ImageURL   string `json:"image_url"`
}

// CreateListing adds a new batch of credits for sale.  New listings start
// unverified; verification is a registry concern outside this service.
func (h *SupplierHandler) CreateListing(c echo.Context) error {
	id, ok := c.Get(middleware.CtxIdentity).(session.Identity)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}

	var req createListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Project = strings.TrimSpace(req.Project)
	req.Location = strings.TrimSpace(req.Location)
	if req.Project == "" || req.Location == "" || req.Credits == 0 || req.PriceCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "project, location, credits and price_cents required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Listings.Create(ctx, model.CreditListing{
		SupplierID: id.UserID,
		Project:    req.Project,
		Location:   req.Location,
		Credits:    req.Credits,
		PriceCents: req.PriceCents,
		ImageURL:   strings.TrimSpace(req.ImageURL),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"listing": toListingPart(l)})
}

// MyListings returns every listing the supplier owns, including sold-out
// ones.
func (h *SupplierHandler) MyListings(c echo.Context) error {
	id, ok := c.Get(middleware.CtxIdentity).(session.Identity)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	listings, err := h.Listings.ListBySupplier(ctx, id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]listingPart, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingPart(l))
	}
	return c.JSON(http.StatusOK, echo.Map{"listings": out})
}

// Dashboard aggregates credits sold and revenue across the supplier's
// listings.
func (h *SupplierHandler) Dashboard(c echo.Context) error {
	id, ok := c.Get(middleware.CtxIdentity).(session.Identity)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	credits, revenue, err := h.Purchases.SupplierSummary(ctx, id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"credits_sold":  credits,
		"revenue_cents": revenue,
	})
}
