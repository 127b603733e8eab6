package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/middleware"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/model"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/queue"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/repository"
	queue_publisher "github.com/ShrinivasInamdar/Carbon-Bazar/internal/service"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/session"
)

// BuyerHandler serves the buyer side: purchasing credits and the purchase
// history/dashboard.  Routes are gated on the Buyer role.
type BuyerHandler struct {
	Listings  *repository.ListingRepo
	Purchases *repository.PurchaseRepo
}

func NewBuyerHandler(l *repository.ListingRepo, p *repository.PurchaseRepo) *BuyerHandler {
	return &BuyerHandler{Listings: l, Purchases: p}
}

type purchaseReq struct {
	Credits uint64 `json:"credits"`
}

type purchasePart struct {
	ID          string `json:"id"`
	ListingID   string `json:"listing_id"`
	Credits     uint64 `json:"credits"`
	AmountCents uint64 `json:"amount_cents"`
	Status      string `json:"status"`
}

func toPurchasePart(p model.Purchase) purchasePart {
	return purchasePart{
		ID:          p.ID,
		ListingID:   p.ListingID,
		Credits:     p.Credits,
		AmountCents: p.AmountCents,
		Status:      p.Status,
	}
}

// Purchase buys credits from a listing.  The repository performs the
// decrement and the purchase insert atomically, so an oversell attempt
// comes back as a conflict rather than negative inventory.
func (h *BuyerHandler) Purchase(c echo.Context) error {
	id, ok := c.Get(middleware.CtxIdentity).(session.Identity)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}

	var req purchaseReq
	if err := c.Bind(&req); err != nil || req.Credits == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "credits required"})
	}
	listingID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Purchases.Buy(ctx, id.UserID, listingID, req.Credits)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	case errors.Is(err, repository.ErrInsufficientCredits):
		return c.JSON(http.StatusConflict, echo.Map{"error": "not enough credits available"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "purchase failed"})
	}

	// Best effort event; the purchase already committed.
	go func() {
		_ = queue_publisher.PublishPurchaseCompleted(context.Background(), queue.PurchaseCompletedEvent{
			PurchaseID:  p.ID,
			BuyerID:     p.BuyerID,
			ListingID:   p.ListingID,
			Credits:     p.Credits,
			AmountCents: p.AmountCents,
			CompletedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{"purchase": toPurchasePart(p)})
}

// MyPurchases lists the buyer's purchase history, newest first.
func (h *BuyerHandler) MyPurchases(c echo.Context) error {
	id, ok := c.Get(middleware.CtxIdentity).(session.Identity)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	purchases, err := h.Purchases.ListByBuyer(ctx, id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]purchasePart, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, toPurchasePart(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"purchases": out})
}

// Dashboard aggregates the buyer's lifetime credits and spend.
func (h *BuyerHandler) Dashboard(c echo.Context) error {
	id, ok := c.Get(middleware.CtxIdentity).(session.Identity)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	credits, spent, err := h.Purchases.BuyerSummary(ctx, id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"credits_owned": credits,
		"spent_cents":   spent,
	})
}
