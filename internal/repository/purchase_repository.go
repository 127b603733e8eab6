package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/model"
)

// PurchaseRepo records purchases and performs the credit hand-off.  The
// decrement and the purchase row are written in one transaction; the
// UPDATE is guarded by `credits >= ?` so two buyers racing for the last
// credits cannot both win.
type PurchaseRepo struct{ DB *sql.DB }

func NewPurchaseRepo(db *sql.DB) *PurchaseRepo { return &PurchaseRepo{DB: db} }

// Buy moves credits from a listing to a buyer.  It returns the completed
// purchase, ErrNotFound when the listing does not exist, or
// ErrInsufficientCredits when the listing cannot cover the quantity.
func (r *PurchaseRepo) Buy(ctx context.Context, buyerID uint64, listingID string, credits uint64) (model.Purchase, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Purchase{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var priceCents uint64
	err = tx.QueryRowContext(ctx,
		"SELECT price_cents FROM listings WHERE id=? LIMIT 1", listingID).Scan(&priceCents)
	if err == sql.ErrNoRows {
		return model.Purchase{}, ErrNotFound
	}
	if err != nil {
		return model.Purchase{}, err
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE listings SET credits = credits - ? WHERE id = ? AND credits >= ?",
		credits, listingID, credits)
	if err != nil {
		return model.Purchase{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Purchase{}, err
	}
	if n == 0 {
		return model.Purchase{}, ErrInsufficientCredits
	}

	p := model.Purchase{
		ID:          uuid.New().String(),
		BuyerID:     buyerID,
		ListingID:   listingID,
		Credits:     credits,
		AmountCents: credits * priceCents,
		Status:      model.PurchaseCompleted,
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO purchases (id, buyer_id, listing_id, credits, amount_cents, status) VALUES (?,?,?,?,?,?)",
		p.ID, p.BuyerID, p.ListingID, p.Credits, p.AmountCents, p.Status); err != nil {
		return model.Purchase{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Purchase{}, fmt.Errorf("commit purchase: %w", err)
	}
	return p, nil
}

// ListByBuyer returns a buyer's purchases, newest first.
func (r *PurchaseRepo) ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Purchase, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,buyer_id,listing_id,credits,amount_cents,status,created_at FROM purchases WHERE buyer_id=? ORDER BY created_at DESC",
		buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Purchase
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.BuyerID, &p.ListingID, &p.Credits, &p.AmountCents, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// BuyerSummary aggregates a buyer's lifetime credits and spend for the
// dashboard.
func (r *PurchaseRepo) BuyerSummary(ctx context.Context, buyerID uint64) (credits, amountCents uint64, err error) {
	err = r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(credits),0), COALESCE(SUM(amount_cents),0) FROM purchases WHERE buyer_id=? AND status=?",
		buyerID, model.PurchaseCompleted).Scan(&credits, &amountCents)
	return
}

// SupplierSummary aggregates credits sold and revenue across a supplier's
// listings.
func (r *PurchaseRepo) SupplierSummary(ctx context.Context, supplierID uint64) (credits, amountCents uint64, err error) {
	err = r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(p.credits),0), COALESCE(SUM(p.amount_cents),0) FROM purchases p JOIN listings l ON p.listing_id = l.id WHERE l.supplier_id=? AND p.status=?",
		supplierID, model.PurchaseCompleted).Scan(&credits, &amountCents)
	return
}
