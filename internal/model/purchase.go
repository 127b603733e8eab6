package model

import "time"

// Purchase statuses.  A purchase is created as completed in the same
// transaction that decrements the listing; pending exists for flows
// that settle asynchronously.
const (
	PurchasePending   = "PENDING"
	PurchaseCompleted = "COMPLETED"
)

// Purchase records a buyer taking credits from a listing.
type Purchase struct {
	ID          string    // purchases.id (uuid)
	BuyerID     uint64    // purchases.buyer_id
	ListingID   string    // purchases.listing_id
	Credits     uint64    // purchases.credits
	AmountCents uint64    // purchases.amount_cents
	Status      string    // purchases.status
	CreatedAt   time.Time // purchases.created_at
}
