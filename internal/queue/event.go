// Package queue defines message payloads exchanged over the message broker.
package queue

// UserRegisteredEvent is published after a successful signup.  It carries
// enough for downstream consumers (welcome mail, analytics) without a
// database round trip.  The password hash never appears here.
type UserRegisteredEvent struct {
    UserID       uint64 `json:"user_id"`
    Name         string `json:"name"`
    Email        string `json:"email"`
    Role         string `json:"role"`
    Organization string `json:"organization"`
    RegisteredAt string `json:"registered_at"`
}

// PurchaseCompletedEvent is published when a credit purchase commits.
type PurchaseCompletedEvent struct {
    PurchaseID  string `json:"purchase_id"`
    BuyerID     uint64 `json:"buyer_id"`
    ListingID   string `json:"listing_id"`
    Credits     uint64 `json:"credits"`
    AmountCents uint64 `json:"amount_cents"`
    CompletedAt string `json:"completed_at"`
}
