package types

import (
	"context"
	"errors"
)

// Ledger is the record-keeping surface the HTTP layer talks to. The SQLite
// backend implements it; every mutating call is persisted to the store file
// before it returns.
type Ledger interface {
	ListStones(ctx context.Context, filter StoneFilter) ([]Stone, error)
	GetStone(ctx context.Context, id int64) (*Stone, error)
	CreateStone(ctx context.Context, in StoneInput) (*Stone, error)
	UpdateStone(ctx context.Context, id int64, in StoneInput) (*Stone, error)
	DeleteStone(ctx context.Context, id int64) error

	ListContacts(ctx context.Context, filter ContactFilter) ([]Contact, error)
	GetContact(ctx context.Context, id int64) (*Contact, error)
	CreateContact(ctx context.Context, in ContactInput) (*Contact, error)
	UpdateContact(ctx context.Context, id int64, in ContactInput) (*Contact, error)
	DeleteContact(ctx context.Context, id int64) error

	ListDeals(ctx context.Context, filter DealFilter) ([]Deal, error)
	GetDeal(ctx context.Context, id int64) (*Deal, error)
	CreateDeal(ctx context.Context, in DealInput) (*Deal, error)
	// UpdateDeal applies a status transition and its stone side effects.
	UpdateDeal(ctx context.Context, id int64, in DealUpdate) (*Deal, error)
	// DeleteDeal returns the linked stone to Available and removes the deal.
	DeleteDeal(ctx context.Context, id int64) error

	ListPrices(ctx context.Context, filter PriceFilter) ([]PriceLogEntry, error)
	CreatePrice(ctx context.Context, in PriceInput) (*PriceLogEntry, error)

	Stats(ctx context.Context) (*Stats, error)
}

// Store lifecycle errors.
var (
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Record errors.
var (
	ErrNotFound = errors.New("record not found")
)
