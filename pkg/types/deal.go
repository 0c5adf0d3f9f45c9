package types

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Deal statuses. Completed and Lost close the deal.
const (
	DealPending     = "Pending"
	DealNegotiating = "Negotiating"
	DealAgreed      = "Agreed"
	DealCompleted   = "Completed"
	DealLost        = "Lost"
)

// DefaultCommissionPercent applies when a deal is opened without one.
const DefaultCommissionPercent = 3.0

// ActiveDealStatuses are the statuses of deals still in progress.
var ActiveDealStatuses = []string{DealPending, DealNegotiating, DealAgreed}

// Deal links one stone to one buyer contact.
type Deal struct {
	ID                int64    `db:"id" json:"id"`
	StoneID           *int64   `db:"stone_id" json:"stone_id"`
	BuyerID           *int64   `db:"buyer_id" json:"buyer_id"`
	Status            string   `db:"status" json:"status"`
	AskingPrice       *float64 `db:"asking_price" json:"asking_price"`
	OfferedPrice      *float64 `db:"offered_price" json:"offered_price"`
	FinalPrice        *float64 `db:"final_price" json:"final_price"`
	Commission        *float64 `db:"commission" json:"commission"`
	CommissionPercent float64  `db:"commission_percent" json:"commission_percent"`
	Notes             *string  `db:"notes" json:"notes"`
	DateStarted       string   `db:"date_started" json:"date_started"`
	DateClosed        *string  `db:"date_closed" json:"date_closed"`

	// Display fields joined from stones and contacts.
	StoneCarat      *float64 `db:"stone_carat" json:"stone_carat"`
	StoneShape      *string  `db:"stone_shape" json:"stone_shape"`
	StoneColor      *string  `db:"stone_color" json:"stone_color"`
	StoneClarity    *string  `db:"stone_clarity" json:"stone_clarity"`
	StoneCertNumber *string  `db:"stone_cert_number" json:"stone_cert_number"`
	BuyerName       *string  `db:"buyer_name" json:"buyer_name"`
	BuyerCompany    *string  `db:"buyer_company" json:"buyer_company"`
}

// DealInput opens a deal. AskingPrice defaults to the stone's asking price,
// CommissionPercent to DefaultCommissionPercent and Status to Pending.
type DealInput struct {
	StoneID           *int64   `json:"stone_id"`
	BuyerID           *int64   `json:"buyer_id"`
	Status            *string  `json:"status"`
	AskingPrice       *float64 `json:"asking_price"`
	OfferedPrice      *float64 `json:"offered_price"`
	CommissionPercent *float64 `json:"commission_percent"`
	Notes             *string  `json:"notes"`
}

// DealUpdate is the payload of a deal status step. A nil Status keeps the
// current one; the price, commission and notes fields are replaced.
type DealUpdate struct {
	Status       *string  `json:"status"`
	OfferedPrice *float64 `json:"offered_price"`
	FinalPrice   *float64 `json:"final_price"`
	Commission   *float64 `json:"commission"`
	Notes        *string  `json:"notes"`
}

// DealFilter narrows ListDeals.
type DealFilter struct {
	Status string
}

// IsClosed reports whether status ends a deal.
func IsClosed(status string) bool {
	return status == DealCompleted || status == DealLost
}

// StoneStatusOnClose returns the stone status a closing deal status implies.
// The second result is false for statuses that leave the stone untouched.
func StoneStatusOnClose(status string) (string, bool) {
	switch status {
	case DealCompleted:
		return StoneSold, true
	case DealLost:
		return StoneAvailable, true
	default:
		return "", false
	}
}

// ResolveCommission picks the commission to store on a deal update: the
// explicit value wins, otherwise it is derived from the final price, and
// without either it stays unset.
func ResolveCommission(explicit, finalPrice *float64, percent float64) *float64 {
	if explicit != nil {
		return explicit
	}
	if finalPrice == nil {
		return nil
	}
	commission, _ := decimal.NewFromFloat(*finalPrice).
		Mul(decimal.NewFromFloat(percent)).
		Div(decimal.NewFromInt(100)).
		Float64()
	return lo.ToPtr(commission)
}
