// Package pricing holds the margin calculator used by the brokerage to turn a
// cost price and a target margin into a selling price.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/prajan97/diamond-intel/pkg/types"
)

// Calculator input errors.
var (
	ErrInvalidCost  = errors.New("cost_price must be a nonzero number")
	ErrInvalidCarat = errors.New("carat must be greater than zero")
)

// MarginRequest is the calculator input. CommissionPercent defaults to
// types.DefaultCommissionPercent.
type MarginRequest struct {
	CostPrice         float64  `json:"cost_price"`
	Carat             float64  `json:"carat"`
	TargetMargin      float64  `json:"target_margin"`
	CommissionPercent *float64 `json:"commission_percent"`
}

// MarginResult is the calculator output. Currency amounts are rounded to
// whole units; NetMarginPercent keeps one decimal place.
type MarginResult struct {
	SellPrice        int64  `json:"sell_price"`
	Profit           int64  `json:"profit"`
	Commission       int64  `json:"commission"`
	NetProfit        int64  `json:"net_profit"`
	NetMarginPercent string `json:"net_margin_percent"`
	PricePerCarat    int64  `json:"price_per_carat"`
	CostPerCarat     int64  `json:"cost_per_carat"`
}

var hundred = decimal.NewFromInt(100)

// CalculateMargin prices a stone. It rejects a zero cost price and a
// non-positive carat weight instead of producing NaN or Inf.
func CalculateMargin(req MarginRequest) (MarginResult, error) {
	if req.CostPrice == 0 {
		return MarginResult{}, ErrInvalidCost
	}
	if req.Carat <= 0 {
		return MarginResult{}, ErrInvalidCarat
	}

	percent := types.DefaultCommissionPercent
	if req.CommissionPercent != nil {
		percent = *req.CommissionPercent
	}

	cost := decimal.NewFromFloat(req.CostPrice)
	carat := decimal.NewFromFloat(req.Carat)
	margin := decimal.NewFromFloat(req.TargetMargin).Div(hundred)

	sell := cost.Mul(decimal.NewFromInt(1).Add(margin))
	profit := sell.Sub(cost)
	commission := sell.Mul(decimal.NewFromFloat(percent)).Div(hundred)
	net := profit.Sub(commission)
	netMargin := net.Div(cost).Mul(hundred)

	return MarginResult{
		SellPrice:        whole(sell),
		Profit:           whole(profit),
		Commission:       whole(commission),
		NetProfit:        whole(net),
		NetMarginPercent: netMargin.StringFixed(1),
		PricePerCarat:    whole(sell.Div(carat)),
		CostPerCarat:     whole(cost.Div(carat)),
	}, nil
}

func whole(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
