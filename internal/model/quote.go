package model

import (
	"github.com/shopspring/decimal"

	"main/internal/model/enum"
	"main/pkg/exception"
)

// Quote is the per-symbol market snapshot consumed by the matching
// engines: an OHLC bar for bar matching, or a daily snapshot for the
// snapshot engine. Vwap is the volume-weighted price over the interval.
type Quote struct {
	Symbol    string
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Vwap      decimal.Decimal
	TradeDate int64
	Time      int64
}

// Field returns the named quote field for target-price fills.
func (q Quote) Field(f enum.TargetField) (decimal.Decimal, error) {
	switch f {
	case enum.TargetFieldOpen:
		return q.Open, nil
	case enum.TargetFieldHigh:
		return q.High, nil
	case enum.TargetFieldLow:
		return q.Low, nil
	case enum.TargetFieldClose:
		return q.Close, nil
	case enum.TargetFieldVwap:
		return q.Vwap, nil
	default:
		return decimal.Zero, exception.ErrUnknownTargetField
	}
}
