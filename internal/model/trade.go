package model

import (
	"github.com/shopspring/decimal"

	"main/internal/model/enum"
)

// Trade is one immutable fill record. It is never mutated after creation.
type Trade struct {
	FillID    int64
	EntrustID int64
	TaskID    int64
	Symbol    string
	Side      enum.OrderSide
	FillPrice decimal.Decimal
	FillSize  decimal.Decimal
	FillDate  int64
	FillTime  int64
}

// NewTrade builds the fill record for one match against an order.
func NewTrade(o *Order, fillID int64, price, size decimal.Decimal, date, tm int64) Trade {
	return Trade{
		FillID:    fillID,
		EntrustID: o.EntrustID,
		TaskID:    o.TaskID,
		Symbol:    o.Symbol,
		Side:      o.Side,
		FillPrice: price,
		FillSize:  size,
		FillDate:  date,
		FillTime:  tm,
	}
}
