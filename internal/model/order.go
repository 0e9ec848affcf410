package model

import (
	"github.com/shopspring/decimal"

	"main/internal/model/enum"
	"main/pkg/exception"
)

// Order is one resting buy/sell instruction with a mutable fill record.
// Exactly one logical flow mutates an order at a time; engines store
// independent copies so a caller keeping the original cannot corrupt
// the working set.
type Order struct {
	Symbol       string
	Side         enum.OrderSide
	Type         enum.OrderType
	EntrustPrice decimal.Decimal
	EntrustSize  decimal.Decimal
	EntrustDate  int64
	EntrustTime  int64
	EntrustID    int64
	TaskID       int64

	// FillPrice is the running size-weighted average over all fills.
	FillPrice  decimal.Decimal
	FillSize   decimal.Decimal
	CancelSize decimal.Decimal
	Status     enum.OrderStatus

	// Target-price orders fill at this quote field.
	TargetField enum.TargetField

	// Vwap window bounds; -1 means no explicit window. Windowed vwap
	// is rejected by the snapshot engine.
	VwapStart int64
	VwapEnd   int64
}

// NewOrder builds a NEW order. Entrust and task IDs are attached by the
// gateway before the order reaches an engine.
func NewOrder(symbol string, side enum.OrderSide, typ enum.OrderType, price, size decimal.Decimal, date, tm int64) *Order {
	return &Order{
		Symbol:       symbol,
		Side:         side,
		Type:         typ,
		EntrustPrice: price,
		EntrustSize:  size,
		EntrustDate:  date,
		EntrustTime:  tm,
		Status:       enum.OrderStatusNew,
		VwapStart:    -1,
		VwapEnd:      -1,
	}
}

// Validate checks the fields a gateway requires before accepting an order.
func (o *Order) Validate() error {
	if o == nil {
		return exception.ErrNilOrder
	}
	if !o.Side.IsAvailable() {
		return exception.ErrInvalidOrderSide
	}
	if !o.Type.IsAvailable() {
		return exception.ErrInvalidOrderType
	}
	if o.EntrustSize.LessThanOrEqual(decimal.Zero) {
		return exception.ErrInvalidOrderSize
	}
	if o.Type != enum.OrderTypeMarket && o.EntrustPrice.LessThanOrEqual(decimal.Zero) {
		return exception.ErrInvalidOrderPrice
	}
	return nil
}

// Finished reports whether the order reached a terminal status.
func (o *Order) Finished() bool {
	return o.Status.Finished()
}

// Remaining returns the unfilled quantity.
func (o *Order) Remaining() decimal.Decimal {
	return o.EntrustSize.Sub(o.FillSize)
}

// Fill applies one fill, keeping FillPrice as the size-weighted average.
// The invariant 0 <= FillSize <= EntrustSize always holds afterwards.
func (o *Order) Fill(price, size decimal.Decimal) error {
	if o.Finished() {
		return exception.ErrOrderFinished
	}
	if size.LessThanOrEqual(decimal.Zero) {
		return exception.ErrInvalidOrderSize
	}
	newFill := o.FillSize.Add(size)
	if newFill.GreaterThan(o.EntrustSize) {
		return exception.ErrFillExceedsEntrust
	}

	notional := o.FillPrice.Mul(o.FillSize).Add(price.Mul(size))
	o.FillPrice = notional.Div(newFill)
	o.FillSize = newFill
	if o.FillSize.Equal(o.EntrustSize) {
		o.Status = enum.OrderStatusFilled
	} else {
		o.Status = enum.OrderStatusPartiallyFilled
	}
	return nil
}

// CancelRemaining cancels the unfilled part of a working order.
func (o *Order) CancelRemaining() error {
	if o.Finished() {
		return exception.ErrOrderFinished
	}
	o.CancelSize = o.Remaining()
	o.Status = enum.OrderStatusCancelled
	return nil
}

// Copy returns an independent copy of the order.
func (o *Order) Copy() *Order {
	dup := *o
	return &dup
}
