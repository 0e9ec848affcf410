package model

import (
	"github.com/shopspring/decimal"

	"main/internal/model/enum"
)

// OrderStatusInd is a point-in-time snapshot of an order, emitted to
// notify observers. It copies the order's fields at emission time and
// carries no independent state.
type OrderStatusInd struct {
	EntrustID    int64
	TaskID       int64
	Symbol       string
	Side         enum.OrderSide
	EntrustPrice decimal.Decimal
	EntrustSize  decimal.Decimal
	FillPrice    decimal.Decimal
	FillSize     decimal.Decimal
	CancelSize   decimal.Decimal
	Status       enum.OrderStatus
}

// NewOrderStatusInd snapshots an order.
func NewOrderStatusInd(o *Order) OrderStatusInd {
	return OrderStatusInd{
		EntrustID:    o.EntrustID,
		TaskID:       o.TaskID,
		Symbol:       o.Symbol,
		Side:         o.Side,
		EntrustPrice: o.EntrustPrice,
		EntrustSize:  o.EntrustSize,
		FillPrice:    o.FillPrice,
		FillSize:     o.FillSize,
		CancelSize:   o.CancelSize,
		Status:       o.Status,
	}
}

// TaskRsp acknowledges a task submission. ExternalID is the identifier
// issued by the executing side; zero means the submission was rejected
// and Msg explains why.
type TaskRsp struct {
	TaskID     int64
	ExternalID int64
	Msg        string
}

// Success reports whether the submission was accepted.
func (r TaskRsp) Success() bool {
	return r.ExternalID != 0
}

// OrderRsp acknowledges a single order submission on the simulated path.
type OrderRsp struct {
	EntrustID int64
	TaskID    int64
	Msg       string
}

// TaskInd is a task-level status snapshot reported by the executing side.
type TaskInd struct {
	TaskID     int64
	ExternalID int64
	Status     string
	Msg        string
}
