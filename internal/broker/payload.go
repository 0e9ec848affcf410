package broker

import (
	shopspring "github.com/shopspring/decimal"
	"github.com/yanun0323/decimal"

	"main/internal/model"
	"main/internal/model/enum"
)

// request is the outbound JSON-RPC style frame.
type request struct {
	Method string         `json:"method"`
	ID     int64          `json:"id"`
	Params map[string]any `json:"params"`
}

// response acknowledges one request by ID.
type response struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

// envelope extracts a typed result from a raw frame.
type envelope struct {
	Result any `json:"result"`
}

// pushMessage tags server-initiated frames.
type pushMessage struct {
	Method    string `json:"method"`
	Connected bool   `json:"connected"`
}

type orderPayload struct {
	Symbol string `json:"symbol"`
	Side   string `json:"side"`
	Type   string `json:"type"`
	Price  string `json:"price"`
	Size   string `json:"size"`
}

type goalPayload struct {
	Symbol   string `json:"symbol"`
	RefPrice string `json:"ref_price"`
	Size     string `json:"size"`
}

type acceptResult struct {
	TaskID int64 `json:"task_id"`
}

// tradeInd is a pushed fill. Numeric fields decode through
// decimal.Decimal straight off the wire; the broker task_id is the
// external identifier the gateway correlates on.
type tradeInd struct {
	FillNo    int64           `json:"fill_no"`
	EntrustNo int64           `json:"entrust_no"`
	TaskID    int64           `json:"task_id"`
	Symbol    string          `json:"symbol"`
	Side      string          `json:"side"`
	FillPrice decimal.Decimal `json:"fill_price"`
	FillSize  decimal.Decimal `json:"fill_size"`
	FillDate  int64           `json:"fill_date"`
	FillTime  int64           `json:"fill_time"`
}

func (ind tradeInd) toModel() model.Trade {
	return model.Trade{
		FillID:    ind.FillNo,
		EntrustID: ind.EntrustNo,
		TaskID:    ind.TaskID,
		Symbol:    ind.Symbol,
		Side:      sideFromWire(ind.Side),
		FillPrice: toShopspring(ind.FillPrice),
		FillSize:  toShopspring(ind.FillSize),
		FillDate:  ind.FillDate,
		FillTime:  ind.FillTime,
	}
}

type orderStatusInd struct {
	EntrustNo    int64           `json:"entrust_no"`
	TaskID       int64           `json:"task_id"`
	Symbol       string          `json:"symbol"`
	Side         string          `json:"side"`
	EntrustPrice decimal.Decimal `json:"entrust_price"`
	EntrustSize  decimal.Decimal `json:"entrust_size"`
	FillPrice    decimal.Decimal `json:"fill_price"`
	FillSize     decimal.Decimal `json:"fill_size"`
	CancelSize   decimal.Decimal `json:"cancel_size"`
	Status       string          `json:"order_status"`
}

func (ind orderStatusInd) toModel() model.OrderStatusInd {
	return model.OrderStatusInd{
		EntrustID:    ind.EntrustNo,
		TaskID:       ind.TaskID,
		Symbol:       ind.Symbol,
		Side:         sideFromWire(ind.Side),
		EntrustPrice: toShopspring(ind.EntrustPrice),
		EntrustSize:  toShopspring(ind.EntrustSize),
		FillPrice:    toShopspring(ind.FillPrice),
		FillSize:     toShopspring(ind.FillSize),
		CancelSize:   toShopspring(ind.CancelSize),
		Status:       statusFromWire(ind.Status),
	}
}

type taskInd struct {
	TaskID     int64  `json:"task_id"`
	TaskStatus string `json:"task_status"`
	Msg        string `json:"msg"`
}

func (ind taskInd) toModel() model.TaskInd {
	return model.TaskInd{
		ExternalID: ind.TaskID,
		Status:     ind.TaskStatus,
		Msg:        ind.Msg,
	}
}

func sideFromWire(s string) enum.OrderSide {
	switch s {
	case "Buy", "buy", "BUY":
		return enum.OrderSideBuy
	case "Sell", "sell", "SELL":
		return enum.OrderSideSell
	default:
		return 0
	}
}

func statusFromWire(s string) enum.OrderStatus {
	switch s {
	case "New":
		return enum.OrderStatusNew
	case "PartiallyFilled":
		return enum.OrderStatusPartiallyFilled
	case "Filled":
		return enum.OrderStatusFilled
	case "Cancelled":
		return enum.OrderStatusCancelled
	default:
		return 0
	}
}

func toShopspring(d decimal.Decimal) shopspring.Decimal {
	out, err := shopspring.NewFromString(d.String())
	if err != nil {
		return shopspring.Zero
	}
	return out
}
