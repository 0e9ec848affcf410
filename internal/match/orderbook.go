package match

import (
	"github.com/yanun0323/errors"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/seq"
	"main/pkg/exception"
)

// MatchResult pairs the fill record and the status snapshot produced by
// one bar fill. Both carry the order's task ID.
type MatchResult struct {
	Trade model.Trade
	Ind   model.OrderStatusInd
}

// OrderBook matches resting orders against OHLC bars. Fills are
// all-or-nothing at the entrusted price, with no price improvement.
//
// Finished orders stay in the working collection for the life of the
// book; they are skipped on every pass. The book is rebuilt at each day
// boundary, so the set never outlives a trading day.
type OrderBook struct {
	date   int64
	gen    *seq.Generator
	orders []*model.Order
	index  map[int64]*model.Order
}

// NewOrderBook creates an empty book for one trading day. The book owns
// its counter store; nothing is shared across instances.
func NewOrderBook(tradeDate int64) *OrderBook {
	return &OrderBook{
		date:  tradeDate,
		gen:   seq.NewGenerator(),
		index: make(map[int64]*model.Order),
	}
}

// Add stores an independent copy of the order. An order without an
// entrust ID gets a fresh day-scoped one; an ID that already exists in
// the book is rejected.
func (b *OrderBook) Add(o *model.Order) (int64, error) {
	if o == nil {
		return 0, exception.ErrNilOrder
	}
	dup := o.Copy()
	if dup.EntrustID == 0 {
		dup.EntrustID = b.gen.NextDayID(seq.KeyEntrust, b.date)
	}
	if _, ok := b.index[dup.EntrustID]; ok {
		return 0, exception.ErrDuplicateEntrust
	}
	b.orders = append(b.orders, dup)
	b.index[dup.EntrustID] = dup
	return dup.EntrustID, nil
}

// Match runs one matching pass against the bar snapshot. Tick data is
// not supported. Every working order must have a bar for its symbol;
// a missing bar is a collaborator contract violation and aborts the
// pass before any order is mutated.
func (b *OrderBook) Match(bars map[string]model.Quote, freq enum.BarFreq) ([]MatchResult, error) {
	if len(bars) == 0 {
		return nil, exception.ErrEmptyQuote
	}

	switch freq {
	case enum.BarFreqTick:
		return nil, exception.ErrTickMatchUnsupported
	case enum.BarFreqMin, enum.BarFreqFiveMin, enum.BarFreqQuarterMin, enum.BarFreqSpecial, enum.BarFreqDaily:
		return b.matchBars(bars)
	default:
		return nil, exception.ErrUnknownFreq
	}
}

func (b *OrderBook) matchBars(bars map[string]model.Quote) ([]MatchResult, error) {
	working := b.working()
	for _, o := range working {
		if _, ok := bars[o.Symbol]; !ok {
			return nil, errors.Wrap(exception.ErrQuoteNotFound, o.Symbol)
		}
	}

	var results []MatchResult
	for _, o := range working {
		bar := bars[o.Symbol]
		if !crossed(o, bar) {
			continue
		}

		fillID := b.gen.NextDayID(seq.KeyTrade, bar.TradeDate)
		trade := model.NewTrade(o, fillID, o.EntrustPrice, o.Remaining(), bar.TradeDate, bar.Time)
		if err := o.Fill(o.EntrustPrice, o.Remaining()); err != nil {
			return results, err
		}
		results = append(results, MatchResult{
			Trade: trade,
			Ind:   model.NewOrderStatusInd(o),
		})
	}
	return results, nil
}

// crossed applies the bar trigger rules at the entrusted price.
func crossed(o *model.Order, bar model.Quote) bool {
	switch o.Type {
	case enum.OrderTypeLimit:
		if o.Side == enum.OrderSideBuy {
			return o.EntrustPrice.GreaterThanOrEqual(bar.Low)
		}
		return o.EntrustPrice.LessThanOrEqual(bar.High)
	case enum.OrderTypeStop:
		if o.Side == enum.OrderSideBuy {
			return o.EntrustPrice.LessThanOrEqual(bar.High)
		}
		return o.EntrustPrice.GreaterThanOrEqual(bar.Low)
	default:
		return false
	}
}

// Cancel marks a working order cancelled and returns its snapshot.
func (b *OrderBook) Cancel(entrustID int64) (model.OrderStatusInd, error) {
	o, ok := b.index[entrustID]
	if !ok || o.Finished() {
		return model.OrderStatusInd{}, exception.ErrOrderNotFound
	}
	if err := o.CancelRemaining(); err != nil {
		return model.OrderStatusInd{}, err
	}
	return model.NewOrderStatusInd(o), nil
}

// CancelAll cancels every working order and returns their snapshots.
func (b *OrderBook) CancelAll() []model.OrderStatusInd {
	var inds []model.OrderStatusInd
	for _, o := range b.working() {
		if o.CancelRemaining() != nil {
			continue
		}
		inds = append(inds, model.NewOrderStatusInd(o))
	}
	return inds
}

// Orders returns snapshots of every order in the book, finished or not.
func (b *OrderBook) Orders() []model.OrderStatusInd {
	out := make([]model.OrderStatusInd, 0, len(b.orders))
	for _, o := range b.orders {
		out = append(out, model.NewOrderStatusInd(o))
	}
	return out
}

// working snapshots the non-finished orders so a pass never iterates
// the live slice it may grow or mutate.
func (b *OrderBook) working() []*model.Order {
	out := make([]*model.Order, 0, len(b.orders))
	for _, o := range b.orders {
		if o.Finished() {
			continue
		}
		out = append(out, o)
	}
	return out
}
