package match

import (
	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/seq"
	"main/pkg/exception"
)

// Simulator matches resting orders against per-symbol daily snapshots.
// Every order that reaches a match pass fills completely in one shot;
// finished orders are evicted after the pass, unlike OrderBook.
type Simulator struct {
	date int64
	time int64

	// carryOvernight keeps unfilled orders across the market-close
	// hook. When false, OnAfterMarketClose cancels and purges them.
	carryOvernight bool

	gen       *seq.Generator
	orders    map[int64]*model.Order
	insertion []int64
}

// NewSimulator creates an empty simulator for one trading day.
func NewSimulator(tradeDate int64, carryOvernight bool) *Simulator {
	return &Simulator{
		date:           tradeDate,
		carryOvernight: carryOvernight,
		gen:            seq.NewGenerator(),
		orders:         make(map[int64]*model.Order),
	}
}

// Add stores an independent copy of the order, keyed by entrust ID.
func (s *Simulator) Add(o *model.Order) (int64, error) {
	if o == nil {
		return 0, exception.ErrNilOrder
	}
	dup := o.Copy()
	if dup.EntrustID == 0 {
		dup.EntrustID = s.gen.NextDayID(seq.KeyEntrust, s.date)
	}
	if _, ok := s.orders[dup.EntrustID]; ok {
		return 0, exception.ErrDuplicateEntrust
	}
	s.orders[dup.EntrustID] = dup
	s.insertion = append(s.insertion, dup.EntrustID)
	return dup.EntrustID, nil
}

// MatchFinished reports whether no working order remains.
func (s *Simulator) MatchFinished() bool {
	return len(s.orders) == 0
}

// Match fills every resting order against the snapshot, resolving the
// fill price by order kind: target-price orders read their configured
// quote field, vwap orders the vwap field (an explicit window is not
// supported), anything else the close. Missing quotes abort the pass
// before any order is mutated. Finished orders are evicted afterwards.
func (s *Simulator) Match(quotes map[string]model.Quote, date, tm int64) ([]model.Trade, error) {
	if len(quotes) == 0 {
		return nil, exception.ErrEmptyQuote
	}

	prices := make(map[int64]decimal.Decimal, len(s.insertion))
	for _, id := range s.insertion {
		o, ok := s.orders[id]
		if !ok {
			continue
		}
		quote, ok := quotes[o.Symbol]
		if !ok {
			return nil, errors.Wrap(exception.ErrQuoteNotFound, o.Symbol)
		}
		price, err := fillPrice(o, quote)
		if err != nil {
			return nil, err
		}
		prices[id] = price
	}

	var trades []model.Trade
	for _, id := range s.insertion {
		o, ok := s.orders[id]
		if !ok {
			continue
		}
		price := prices[id]
		size := o.Remaining()

		fillID := s.gen.NextDayID(seq.KeyFill, s.date)
		trades = append(trades, model.NewTrade(o, fillID, price, size, date, tm))
		if err := o.Fill(price, size); err != nil {
			return trades, err
		}
	}

	s.evictFinished()
	return trades, nil
}

func fillPrice(o *model.Order, quote model.Quote) (decimal.Decimal, error) {
	switch o.Type {
	case enum.OrderTypeTargetPrice:
		return quote.Field(o.TargetField)
	case enum.OrderTypeVwap:
		if o.VwapStart != -1 || o.VwapEnd != -1 {
			return decimal.Zero, exception.ErrWindowedVwapUnsupported
		}
		return quote.Vwap, nil
	default:
		return quote.Close, nil
	}
}

// evictFinished rebuilds the working set without finished orders.
func (s *Simulator) evictFinished() {
	kept := make([]int64, 0, len(s.insertion))
	for _, id := range s.insertion {
		o, ok := s.orders[id]
		if !ok {
			continue
		}
		if o.Finished() {
			delete(s.orders, id)
			continue
		}
		kept = append(kept, id)
	}
	s.insertion = kept
}

// Cancel removes a resting order and returns its cancelled snapshot.
func (s *Simulator) Cancel(entrustID int64) (model.OrderStatusInd, error) {
	o, ok := s.orders[entrustID]
	if !ok {
		return model.OrderStatusInd{}, exception.ErrOrderNotFound
	}
	delete(s.orders, entrustID)
	if err := o.CancelRemaining(); err != nil {
		return model.OrderStatusInd{}, err
	}
	return model.NewOrderStatusInd(o), nil
}

// Orders returns snapshots of the resting orders in insertion order.
func (s *Simulator) Orders() []model.OrderStatusInd {
	out := make([]model.OrderStatusInd, 0, len(s.orders))
	for _, id := range s.insertion {
		if o, ok := s.orders[id]; ok {
			out = append(out, model.NewOrderStatusInd(o))
		}
	}
	return out
}

// OnNewDay updates the date context used for minted identifiers.
func (s *Simulator) OnNewDay(tradeDate int64) {
	s.date = tradeDate
}

// OnAfterMarketClose runs the end-of-day policy. With overnight carry
// enabled it is a no-op; otherwise every resting order is cancelled and
// the snapshots are returned for the caller to forward.
func (s *Simulator) OnAfterMarketClose() []model.OrderStatusInd {
	if s.carryOvernight {
		return nil
	}
	var inds []model.OrderStatusInd
	for _, id := range s.insertion {
		o, ok := s.orders[id]
		if !ok {
			continue
		}
		if o.CancelRemaining() != nil {
			continue
		}
		inds = append(inds, model.NewOrderStatusInd(o))
	}
	s.orders = make(map[int64]*model.Order)
	s.insertion = nil
	return inds
}
