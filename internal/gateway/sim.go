package gateway

import (
	"github.com/shopspring/decimal"
	"github.com/yanun0323/logs"

	"main/internal/match"
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/seq"
	"main/pkg/exception"
)

// SimConfig controls the simulated gateway.
type SimConfig struct {
	TradeDate int64
	// CarryOvernight keeps unfilled snapshot-engine orders across the
	// market-close hook instead of cancelling them.
	CarryOvernight bool
	// Universe is the tradable symbol list reported by QueryUniverse.
	Universe []string
}

// SimGateway is the synchronous gateway variant. Placement registers
// the task and inserts orders into a matching engine; fills only happen
// when the surrounding replay driver calls MatchBars or MatchSnapshot
// once per simulated step, and are forwarded through the callbacks.
//
// place_order flows into the bar engine, goal_portfolio into the
// snapshot engine. Everything runs on the driver's goroutine.
type SimGateway struct {
	cfg   SimConfig
	gen   *seq.Generator
	book  *match.OrderBook
	sim   *match.Simulator
	tasks *model.TaskTable
	corr  *CorrelationTable

	trades []model.Trade
	cb     Callbacks
}

var _ TradeAPI = (*SimGateway)(nil)

// NewSimGateway builds a simulated gateway for one trading session.
func NewSimGateway(cfg SimConfig, cb Callbacks) *SimGateway {
	return &SimGateway{
		cfg:   cfg,
		gen:   seq.NewGenerator(),
		book:  match.NewOrderBook(cfg.TradeDate),
		sim:   match.NewSimulator(cfg.TradeDate, cfg.CarryOvernight),
		tasks: model.NewTaskTable(),
		corr:  NewCorrelationTable(),
		cb:    cb.normalized(),
	}
}

// PlaceOrder submits one limit order to the bar engine and acknowledges
// synchronously. The returned handle is the task ID.
func (g *SimGateway) PlaceOrder(symbol string, side enum.OrderSide, price, size decimal.Decimal, algo string, algoParam map[string]string, userdata string) (int64, error) {
	order := model.NewOrder(symbol, side, enum.OrderTypeLimit, price, size, g.cfg.TradeDate, 0)
	return g.placeTask(model.FunctionPlaceOrder, algo, algoParam, userdata, order)
}

// PlaceBatchOrder submits several prepared orders under one task.
func (g *SimGateway) PlaceBatchOrder(orders []*model.Order, algo string, algoParam map[string]string, userdata string) (int64, error) {
	if len(orders) == 0 {
		return 0, exception.ErrEmptyBatch
	}
	return g.placeTask(model.FunctionPlaceBatchOrder, algo, algoParam, userdata, orders...)
}

func (g *SimGateway) placeTask(function, algo string, algoParam map[string]string, userdata string, orders ...*model.Order) (int64, error) {
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return 0, err
		}
	}

	taskID := g.gen.NextDayID(seq.KeyTask, g.cfg.TradeDate)
	stored := make([]*model.Order, 0, len(orders))
	for _, o := range orders {
		dup := o.Copy()
		dup.EntrustID = g.gen.NextDayID(seq.KeyEntrust, g.cfg.TradeDate)
		dup.TaskID = taskID
		stored = append(stored, dup)
	}

	task := model.NewOrderTask(taskID, function, algo, algoParam, userdata, stored...)
	if err := g.tasks.Add(task); err != nil {
		return 0, err
	}

	for _, o := range stored {
		if _, err := g.book.Add(o); err != nil {
			return 0, err
		}
		g.cb.OnOrderRsp(model.OrderRsp{EntrustID: o.EntrustID, TaskID: taskID})
	}

	// The simulated path issues its own external identifier: the first
	// entrust ID stands in for the broker-assigned one.
	g.accept(task, stored[0].EntrustID)
	return taskID, nil
}

// GoalPortfolio submits target positions to the snapshot engine under
// one task. Each target becomes a market-style order for its size at
// the reference price; negative sizes sell.
func (g *SimGateway) GoalPortfolio(goals []model.TargetPosition, algo string, algoParam map[string]string, userdata string) (int64, error) {
	if len(goals) == 0 {
		return 0, exception.ErrEmptyGoalPositions
	}

	// Validate the whole goal list before touching any state: a rejected
	// request must leave no task and no resting orders behind.
	orders := make([]*model.Order, 0, len(goals))
	for _, goal := range goals {
		side := enum.OrderSideBuy
		size := goal.Size
		if size.IsNegative() {
			side = enum.OrderSideSell
			size = size.Neg()
		}
		order := model.NewOrder(goal.Symbol, side, enum.OrderTypeMarket, goal.RefPrice, size, g.cfg.TradeDate, 0)
		if err := order.Validate(); err != nil {
			return 0, err
		}
		orders = append(orders, order)
	}

	taskID := g.gen.NextDayID(seq.KeyTask, g.cfg.TradeDate)
	for _, o := range orders {
		o.EntrustID = g.gen.NextDayID(seq.KeyEntrust, g.cfg.TradeDate)
		o.TaskID = taskID
	}

	task := model.NewGoalTask(taskID, algo, algoParam, userdata, goals)
	if err := g.tasks.Add(task); err != nil {
		return 0, err
	}
	for _, o := range orders {
		if _, err := g.sim.Add(o); err != nil {
			return 0, err
		}
	}

	g.accept(task, orders[0].EntrustID)
	return taskID, nil
}

// accept records the external-id correlation and acknowledges the task.
// The mapping is one-to-one; a second acceptance for the same task is a
// protocol violation and is logged, never overwritten.
func (g *SimGateway) accept(task *model.Task, externalID int64) {
	if err := g.corr.Record(externalID, task.TaskID); err != nil {
		logs.Errorf("sim gateway: task %d external %d: %v", task.TaskID, externalID, err)
		return
	}
	g.tasks.SetExternalID(task.TaskID, externalID)
	g.cb.OnTaskRsp(model.TaskRsp{TaskID: task.TaskID, ExternalID: externalID})
}

// CancelOrder cancels an entrust in whichever engine holds it and
// forwards the indication synchronously.
func (g *SimGateway) CancelOrder(entrustID int64) error {
	ind, err := g.book.Cancel(entrustID)
	if err == nil {
		g.cb.OnOrderStatus(ind)
		return nil
	}
	ind, err = g.sim.Cancel(entrustID)
	if err != nil {
		return err
	}
	g.cb.OnOrderStatus(ind)
	return nil
}

// MatchBars drives one bar-engine step and forwards fills.
func (g *SimGateway) MatchBars(bars map[string]model.Quote, freq enum.BarFreq) error {
	results, err := g.book.Match(bars, freq)
	for _, r := range results {
		g.trades = append(g.trades, r.Trade)
		g.cb.OnTrade(r.Trade)
		g.cb.OnOrderStatus(r.Ind)
	}
	return err
}

// MatchSnapshot drives one snapshot-engine step and forwards fills.
func (g *SimGateway) MatchSnapshot(quotes map[string]model.Quote, date, tm int64) error {
	fills, err := g.sim.Match(quotes, date, tm)
	for _, trade := range fills {
		g.trades = append(g.trades, trade)
		g.cb.OnTrade(trade)
	}
	return err
}

// MatchFinished reports whether the snapshot engine has no resting orders.
func (g *SimGateway) MatchFinished() bool {
	return g.sim.MatchFinished()
}

// OnNewDay replaces both engines for the new trading date. Tasks and
// trades persist for the session; engine counters start fresh.
func (g *SimGateway) OnNewDay(tradeDate int64) {
	g.cfg.TradeDate = tradeDate
	g.book = match.NewOrderBook(tradeDate)
	g.sim = match.NewSimulator(tradeDate, g.cfg.CarryOvernight)
}

// OnAfterMarketClose runs the end-of-day policy and forwards any
// resulting cancellations.
func (g *SimGateway) OnAfterMarketClose() {
	for _, ind := range g.sim.OnAfterMarketClose() {
		g.cb.OnOrderStatus(ind)
	}
}

// QueryAccount returns nothing: the core keeps no cash accounting.
func (g *SimGateway) QueryAccount() ([]AccountView, error) {
	return nil, nil
}

// QueryPosition returns nothing: position accounting lives outside this core.
func (g *SimGateway) QueryPosition(string) ([]PositionView, error) {
	return nil, nil
}

// QueryPortfolio returns nothing: portfolio accounting lives outside this core.
func (g *SimGateway) QueryPortfolio() ([]PositionView, error) {
	return nil, nil
}

// QueryTask returns the registered tasks; QueryAll selects everything.
func (g *SimGateway) QueryTask(taskID int64) ([]*model.Task, error) {
	if taskID == QueryAll {
		return g.tasks.All(), nil
	}
	task, ok := g.tasks.Get(taskID)
	if !ok {
		return nil, exception.ErrTaskNotFound
	}
	return []*model.Task{task}, nil
}

// QueryOrder returns order snapshots from both engines.
func (g *SimGateway) QueryOrder(taskID int64) ([]model.OrderStatusInd, error) {
	var out []model.OrderStatusInd
	for _, ind := range append(g.book.Orders(), g.sim.Orders()...) {
		if taskID == QueryAll || ind.TaskID == taskID {
			out = append(out, ind)
		}
	}
	return out, nil
}

// QueryTrade returns the fills recorded this session.
func (g *SimGateway) QueryTrade(taskID int64) ([]model.Trade, error) {
	var out []model.Trade
	for _, trade := range g.trades {
		if taskID == QueryAll || trade.TaskID == taskID {
			out = append(out, trade)
		}
	}
	return out, nil
}

// QueryUniverse returns the configured symbol list.
func (g *SimGateway) QueryUniverse() ([]string, error) {
	return g.cfg.Universe, nil
}
