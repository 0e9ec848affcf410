package gateway

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/logs"

	"main/internal/bus"
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/seq"
	"main/pkg/exception"
)

// BrokerClient is the external broker binding the real gateway drives.
// Calls run on the bus consumption goroutine, one at a time. Responses
// carry the broker-assigned external identifier; zero plus an error
// means rejection.
type BrokerClient interface {
	PlaceOrder(ctx context.Context, task *model.Task) (int64, error)
	CancelOrder(ctx context.Context, entrustID int64) error
	GoalPortfolio(ctx context.Context, task *model.Task) (int64, error)
	Query(ctx context.Context, kind bus.QueryKind, taskID int64, symbols string) error
	Close() error
}

// BrokerCallbacks is handed to the broker binding at session start.
// Broker callbacks arrive on foreign goroutines and must never touch
// gateway state directly; each method only converts the indication
// into an event and posts it, letting the single bus serialize all
// handling. Indications are keyed by the broker task identifier.
type BrokerCallbacks struct {
	OnTrade       func(model.Trade)
	OnOrderStatus func(model.OrderStatusInd)
	OnTaskStatus  func(model.TaskInd)
	OnConnection  func(connected bool)
}

// RealConfig configures a live session.
type RealConfig struct {
	Address   string
	Username  string
	Password  string
	TradeDate int64
	// QueueCapacity bounds the dispatch bus; zero picks a default.
	QueueCapacity int
}

const defaultQueueCapacity = 1024

// RealGateway is the asynchronous gateway variant. Every strategy call
// only mints identifiers, registers the task, and posts a typed event;
// the bus consumption loop invokes the broker client and feeds results
// back as further events. Nothing here blocks the calling strategy.
type RealGateway struct {
	cfg    RealConfig
	gen    *seq.Generator
	tasks  *model.TaskTable
	corr   *CorrelationTable
	bus    *bus.Bus
	client BrokerClient
	cb     Callbacks

	ctx context.Context
}

var _ TradeAPI = (*RealGateway)(nil)

// NewRealGateway validates the session config and wires the event loop.
// The broker address and credentials must be present up front; a live
// session cannot be half-configured.
func NewRealGateway(cfg RealConfig, client BrokerClient, cb Callbacks) (*RealGateway, error) {
	if cfg.Address == "" {
		return nil, exception.ErrMissingBrokerAddress
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, exception.ErrMissingCredentials
	}
	if client == nil {
		return nil, exception.ErrNilBrokerClient
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = defaultQueueCapacity
	}

	g := &RealGateway{
		cfg:    cfg,
		gen:    seq.NewGenerator(),
		tasks:  model.NewTaskTable(),
		corr:   NewCorrelationTable(),
		bus:    bus.New(cfg.QueueCapacity),
		client: client,
		cb:     cb.normalized(),
		ctx:    context.Background(),
	}
	g.register()
	return g, nil
}

// register binds one handler per event type. Request events call into
// the broker client; indication events correlate back to tasks and
// reach the strategy callbacks. The single FIFO gives the cancel/fill
// race its deterministic resolution: when a fill and a cancel are both
// queued, the fill was posted first and is handled first.
func (g *RealGateway) register() {
	must := func(t bus.EventType, h bus.Handler) {
		if err := g.bus.Register(t, h); err != nil {
			logs.Errorf("real gateway: register event %d: %v", t, err)
		}
	}
	must(bus.EventPlaceOrder, g.onPlaceOrder)
	must(bus.EventCancelOrder, g.onCancelOrder)
	must(bus.EventGoalPortfolio, g.onGoalPortfolio)
	must(bus.EventQuery, g.onQuery)
	must(bus.EventTaskRsp, g.onTaskRsp)
	must(bus.EventTradeInd, g.onTradeInd)
	must(bus.EventOrderStatusInd, g.onOrderStatusInd)
	must(bus.EventTaskInd, g.onTaskInd)
	must(bus.EventConnection, g.onConnection)
}

// BrokerCallbacks returns the adapter set to hand to the broker binding.
func (g *RealGateway) BrokerCallbacks() BrokerCallbacks {
	return BrokerCallbacks{
		OnTrade: func(trade model.Trade) {
			g.post(bus.TradeIndEvent{Trade: trade})
		},
		OnOrderStatus: func(ind model.OrderStatusInd) {
			g.post(bus.OrderStatusIndEvent{Ind: ind})
		},
		OnTaskStatus: func(ind model.TaskInd) {
			g.post(bus.TaskIndEvent{Ind: ind})
		},
		OnConnection: func(connected bool) {
			g.post(bus.ConnectionEvent{Connected: connected})
		},
	}
}

// Run consumes the bus until the context is done. Call it on its own
// goroutine. Strategy calls keep running concurrently; the task and
// correlation tables carry their own locks for that.
func (g *RealGateway) Run(ctx context.Context) {
	g.ctx = ctx
	g.bus.Run(ctx)
}

// Close stops the bus and the broker binding.
func (g *RealGateway) Close() error {
	g.bus.Close()
	return g.client.Close()
}

func (g *RealGateway) post(e bus.Event) {
	if err := g.bus.Post(e); err != nil {
		logs.Errorf("real gateway: post event %d: %v", e.Type(), err)
	}
}

// PlaceOrder mints the task before dispatch and returns immediately;
// the acknowledgement arrives later as a TaskRsp callback.
func (g *RealGateway) PlaceOrder(symbol string, side enum.OrderSide, price, size decimal.Decimal, algo string, algoParam map[string]string, userdata string) (int64, error) {
	order := model.NewOrder(symbol, side, enum.OrderTypeLimit, price, size, g.cfg.TradeDate, 0)
	return g.placeTask(model.FunctionPlaceOrder, algo, algoParam, userdata, order)
}

// PlaceBatchOrder submits several prepared orders under one task.
func (g *RealGateway) PlaceBatchOrder(orders []*model.Order, algo string, algoParam map[string]string, userdata string) (int64, error) {
	if len(orders) == 0 {
		return 0, exception.ErrEmptyBatch
	}
	return g.placeTask(model.FunctionPlaceBatchOrder, algo, algoParam, userdata, orders...)
}

func (g *RealGateway) placeTask(function, algo string, algoParam map[string]string, userdata string, orders ...*model.Order) (int64, error) {
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

	g.post(bus.PlaceOrderEvent{Task: task})
	return taskID, nil
}

// GoalPortfolio registers the target positions and queues the request.
func (g *RealGateway) GoalPortfolio(goals []model.TargetPosition, algo string, algoParam map[string]string, userdata string) (int64, error) {
	if len(goals) == 0 {
		return 0, exception.ErrEmptyGoalPositions
	}

	taskID := g.gen.NextDayID(seq.KeyTask, g.cfg.TradeDate)
	task := model.NewGoalTask(taskID, algo, algoParam, userdata, goals)
	if err := g.tasks.Add(task); err != nil {
		return 0, err
	}

	g.post(bus.GoalPortfolioEvent{Task: task})
	return taskID, nil
}

// CancelOrder queues a cancel request. A fill already queued for the
// same order wins; the cancel then reports the order as not found.
func (g *RealGateway) CancelOrder(entrustID int64) error {
	g.post(bus.CancelOrderEvent{EntrustID: entrustID})
	return nil
}

func (g *RealGateway) onPlaceOrder(e bus.Event) {
	ev := e.(bus.PlaceOrderEvent)
	externalID, err := g.client.PlaceOrder(g.ctx, ev.Task)
	g.acknowledge(ev.Task, externalID, err)
}

func (g *RealGateway) onGoalPortfolio(e bus.Event) {
	ev := e.(bus.GoalPortfolioEvent)
	externalID, err := g.client.GoalPortfolio(g.ctx, ev.Task)
	g.acknowledge(ev.Task, externalID, err)
}

func (g *RealGateway) onCancelOrder(e bus.Event) {
	ev := e.(bus.CancelOrderEvent)
	if err := g.client.CancelOrder(g.ctx, ev.EntrustID); err != nil {
		logs.Warnf("real gateway: cancel entrust %d: %v", ev.EntrustID, err)
	}
}

func (g *RealGateway) onQuery(e bus.Event) {
	ev := e.(bus.QueryEvent)
	if err := g.client.Query(g.ctx, ev.Kind, ev.TaskID, ev.Symbols); err != nil {
		logs.Warnf("real gateway: query kind %d: %v", ev.Kind, err)
	}
}

// acknowledge turns the broker response into a TaskRsp event posted
// back onto the same bus, keeping all state changes on the loop.
func (g *RealGateway) acknowledge(task *model.Task, externalID int64, err error) {
	rsp := model.TaskRsp{TaskID: task.TaskID, ExternalID: externalID}
	if err != nil {
		rsp.Msg = err.Error()
	}
	g.post(bus.TaskRspEvent{Rsp: rsp})
}

// onTaskRsp records the external-id correlation on the first success.
// A rejection ends the task's lifecycle: nothing is resubmitted here.
func (g *RealGateway) onTaskRsp(e bus.Event) {
	rsp := e.(bus.TaskRspEvent).Rsp
	if rsp.Success() {
		if err := g.corr.Record(rsp.ExternalID, rsp.TaskID); err != nil {
			// Protocol violation from the executing side; keep the
			// first mapping and scream.
			logs.Errorf("real gateway: task %d external %d: %v", rsp.TaskID, rsp.ExternalID, err)
			return
		}
		g.tasks.SetExternalID(rsp.TaskID, rsp.ExternalID)
	}
	g.cb.OnTaskRsp(rsp)
}

func (g *RealGateway) onTradeInd(e bus.Event) {
	trade := e.(bus.TradeIndEvent).Trade
	taskID, ok := g.corr.Resolve(trade.TaskID)
	if !ok {
		logs.Warnf("real gateway: trade %d references unknown external task %d", trade.FillID, trade.TaskID)
		return
	}
	trade.TaskID = taskID
	g.cb.OnTrade(trade)
}

func (g *RealGateway) onOrderStatusInd(e bus.Event) {
	ind := e.(bus.OrderStatusIndEvent).Ind
	taskID, ok := g.corr.Resolve(ind.TaskID)
	if !ok {
		logs.Warnf("real gateway: order status for entrust %d references unknown external task %d", ind.EntrustID, ind.TaskID)
		return
	}
	ind.TaskID = taskID
	g.cb.OnOrderStatus(ind)
}

func (g *RealGateway) onTaskInd(e bus.Event) {
	ind := e.(bus.TaskIndEvent).Ind
	taskID, ok := g.corr.Resolve(ind.ExternalID)
	if !ok {
		logs.Warnf("real gateway: task status references unknown external task %d", ind.ExternalID)
		return
	}
	ind.TaskID = taskID
	g.cb.OnTaskStatus(ind)
}

func (g *RealGateway) onConnection(e bus.Event) {
	ev := e.(bus.ConnectionEvent)
	if ev.Connected {
		logs.Info("real gateway: broker connected")
	} else {
		logs.Warnf("real gateway: broker disconnected")
	}
	g.cb.OnConnection(ev.Connected)
}

// Pending reports whether a task is still waiting for its external
// identifier.
func (g *RealGateway) Pending(taskID int64) bool {
	if _, ok := g.tasks.Get(taskID); !ok {
		return false
	}
	return !g.corr.Mapped(taskID)
}

// QueryAccount queues the query; the result arrives as an event.
func (g *RealGateway) QueryAccount() ([]AccountView, error) {
	g.post(bus.QueryEvent{Kind: bus.QueryAccount, TaskID: QueryAll})
	return nil, nil
}

// QueryPosition queues the query; the result arrives as an event.
func (g *RealGateway) QueryPosition(symbols string) ([]PositionView, error) {
	g.post(bus.QueryEvent{Kind: bus.QueryPosition, TaskID: QueryAll, Symbols: symbols})
	return nil, nil
}

// QueryPortfolio queues the query; the result arrives as an event.
func (g *RealGateway) QueryPortfolio() ([]PositionView, error) {
	g.post(bus.QueryEvent{Kind: bus.QueryPortfolio, TaskID: QueryAll})
	return nil, nil
}

// QueryTask queues the query; the result arrives as an event.
func (g *RealGateway) QueryTask(taskID int64) ([]*model.Task, error) {
	g.post(bus.QueryEvent{Kind: bus.QueryTask, TaskID: taskID})
	return nil, nil
}

// QueryOrder queues the query; the result arrives as an event.
func (g *RealGateway) QueryOrder(taskID int64) ([]model.OrderStatusInd, error) {
	g.post(bus.QueryEvent{Kind: bus.QueryOrder, TaskID: taskID})
	return nil, nil
}

// QueryTrade queues the query; the result arrives as an event.
func (g *RealGateway) QueryTrade(taskID int64) ([]model.Trade, error) {
	g.post(bus.QueryEvent{Kind: bus.QueryTrade, TaskID: taskID})
	return nil, nil
}

// QueryUniverse queues the query; the result arrives as an event.
func (g *RealGateway) QueryUniverse() ([]string, error) {
	g.post(bus.QueryEvent{Kind: bus.QueryUniverse, TaskID: QueryAll})
	return nil, nil
}
