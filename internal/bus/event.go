package bus

import "main/internal/model"

// EventType tags each event variant carried by the bus.
type EventType uint16

const (
	_event_beg EventType = iota
	EventPlaceOrder
	EventCancelOrder
	EventGoalPortfolio
	EventQuery
	EventTaskRsp
	EventOrderRsp
	EventTradeInd
	EventOrderStatusInd
	EventTaskInd
	EventConnection
	_event_end
)

func (t EventType) IsAvailable() bool {
	return t > _event_beg && t < _event_end
}

// Event is the closed union of bus payloads. One variant exists per
// event type, each with a fixed field set; nothing outside this package
// can add a variant.
type Event interface {
	Type() EventType
	sealed()
}

// QueryKind selects the dataset a QueryEvent asks for.
type QueryKind uint8

const (
	_query_beg QueryKind = iota
	QueryAccount
	QueryPosition
	QueryPortfolio
	QueryTask
	QueryOrder
	QueryTrade
	QueryUniverse
	_query_end
)

func (k QueryKind) IsAvailable() bool {
	return k > _query_beg && k < _query_end
}

// PlaceOrderEvent asks the executing side to submit the task's orders.
type PlaceOrderEvent struct {
	Task *model.Task
}

// CancelOrderEvent asks the executing side to cancel one entrust.
type CancelOrderEvent struct {
	EntrustID int64
}

// GoalPortfolioEvent asks the executing side to work the task's targets.
type GoalPortfolioEvent struct {
	Task *model.Task
}

// QueryEvent asks the executing side for a dataset. TaskID filters
// task-scoped queries; -1 means all. Symbols is a comma-separated
// filter for position queries.
type QueryEvent struct {
	Kind    QueryKind
	TaskID  int64
	Symbols string
}

// TaskRspEvent reports the outcome of a task submission.
type TaskRspEvent struct {
	Rsp model.TaskRsp
}

// OrderRspEvent acknowledges a single order submission.
type OrderRspEvent struct {
	Rsp model.OrderRsp
}

// TradeIndEvent carries one fill.
type TradeIndEvent struct {
	Trade model.Trade
}

// OrderStatusIndEvent carries an order status snapshot.
type OrderStatusIndEvent struct {
	Ind model.OrderStatusInd
}

// TaskIndEvent carries a task status snapshot.
type TaskIndEvent struct {
	Ind model.TaskInd
}

// ConnectionEvent reports broker connectivity changes.
type ConnectionEvent struct {
	Connected bool
}

func (PlaceOrderEvent) Type() EventType     { return EventPlaceOrder }
func (CancelOrderEvent) Type() EventType    { return EventCancelOrder }
func (GoalPortfolioEvent) Type() EventType  { return EventGoalPortfolio }
func (QueryEvent) Type() EventType          { return EventQuery }
func (TaskRspEvent) Type() EventType        { return EventTaskRsp }
func (OrderRspEvent) Type() EventType       { return EventOrderRsp }
func (TradeIndEvent) Type() EventType       { return EventTradeInd }
func (OrderStatusIndEvent) Type() EventType { return EventOrderStatusInd }
func (TaskIndEvent) Type() EventType        { return EventTaskInd }
func (ConnectionEvent) Type() EventType     { return EventConnection }

func (PlaceOrderEvent) sealed()     {}
func (CancelOrderEvent) sealed()    {}
func (GoalPortfolioEvent) sealed()  {}
func (QueryEvent) sealed()          {}
func (TaskRspEvent) sealed()        {}
func (OrderRspEvent) sealed()       {}
func (TradeIndEvent) sealed()       {}
func (OrderStatusIndEvent) sealed() {}
func (TaskIndEvent) sealed()        {}
func (ConnectionEvent) sealed()     {}
