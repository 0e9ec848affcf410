package gateway

import (
	"github.com/shopspring/decimal"

	"main/internal/model"
	"main/internal/model/enum"
)

// TradeAPI is the strategy-facing surface shared by the simulated and
// real gateways. Exactly two concrete variants exist, chosen at
// construction time.
//
// Place/goal operations mint and return a task ID before anything is
// dispatched; the ID is the join key for every later indication. Query
// results are returned directly on the simulated path and delivered via
// callbacks on the real path, where the direct return is always empty.
type TradeAPI interface {
	PlaceOrder(symbol string, side enum.OrderSide, price, size decimal.Decimal, algo string, algoParam map[string]string, userdata string) (int64, error)
	PlaceBatchOrder(orders []*model.Order, algo string, algoParam map[string]string, userdata string) (int64, error)
	CancelOrder(entrustID int64) error
	GoalPortfolio(goals []model.TargetPosition, algo string, algoParam map[string]string, userdata string) (int64, error)

	QueryAccount() ([]AccountView, error)
	QueryPosition(symbols string) ([]PositionView, error)
	QueryPortfolio() ([]PositionView, error)
	QueryTask(taskID int64) ([]*model.Task, error)
	QueryOrder(taskID int64) ([]model.OrderStatusInd, error)
	QueryTrade(taskID int64) ([]model.Trade, error)
	QueryUniverse() ([]string, error)
}

// QueryAll is the task filter meaning "every task".
const QueryAll int64 = -1

// AccountView is one row of an account query result.
type AccountView struct {
	Account   string
	Currency  string
	Balance   decimal.Decimal
	Available decimal.Decimal
}

// PositionView is one row of a position/portfolio query result.
type PositionView struct {
	Symbol   string
	Size     decimal.Decimal
	RefPrice decimal.Decimal
}

// Callbacks delivers indications back to the strategy. Nil members are
// replaced with no-ops, so a strategy only wires what it consumes.
type Callbacks struct {
	OnOrderRsp    func(model.OrderRsp)
	OnTaskRsp     func(model.TaskRsp)
	OnTrade       func(model.Trade)
	OnOrderStatus func(model.OrderStatusInd)
	OnTaskStatus  func(model.TaskInd)
	OnConnection  func(connected bool)
}

func (c Callbacks) normalized() Callbacks {
	if c.OnOrderRsp == nil {
		c.OnOrderRsp = func(model.OrderRsp) {}
	}
	if c.OnTaskRsp == nil {
		c.OnTaskRsp = func(model.TaskRsp) {}
	}
	if c.OnTrade == nil {
		c.OnTrade = func(model.Trade) {}
	}
	if c.OnOrderStatus == nil {
		c.OnOrderStatus = func(model.OrderStatusInd) {}
	}
	if c.OnTaskStatus == nil {
		c.OnTaskStatus = func(model.TaskInd) {}
	}
	if c.OnConnection == nil {
		c.OnConnection = func(bool) {}
	}
	return c
}
