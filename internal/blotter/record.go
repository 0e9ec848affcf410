package blotter

import (
	"time"

	"main/internal/model"
)

// TaskRecord is one archived task submission.
type TaskRecord struct {
	ID         uint  `gorm:"primaryKey"`
	TaskID     int64 `gorm:"index"`
	ExternalID int64
	Function   string
	Algo       string
	UserData   string
	OrderCount int
	GoalCount  int
	CreatedAt  time.Time
}

// OrderStatusRecord is one archived order status snapshot.
type OrderStatusRecord struct {
	ID           uint  `gorm:"primaryKey"`
	EntrustID    int64 `gorm:"index"`
	TaskID       int64 `gorm:"index"`
	Symbol       string
	Side         string
	EntrustPrice string
	EntrustSize  string
	FillPrice    string
	FillSize     string
	CancelSize   string
	Status       string
	CreatedAt    time.Time
}

// TradeRecord is one archived fill.
type TradeRecord struct {
	ID        uint  `gorm:"primaryKey"`
	FillID    int64 `gorm:"uniqueIndex"`
	EntrustID int64 `gorm:"index"`
	TaskID    int64 `gorm:"index"`
	Symbol    string
	Side      string
	FillPrice string
	FillSize  string
	FillDate  int64
	FillTime  int64
	CreatedAt time.Time
}

func newTaskRecord(task *model.Task) *TaskRecord {
	return &TaskRecord{
		TaskID:     task.TaskID,
		ExternalID: task.ExternalID,
		Function:   task.Function,
		Algo:       task.Algo,
		UserData:   task.UserData,
		OrderCount: len(task.Orders),
		GoalCount:  len(task.Goals),
	}
}

func newOrderStatusRecord(ind model.OrderStatusInd) *OrderStatusRecord {
	return &OrderStatusRecord{
		EntrustID:    ind.EntrustID,
		TaskID:       ind.TaskID,
		Symbol:       ind.Symbol,
		Side:         ind.Side.String(),
		EntrustPrice: ind.EntrustPrice.String(),
		EntrustSize:  ind.EntrustSize.String(),
		FillPrice:    ind.FillPrice.String(),
		FillSize:     ind.FillSize.String(),
		CancelSize:   ind.CancelSize.String(),
		Status:       ind.Status.String(),
	}
}

func newTradeRecord(trade model.Trade) *TradeRecord {
	return &TradeRecord{
		FillID:    trade.FillID,
		EntrustID: trade.EntrustID,
		TaskID:    trade.TaskID,
		Symbol:    trade.Symbol,
		Side:      trade.Side.String(),
		FillPrice: trade.FillPrice.String(),
		FillSize:  trade.FillSize.String(),
		FillDate:  trade.FillDate,
		FillTime:  trade.FillTime,
	}
}
