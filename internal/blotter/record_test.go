package blotter

import (
	"testing"

	"github.com/shopspring/decimal"

	"main/internal/model"
	"main/internal/model/enum"
)

func TestNewTaskRecord(t *testing.T) {
	task := model.NewOrderTask(202609010001, model.FunctionPlaceBatchOrder, "twap", nil, "",
		model.NewOrder("600030.SH", enum.OrderSideBuy, enum.OrderTypeLimit, decimal.NewFromInt(10), decimal.NewFromInt(100), 20260901, 0),
		model.NewOrder("000001.SZ", enum.OrderSideSell, enum.OrderTypeLimit, decimal.NewFromInt(8), decimal.NewFromInt(50), 20260901, 0),
	)
	task.ExternalID = 900001

	rec := newTaskRecord(task)
	if rec.TaskID != 202609010001 || rec.ExternalID != 900001 {
		t.Fatalf("id mismatch! got %+v", rec)
	}
	if rec.Function != model.FunctionPlaceBatchOrder || rec.Algo != "twap" {
		t.Fatalf("function mismatch! got %+v", rec)
	}
	if rec.OrderCount != 2 || rec.GoalCount != 0 {
		t.Fatalf("count mismatch! got orders=%d goals=%d", rec.OrderCount, rec.GoalCount)
	}
}

func TestNewTradeRecord(t *testing.T) {
	rec := newTradeRecord(model.Trade{
		FillID:    202609010003,
		EntrustID: 202609010002,
		TaskID:    202609010001,
		Symbol:    "600030.SH",
		Side:      enum.OrderSideBuy,
		FillPrice: decimal.RequireFromString("26.5"),
		FillSize:  decimal.NewFromInt(100),
		FillDate:  20260901,
		FillTime:  93000,
	})

	if rec.FillPrice != "26.5" || rec.FillSize != "100" {
		t.Fatalf("decimal rendering mismatch! got price=%s size=%s", rec.FillPrice, rec.FillSize)
	}
	if rec.Side != enum.OrderSideBuy.String() {
		t.Fatalf("side mismatch! got %s", rec.Side)
	}
}

func TestNewOrderStatusRecord(t *testing.T) {
	rec := newOrderStatusRecord(model.OrderStatusInd{
		EntrustID:    202609010002,
		TaskID:       202609010001,
		Symbol:       "600030.SH",
		Side:         enum.OrderSideSell,
		EntrustPrice: decimal.RequireFromString("26.5"),
		EntrustSize:  decimal.NewFromInt(100),
		FillSize:     decimal.NewFromInt(40),
		CancelSize:   decimal.NewFromInt(60),
		Status:       enum.OrderStatusCancelled,
	})

	if rec.Status != enum.OrderStatusCancelled.String() {
		t.Fatalf("status mismatch! got %s", rec.Status)
	}
	if rec.CancelSize != "60" {
		t.Fatalf("cancel size mismatch! got %s", rec.CancelSize)
	}
}
