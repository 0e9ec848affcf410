package broker

import (
	"encoding/json"
	"testing"

	"main/internal/model/enum"
)

func TestTradeIndDecode(t *testing.T) {
	raw := []byte(`{
		"fill_no": 202609010001,
		"entrust_no": 202609010002,
		"task_id": 900001,
		"symbol": "600030.SH",
		"side": "Buy",
		"fill_price": "26.5",
		"fill_size": "100",
		"fill_date": 20260901,
		"fill_time": 93000
	}`)

	var ind tradeInd
	if err := json.Unmarshal(raw, &ind); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	trade := ind.toModel()
	if trade.FillID != 202609010001 || trade.EntrustID != 202609010002 {
		t.Fatalf("id mismatch! got fill %d entrust %d", trade.FillID, trade.EntrustID)
	}
	if trade.TaskID != 900001 {
		t.Fatalf("task id mismatch! should be 900001 but got %d", trade.TaskID)
	}
	if trade.Side != enum.OrderSideBuy {
		t.Fatalf("side mismatch! should be %s but got %s", enum.OrderSideBuy, trade.Side)
	}
	if trade.FillPrice.String() != "26.5" {
		t.Fatalf("fill price mismatch! should be 26.5 but got %s", trade.FillPrice)
	}
	if trade.FillSize.String() != "100" {
		t.Fatalf("fill size mismatch! should be 100 but got %s", trade.FillSize)
	}
}

func TestOrderStatusIndDecode(t *testing.T) {
	raw := []byte(`{
		"entrust_no": 202609010002,
		"task_id": 900001,
		"symbol": "600030.SH",
		"side": "Sell",
		"entrust_price": "26.5",
		"entrust_size": "100",
		"fill_price": "26.5",
		"fill_size": "40",
		"cancel_size": "60",
		"order_status": "Cancelled"
	}`)

	var ind orderStatusInd
	if err := json.Unmarshal(raw, &ind); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	status := ind.toModel()
	if status.Status != enum.OrderStatusCancelled {
		t.Fatalf("status mismatch! should be %s but got %s", enum.OrderStatusCancelled, status.Status)
	}
	if status.Side != enum.OrderSideSell {
		t.Fatalf("side mismatch! should be %s but got %s", enum.OrderSideSell, status.Side)
	}
	if status.CancelSize.String() != "60" {
		t.Fatalf("cancel size mismatch! should be 60 but got %s", status.CancelSize)
	}
}

func TestSideAndStatusFromWire(t *testing.T) {
	testCases := []struct {
		desc     string
		side     string
		expected enum.OrderSide
	}{
		{"buy", "Buy", enum.OrderSideBuy},
		{"lowercase sell", "sell", enum.OrderSideSell},
		{"upper buy", "BUY", enum.OrderSideBuy},
		{"unknown", "Short", 0},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if got := sideFromWire(tc.side); got != tc.expected {
				t.Fatalf("side mismatch! should be %d but got %d", tc.expected, got)
			}
		})
	}

	if got := statusFromWire("PartiallyFilled"); got != enum.OrderStatusPartiallyFilled {
		t.Fatalf("status mismatch! got %d", got)
	}
	if got := statusFromWire("Working"); got != 0 {
		t.Fatalf("unknown status should map to zero, got %d", got)
	}
}

func TestTaskIndDecode(t *testing.T) {
	raw := []byte(`{"task_id": 900001, "task_status": "Done", "msg": "ok"}`)

	var ind taskInd
	if err := json.Unmarshal(raw, &ind); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	got := ind.toModel()
	if got.ExternalID != 900001 || got.Status != "Done" || got.Msg != "ok" {
		t.Fatalf("task ind mismatch! got %+v", got)
	}
}
