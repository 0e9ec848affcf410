package match

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"main/internal/model"
	"main/internal/model/enum"
	"main/pkg/exception"
)

func snapshot(symbol, close, vwap string, tm int64) model.Quote {
	return model.Quote{
		Symbol:    symbol,
		Close:     d(close),
		Vwap:      d(vwap),
		TradeDate: tradeDate,
		Time:      tm,
	}
}

func TestSimulatorTargetPriceFill(t *testing.T) {
	sim := NewSimulator(tradeDate, true)

	o := model.NewOrder("600030.SH", enum.OrderSideBuy, enum.OrderTypeTargetPrice, d("8.0"), d("200"), tradeDate, 0)
	o.TargetField = enum.TargetFieldClose
	if _, err := sim.Add(o); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	trades, err := sim.Match(map[string]model.Quote{
		"600030.SH": snapshot("600030.SH", "8.2", "8.1", 150000),
	}, tradeDate, 150000)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}

	if len(trades) != 1 {
		t.Fatalf("trade count mismatch! should be 1 but got %d", len(trades))
	}
	if !trades[0].FillPrice.Equal(d("8.2")) {
		t.Fatalf("fill price mismatch! should be 8.2 but got %s", trades[0].FillPrice)
	}
	if !trades[0].FillSize.Equal(d("200")) {
		t.Fatalf("fill size mismatch! should be 200 but got %s", trades[0].FillSize)
	}
	if !sim.MatchFinished() {
		t.Fatal("filled order should be evicted from the open set")
	}
	if got := len(sim.Orders()); got != 0 {
		t.Fatalf("open set mismatch! should be empty but got %d orders", got)
	}
}

func TestSimulatorFillPriceByKind(t *testing.T) {
	testCases := []struct {
		desc     string
		typ      enum.OrderType
		target   enum.TargetField
		expected string
	}{
		{"vwap order", enum.OrderTypeVwap, 0, "8.1"},
		{"market falls back to close", enum.OrderTypeMarket, 0, "8.2"},
		{"limit falls back to close", enum.OrderTypeLimit, 0, "8.2"},
		{"target vwap field", enum.OrderTypeTargetPrice, enum.TargetFieldVwap, "8.1"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			sim := NewSimulator(tradeDate, true)
			o := model.NewOrder("600030.SH", enum.OrderSideBuy, tc.typ, d("8.0"), d("100"), tradeDate, 0)
			o.TargetField = tc.target
			if _, err := sim.Add(o); err != nil {
				t.Fatalf("add failed: %v", err)
			}

			trades, err := sim.Match(map[string]model.Quote{
				"600030.SH": snapshot("600030.SH", "8.2", "8.1", 150000),
			}, tradeDate, 150000)
			if err != nil {
				t.Fatalf("match failed: %v", err)
			}
			if len(trades) != 1 {
				t.Fatalf("trade count mismatch! should be 1 but got %d", len(trades))
			}
			if !trades[0].FillPrice.Equal(d(tc.expected)) {
				t.Fatalf("fill price mismatch! should be %s but got %s", tc.expected, trades[0].FillPrice)
			}
		})
	}
}

func TestSimulatorRejectsWindowedVwap(t *testing.T) {
	sim := NewSimulator(tradeDate, true)

	o := model.NewOrder("600030.SH", enum.OrderSideBuy, enum.OrderTypeVwap, d("8.0"), d("100"), tradeDate, 0)
	o.VwapStart = 93000
	o.VwapEnd = 100000
	if _, err := sim.Add(o); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	trades, err := sim.Match(map[string]model.Quote{
		"600030.SH": snapshot("600030.SH", "8.2", "8.1", 150000),
	}, tradeDate, 150000)
	if !errors.Is(err, exception.ErrWindowedVwapUnsupported) {
		t.Fatalf("error mismatch! should be %v but got %v", exception.ErrWindowedVwapUnsupported, err)
	}
	if len(trades) != 0 {
		t.Fatalf("trade count mismatch! should be 0 but got %d", len(trades))
	}
	if got := len(sim.Orders()); got != 1 {
		t.Fatalf("order should remain resting, got %d orders", got)
	}
}

func TestSimulatorMissingQuoteAbortsBeforeMutation(t *testing.T) {
	sim := NewSimulator(tradeDate, true)
	if _, err := sim.Add(model.NewOrder("600030.SH", enum.OrderSideBuy, enum.OrderTypeMarket, decimal.Zero, d("100"), tradeDate, 0)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := sim.Add(model.NewOrder("000001.SZ", enum.OrderSideSell, enum.OrderTypeMarket, decimal.Zero, d("50"), tradeDate, 0)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	trades, err := sim.Match(map[string]model.Quote{
		"600030.SH": snapshot("600030.SH", "8.2", "8.1", 150000),
	}, tradeDate, 150000)
	if !errors.Is(err, exception.ErrQuoteNotFound) {
		t.Fatalf("error mismatch! should be %v but got %v", exception.ErrQuoteNotFound, err)
	}
	if len(trades) != 0 {
		t.Fatalf("trade count mismatch! should be 0 but got %d", len(trades))
	}
	for _, ind := range sim.Orders() {
		if ind.Status != enum.OrderStatusNew {
			t.Fatalf("order %d mutated! status %s", ind.EntrustID, ind.Status)
		}
	}
}

func TestSimulatorCancel(t *testing.T) {
	sim := NewSimulator(tradeDate, true)
	entrustID, err := sim.Add(model.NewOrder("600030.SH", enum.OrderSideBuy, enum.OrderTypeMarket, decimal.Zero, d("100"), tradeDate, 0))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	ind, err := sim.Cancel(entrustID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if ind.Status != enum.OrderStatusCancelled {
		t.Fatalf("status mismatch! should be %s but got %s", enum.OrderStatusCancelled, ind.Status)
	}
	if !sim.MatchFinished() {
		t.Fatal("cancelled order should leave the open set empty")
	}

	if _, err := sim.Cancel(entrustID); !errors.Is(err, exception.ErrOrderNotFound) {
		t.Fatalf("error mismatch! should be %v but got %v", exception.ErrOrderNotFound, err)
	}
}

func TestSimulatorAfterMarketClose(t *testing.T) {
	t.Run("carry overnight", func(t *testing.T) {
		sim := NewSimulator(tradeDate, true)
		if _, err := sim.Add(model.NewOrder("600030.SH", enum.OrderSideBuy, enum.OrderTypeMarket, decimal.Zero, d("100"), tradeDate, 0)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		if inds := sim.OnAfterMarketClose(); len(inds) != 0 {
			t.Fatalf("carry mode should emit nothing, got %d indications", len(inds))
		}
		if sim.MatchFinished() {
			t.Fatal("carried order should remain resting")
		}
	})

	t.Run("purge at close", func(t *testing.T) {
		sim := NewSimulator(tradeDate, false)
		if _, err := sim.Add(model.NewOrder("600030.SH", enum.OrderSideBuy, enum.OrderTypeMarket, decimal.Zero, d("100"), tradeDate, 0)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		inds := sim.OnAfterMarketClose()
		if len(inds) != 1 {
			t.Fatalf("indication count mismatch! should be 1 but got %d", len(inds))
		}
		if inds[0].Status != enum.OrderStatusCancelled {
			t.Fatalf("status mismatch! should be %s but got %s", enum.OrderStatusCancelled, inds[0].Status)
		}
		if !sim.MatchFinished() {
			t.Fatal("purged set should be empty")
		}
	})
}
