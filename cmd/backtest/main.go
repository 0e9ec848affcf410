package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/shopspring/decimal"

	"main/internal/blotter"
	"main/internal/gateway"
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/ops"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config")
	barsPath := flag.String("bars", "", "Path to JSON bar file")
	ordersPath := flag.String("orders", "", "Path to JSON order file placed before replay")
	goalsPath := flag.String("goals", "", "Path to JSON goal-portfolio file placed before replay")
	freqName := flag.String("freq", "1M", "Bar frequency: 1M|5M|15S|Special|Daily")
	flag.Parse()

	if *configPath == "" {
		log.Fatalf("config is required")
	}
	if *barsPath == "" {
		log.Fatalf("bars is required")
	}

	loaded, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	freq, err := parseFreq(*freqName)
	if err != nil {
		log.Fatalf("invalid freq: %v", err)
	}
	steps, err := loadBars(*barsPath)
	if err != nil {
		log.Fatalf("bar load failed: %v", err)
	}

	var archive *blotter.Blotter
	if loaded.Blotter.Enabled {
		archive, err = blotter.Open(blotter.Option{
			Host:     loaded.Blotter.Host,
			Port:     loaded.Blotter.Port,
			User:     loaded.Blotter.User,
			Password: loaded.Blotter.Password,
			Database: loaded.Blotter.Database,
			SSLMode:  loaded.Blotter.SSLMode,
		})
		if err != nil {
			log.Fatalf("blotter open failed: %v", err)
		}
		defer func() {
			_ = archive.Close()
		}()
	}

	gw := gateway.NewSimGateway(gateway.SimConfig{
		TradeDate:      loaded.TradeDate,
		CarryOvernight: loaded.CarryOvernight,
		Universe:       loaded.Universe.Symbols(),
	}, gateway.Callbacks{
		OnTaskRsp: func(r model.TaskRsp) {
			fmt.Printf("task %d accepted external=%d\n", r.TaskID, r.ExternalID)
		},
		OnTrade: func(t model.Trade) {
			fmt.Printf("fill %d entrust=%d task=%d %s %s %s@%s at %d\n",
				t.FillID, t.EntrustID, t.TaskID, t.Symbol, t.Side, t.FillSize, t.FillPrice, t.FillTime)
			if archive != nil {
				if err := archive.SaveTrade(t); err != nil {
					log.Printf("blotter trade save failed: %v", err)
				}
			}
		},
		OnOrderStatus: func(ind model.OrderStatusInd) {
			fmt.Printf("order %d task=%d %s %s filled=%s cancelled=%s\n",
				ind.EntrustID, ind.TaskID, ind.Symbol, ind.Status, ind.FillSize, ind.CancelSize)
			if archive != nil {
				if err := archive.SaveOrderStatus(ind); err != nil {
					log.Printf("blotter order save failed: %v", err)
				}
			}
		},
	})

	if err := placeOrders(gw, *ordersPath); err != nil {
		log.Fatalf("order placement failed: %v", err)
	}
	if err := placeGoals(gw, *goalsPath); err != nil {
		log.Fatalf("goal placement failed: %v", err)
	}

	for _, step := range steps {
		if err := gw.MatchBars(step.bars, freq); err != nil {
			log.Fatalf("bar match at %d failed: %v", step.tm, err)
		}
		if err := gw.MatchSnapshot(step.bars, loaded.TradeDate, step.tm); err != nil {
			log.Fatalf("snapshot match at %d failed: %v", step.tm, err)
		}
	}
	gw.OnAfterMarketClose()

	if archive != nil {
		tasks, _ := gw.QueryTask(gateway.QueryAll)
		for _, task := range tasks {
			if err := archive.SaveTask(task); err != nil {
				log.Printf("blotter task save failed: %v", err)
			}
		}
	}

	trades, _ := gw.QueryTrade(gateway.QueryAll)
	fmt.Printf("replayed %d steps, %d fills\n", len(steps), len(trades))
}

// barRow is one JSON record in the bar file.
type barRow struct {
	Symbol string          `json:"symbol"`
	Time   int64           `json:"time"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Vwap   decimal.Decimal `json:"vwap"`
	Date   int64           `json:"tradeDate"`
}

type barStep struct {
	tm   int64
	bars map[string]model.Quote
}

// loadBars groups bar rows by time into replay steps, ordered by time.
func loadBars(path string) ([]barStep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []barRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	grouped := make(map[int64]map[string]model.Quote)
	for _, r := range rows {
		bars, ok := grouped[r.Time]
		if !ok {
			bars = make(map[string]model.Quote)
			grouped[r.Time] = bars
		}
		bars[r.Symbol] = model.Quote{
			Symbol:    r.Symbol,
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Vwap:      r.Vwap,
			TradeDate: r.Date,
			Time:      r.Time,
		}
	}

	steps := make([]barStep, 0, len(grouped))
	for tm, bars := range grouped {
		steps = append(steps, barStep{tm: tm, bars: bars})
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].tm < steps[j].tm })
	return steps, nil
}

type orderRow struct {
	Symbol string          `json:"symbol"`
	Side   string          `json:"side"`
	Price  decimal.Decimal `json:"price"`
	Size   decimal.Decimal `json:"size"`
	Algo   string          `json:"algo"`
}

func placeOrders(gw *gateway.SimGateway, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var rows []orderRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	for _, r := range rows {
		side, err := parseSide(r.Side)
		if err != nil {
			return err
		}
		if _, err := gw.PlaceOrder(r.Symbol, side, r.Price, r.Size, r.Algo, nil, ""); err != nil {
			return err
		}
	}
	return nil
}

type goalRow struct {
	Symbol   string          `json:"symbol"`
	RefPrice decimal.Decimal `json:"refPrice"`
	Size     decimal.Decimal `json:"size"`
}

func placeGoals(gw *gateway.SimGateway, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var rows []goalRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	goals := make([]model.TargetPosition, 0, len(rows))
	for _, r := range rows {
		goals = append(goals, model.TargetPosition{Symbol: r.Symbol, RefPrice: r.RefPrice, Size: r.Size})
	}
	_, err = gw.GoalPortfolio(goals, "", nil, "")
	return err
}

func parseSide(s string) (enum.OrderSide, error) {
	switch s {
	case "Buy", "buy":
		return enum.OrderSideBuy, nil
	case "Sell", "sell":
		return enum.OrderSideSell, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

func parseFreq(s string) (enum.BarFreq, error) {
	switch s {
	case "1M":
		return enum.BarFreqMin, nil
	case "5M":
		return enum.BarFreqFiveMin, nil
	case "15S":
		return enum.BarFreqQuarterMin, nil
	case "Special":
		return enum.BarFreqSpecial, nil
	case "Daily":
		return enum.BarFreqDaily, nil
	default:
		return 0, fmt.Errorf("unknown freq %q", s)
	}
}
