package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"

	"main/internal/blotter"
	"main/internal/broker"
	"main/internal/gateway"
	"main/internal/model"
	"main/internal/ops"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config")
	pyroscopeAddr := flag.String("pyroscope", "", "Pyroscope server address (empty disables profiling)")
	flag.Parse()

	if *configPath == "" {
		log.Fatalf("config is required")
	}
	loaded, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *pyroscopeAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "trade/gateway",
			ServerAddress:   *pyroscopeAddr,
			Tags: map[string]string{
				"env": "local",
			},
			Logger: emptyLogger{},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() {
			_ = profiler.Stop()
		}()
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

	client, err := broker.NewClient(ctx, broker.Config{
		Address:  loaded.Broker.Address,
		Username: loaded.Broker.Username,
		Password: loaded.Broker.Password,
	})
	if err != nil {
		log.Fatalf("broker client init failed: %v", err)
	}

	gw, err := gateway.NewRealGateway(gateway.RealConfig{
		Address:       loaded.Broker.Address,
		Username:      loaded.Broker.Username,
		Password:      loaded.Broker.Password,
		TradeDate:     loaded.TradeDate,
		QueueCapacity: loaded.QueueCapacity,
	}, client, sessionCallbacks(archive))
	if err != nil {
		log.Fatalf("gateway init failed: %v", err)
	}
	defer func() {
		_ = gw.Close()
	}()

	client.SetCallbacks(gw.BrokerCallbacks())
	if err := client.Start(ctx); err != nil {
		log.Fatalf("broker connect failed: %v", err)
	}
	defer func() {
		_ = client.Close()
	}()

	logs.Infof("trading session started, date=%d", loaded.TradeDate)
	gw.Run(ctx)
	logs.Info("trading session stopped")
}

// sessionCallbacks logs every indication and mirrors fills and order
// statuses into the archive when one is configured.
func sessionCallbacks(archive *blotter.Blotter) gateway.Callbacks {
	return gateway.Callbacks{
		OnTaskRsp: func(r model.TaskRsp) {
			if !r.Success() {
				logs.Warnf("task %d rejected: %s", r.TaskID, r.Msg)
				return
			}
			logs.Infof("task %d accepted external=%d", r.TaskID, r.ExternalID)
		},
		OnTrade: func(t model.Trade) {
			logs.Infof("fill %d entrust=%d task=%d %s %s %s@%s",
				t.FillID, t.EntrustID, t.TaskID, t.Symbol, t.Side, t.FillSize, t.FillPrice)
			if archive != nil {
				if err := archive.SaveTrade(t); err != nil {
					logs.Errorf("blotter trade save failed: %v", err)
				}
			}
		},
		OnOrderStatus: func(ind model.OrderStatusInd) {
			logs.Infof("order %d task=%d %s %s filled=%s cancelled=%s",
				ind.EntrustID, ind.TaskID, ind.Symbol, ind.Status, ind.FillSize, ind.CancelSize)
			if archive != nil {
				if err := archive.SaveOrderStatus(ind); err != nil {
					logs.Errorf("blotter order save failed: %v", err)
				}
			}
		},
		OnTaskStatus: func(ind model.TaskInd) {
			logs.Infof("task %d external=%d status=%s %s", ind.TaskID, ind.ExternalID, ind.Status, ind.Msg)
		},
		OnConnection: func(connected bool) {
			if connected {
				logs.Info("trade service connected")
				return
			}
			logs.Warn("trade service disconnected")
		},
	}
}

type emptyLogger struct{}

func (emptyLogger) Infof(_ string, _ ...interface{})  {}
func (emptyLogger) Debugf(_ string, _ ...interface{}) {}
func (emptyLogger) Errorf(_ string, _ ...interface{}) {}
