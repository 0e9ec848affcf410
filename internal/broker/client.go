package broker

import (
	"context"
	"sync/atomic"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
	"github.com/yanun0323/pkg/ws"

	"main/internal/bus"
	"main/internal/gateway"
	"main/internal/model"
	"main/pkg/exception"
)

// Config holds the broker session parameters.
type Config struct {
	Address  string
	Username string
	Password string
}

// Client is a websocket binding to the external trade service. It
// implements gateway.BrokerClient; all request methods run on the
// gateway's bus goroutine, while pushed indications are forwarded
// through the gateway's broker callbacks from the observer goroutine.
type Client struct {
	cfg   Config
	wss   *ws.WebSocket
	cb    gateway.BrokerCallbacks
	reqID atomic.Int64
}

var _ gateway.BrokerClient = (*Client)(nil)

// NewClient prepares a client; install callbacks with SetCallbacks,
// then Start dials and logs in.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Address == "" {
		return nil, exception.ErrMissingBrokerAddress
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, exception.ErrMissingCredentials
	}
	return &Client{
		cfg: cfg,
		wss: ws.New(ctx, cfg.Address),
	}, nil
}

// SetCallbacks installs the indication sinks before Start.
func (c *Client) SetCallbacks(cb gateway.BrokerCallbacks) {
	c.cb = cb
}

// Start dials the trade service, logs in, and begins observing pushed
// indications.
func (c *Client) Start(ctx context.Context) error {
	if err := c.wss.Start(ctx); err != nil {
		return errors.Wrap(err, "start wss")
	}
	if err := c.login(ctx); err != nil {
		return errors.Wrap(err, "login")
	}
	c.observe(ctx)
	if c.cb.OnConnection != nil {
		c.cb.OnConnection(true)
	}
	return nil
}

// Close tears the session down.
func (c *Client) Close() error {
	c.wss.Close()
	if c.cb.OnConnection != nil {
		c.cb.OnConnection(false)
	}
	return nil
}

func (c *Client) nextReqID() int64 {
	return c.reqID.Add(1)
}

func (c *Client) login(ctx context.Context) error {
	id := c.nextReqID()
	return c.call(ctx, request{
		Method: "login",
		ID:     id,
		Params: map[string]any{
			"username": c.cfg.Username,
			"password": c.cfg.Password,
		},
	}, nil)
}

// PlaceOrder submits the task's orders and returns the broker-assigned
// task identifier.
func (c *Client) PlaceOrder(ctx context.Context, task *model.Task) (int64, error) {
	orders := make([]orderPayload, 0, len(task.Orders))
	for _, o := range task.Orders {
		orders = append(orders, orderPayload{
			Symbol: o.Symbol,
			Side:   o.Side.String(),
			Type:   o.Type.String(),
			Price:  o.EntrustPrice.String(),
			Size:   o.EntrustSize.String(),
		})
	}

	var result acceptResult
	err := c.call(ctx, request{
		Method: "place_order",
		ID:     c.nextReqID(),
		Params: map[string]any{
			"orders":     orders,
			"algo":       task.Algo,
			"algo_param": task.AlgoParam,
		},
	}, &result)
	if err != nil {
		return 0, err
	}
	return result.TaskID, nil
}

// GoalPortfolio submits the task's target positions.
func (c *Client) GoalPortfolio(ctx context.Context, task *model.Task) (int64, error) {
	goals := make([]goalPayload, 0, len(task.Goals))
	for _, g := range task.Goals {
		goals = append(goals, goalPayload{
			Symbol:   g.Symbol,
			RefPrice: g.RefPrice.String(),
			Size:     g.Size.String(),
		})
	}

	var result acceptResult
	err := c.call(ctx, request{
		Method: "goal_portfolio",
		ID:     c.nextReqID(),
		Params: map[string]any{
			"positions":  goals,
			"algo":       task.Algo,
			"algo_param": task.AlgoParam,
		},
	}, &result)
	if err != nil {
		return 0, err
	}
	return result.TaskID, nil
}

// CancelOrder asks the broker to cancel one entrust.
func (c *Client) CancelOrder(ctx context.Context, entrustID int64) error {
	return c.call(ctx, request{
		Method: "cancel_order",
		ID:     c.nextReqID(),
		Params: map[string]any{"entrust_no": entrustID},
	}, nil)
}

// Query fires a dataset request; rows come back as pushed indications.
func (c *Client) Query(ctx context.Context, kind bus.QueryKind, taskID int64, symbols string) error {
	return c.call(ctx, request{
		Method: "query",
		ID:     c.nextReqID(),
		Params: map[string]any{
			"kind":    int(kind),
			"task_id": taskID,
			"symbols": symbols,
		},
	}, nil)
}

// call sends one request and waits for the matching acknowledgement.
func (c *Client) call(ctx context.Context, req request, result any) error {
	var failure error
	err := c.wss.SendAndWait(ctx, ws.Sidecar{
		Sender: func(ctx context.Context, socket *ws.WebSocket) error {
			if err := socket.WriteJSON(req); err != nil {
				return errors.Wrap(err, "write request")
			}
			return nil
		},
		Waiter: func(ctx context.Context, m ws.Message) (bool, error) {
			resp, ok := ws.ReadMessage[response](m)
			if !ok || resp.ID != req.ID {
				return false, nil
			}
			if resp.Error != "" {
				failure = errors.Wrap(exception.ErrBrokerReject, resp.Error)
				return true, nil
			}
			if result != nil {
				if err := m.Unmarshal(&envelope{Result: result}); err != nil {
					return false, errors.Wrap(err, "unmarshal result")
				}
			}
			return true, nil
		},
	}, false)
	if err != nil {
		return errors.Wrap(err, req.Method)
	}
	return failure
}

// observe forwards pushed indications until shutdown.
func (c *Client) observe(ctx context.Context) {
	ch, cancel := c.wss.Subscribe()
	go func() {
		defer cancel()
		for {
			select {
			case <-sys.Shutdown():
				return
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					if c.cb.OnConnection != nil {
						c.cb.OnConnection(false)
					}
					return
				}
				c.dispatch(m)
			}
		}
	}()
}

func (c *Client) dispatch(m ws.Message) {
	push, ok := ws.ReadMessage[pushMessage](m)
	if !ok {
		return
	}

	switch push.Method {
	case "trade_ind":
		if c.cb.OnTrade == nil {
			return
		}
		var ind tradeInd
		if err := m.Unmarshal(&envelope{Result: &ind}); err != nil {
			logs.Errorf("broker: unmarshal trade ind: %+v", err)
			return
		}
		c.cb.OnTrade(ind.toModel())
	case "order_status_ind":
		if c.cb.OnOrderStatus == nil {
			return
		}
		var ind orderStatusInd
		if err := m.Unmarshal(&envelope{Result: &ind}); err != nil {
			logs.Errorf("broker: unmarshal order status ind: %+v", err)
			return
		}
		c.cb.OnOrderStatus(ind.toModel())
	case "task_ind":
		if c.cb.OnTaskStatus == nil {
			return
		}
		var ind taskInd
		if err := m.Unmarshal(&envelope{Result: &ind}); err != nil {
			logs.Errorf("broker: unmarshal task ind: %+v", err)
			return
		}
		c.cb.OnTaskStatus(ind.toModel())
	case "connection":
		if c.cb.OnConnection != nil {
			c.cb.OnConnection(push.Connected)
		}
	}
}
