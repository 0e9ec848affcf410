package model

import (
	"sync"

	"github.com/shopspring/decimal"

	"main/pkg/exception"
)

// Gateway operation names recorded on tasks.
const (
	FunctionPlaceOrder      = "place_order"
	FunctionPlaceBatchOrder = "place_batch_order"
	FunctionGoalPortfolio   = "goal_portfolio"
)

// TargetPosition is one entry of a goal-portfolio request.
type TargetPosition struct {
	Symbol   string
	RefPrice decimal.Decimal
	Size     decimal.Decimal
}

// Task is a strategy's single request. It is created when the request
// is issued, carries the locally minted task ID from before dispatch,
// and lives for the whole trading session as the correlation anchor.
type Task struct {
	TaskID    int64
	Algo      string
	AlgoParam map[string]string
	Function  string

	// UserData is an opaque strategy tag carried through unchanged.
	UserData string

	// Exactly one payload is set, depending on Function.
	Orders []*Order
	Goals  []TargetPosition

	// ExternalID is the broker-assigned identifier, attached once on
	// the first successful response.
	ExternalID int64
}

// NewOrderTask wraps one or more orders for place_order/place_batch_order.
func NewOrderTask(taskID int64, function, algo string, algoParam map[string]string, userdata string, orders ...*Order) *Task {
	return &Task{
		TaskID:    taskID,
		Algo:      algo,
		AlgoParam: algoParam,
		Function:  function,
		UserData:  userdata,
		Orders:    orders,
	}
}

// NewGoalTask wraps a target-position collection for goal_portfolio.
func NewGoalTask(taskID int64, algo string, algoParam map[string]string, userdata string, goals []TargetPosition) *Task {
	return &Task{
		TaskID:    taskID,
		Algo:      algo,
		AlgoParam: algoParam,
		Function:  FunctionGoalPortfolio,
		UserData:  userdata,
		Goals:     goals,
	}
}

// TaskTable registers tasks by task ID for the life of a session.
// Strategy goroutines register while the dispatch loop resolves, so
// every access holds the lock.
type TaskTable struct {
	mu    sync.RWMutex
	tasks map[int64]*Task
	order []int64
}

func NewTaskTable() *TaskTable {
	return &TaskTable{tasks: make(map[int64]*Task)}
}

// Add registers a task. Task IDs are minted fresh, so a collision is a
// generator misuse and is reported instead of overwritten.
func (t *TaskTable) Add(task *Task) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.tasks[task.TaskID]; ok {
		return exception.ErrDuplicateTask
	}
	t.tasks[task.TaskID] = task
	t.order = append(t.order, task.TaskID)
	return nil
}

// Get returns the task for an ID.
func (t *TaskTable) Get(taskID int64) (*Task, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	task, ok := t.tasks[taskID]
	return task, ok
}

// SetExternalID attaches the broker-assigned identifier to a task,
// keeping the write under the table lock. Reports whether the task
// exists.
func (t *TaskTable) SetExternalID(taskID, externalID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.tasks[taskID]
	if !ok {
		return false
	}
	task.ExternalID = externalID
	return true
}

// All returns every registered task in insertion order.
func (t *TaskTable) All() []*Task {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Task, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.tasks[id])
	}
	return out
}
