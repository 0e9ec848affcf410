package gateway

import (
	"sync"

	"main/pkg/exception"
)

// CorrelationTable maps externally issued identifiers back to locally
// minted task IDs. Indications from the executing side only carry the
// external identifier; this table is the join back to the original
// request.
//
// The mapping is strictly one-to-one: a second success response for an
// already-mapped task, or a reused external identifier, is a protocol
// violation and is reported instead of overwritten.
//
// The dispatch loop records while strategy goroutines probe, so every
// access holds the lock.
type CorrelationTable struct {
	mu         sync.RWMutex
	byExternal map[int64]int64
	byTask     map[int64]int64
}

func NewCorrelationTable() *CorrelationTable {
	return &CorrelationTable{
		byExternal: make(map[int64]int64),
		byTask:     make(map[int64]int64),
	}
}

// Record installs externalID -> taskID.
func (c *CorrelationTable) Record(externalID, taskID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byExternal[externalID]; ok {
		return exception.ErrExternalIDRemapped
	}
	if _, ok := c.byTask[taskID]; ok {
		return exception.ErrTaskRemapped
	}
	c.byExternal[externalID] = taskID
	c.byTask[taskID] = externalID
	return nil
}

// Resolve returns the task ID mapped to an external identifier.
func (c *CorrelationTable) Resolve(externalID int64) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	taskID, ok := c.byExternal[externalID]
	return taskID, ok
}

// Mapped reports whether a task already received its external identifier.
func (c *CorrelationTable) Mapped(taskID int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.byTask[taskID]
	return ok
}
