package worker

import (
	"context"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockClickHouseConn implements driver.Conn for testing
type MockClickHouseConn struct {
	driver.Conn

	mu         sync.Mutex
	Batches    []*MockBatch
	PrepareErr error
	SendErr    error
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	if m.PrepareErr != nil {
		return nil, m.PrepareErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b := &MockBatch{Query: query, sendErr: m.SendErr, mu: &m.mu}
	m.Batches = append(m.Batches, b)
	return b, nil
}

// SentRows returns every row of every successfully sent batch.
func (m *MockClickHouseConn) SentRows() [][]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows [][]interface{}
	for _, b := range m.Batches {
		if b.sent {
			rows = append(rows, b.Appended...)
		}
	}
	return rows
}

type MockBatch struct {
	driver.Batch

	Query    string
	Appended [][]interface{}
	sent     bool
	sendErr  error
	mu       *sync.Mutex
}

func (m *MockBatch) IsSent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent
}

func (m *MockBatch) Rows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Appended)
}

func (m *MockBatch) Append(v ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Appended = append(m.Appended, v)
	return nil
}

func (m *MockBatch) Send() error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = true
	return nil
}

func (m *MockBatch) Abort() error {
	return nil
}
