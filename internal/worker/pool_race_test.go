package worker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mlr-stats/stats-api/internal/models"
)

func TestPool_RaceCondition(t *testing.T) {
	conn := &MockClickHouseConn{}
	p := NewPool(PoolConfig{
		WorkerCount:   2,
		QueueSize:     1000,
		BatchSize:     10,
		FlushInterval: 10 * time.Millisecond,
		ClickHouse:    conn,
		Logger:        zap.NewNop(),
	})
	p.Start(context.Background())

	wg := sync.WaitGroup{}
	producers := 10
	eventsPerProducer := 100

	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < eventsPerProducer; j++ {
				p.Enqueue(&models.QueryEvent{
					Endpoint: "/api/v1/stats/players",
					Groups:   fmt.Sprintf("hitting-%d", i),
					Status:   200,
				})
				if j%10 == 0 {
					time.Sleep(1 * time.Millisecond)
				}
			}
		}(i)
	}

	// Stop concurrently with the tail of the producers
	time.Sleep(20 * time.Millisecond)
	p.Stop()
	wg.Wait()

	if n := len(conn.SentRows()); n > producers*eventsPerProducer {
		t.Errorf("sent %d rows, more than were produced", n)
	}
}
