package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRecording(t *testing.T) {
	t.Parallel()

	m := &Metrics{}
	m.RecordAssetQuery(nil)
	m.RecordAssetQuery(errors.New("down"))
	m.RecordDomainLookup(nil)
	m.RecordClaimSubmitted()
	m.RecordClaimConfirmed()
	m.RecordClaimReverted()
	m.RecordRPCCall(10 * time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.AssetQueriesTotal)
	assert.Equal(t, int64(1), snap.AssetQueriesErrors)
	assert.Equal(t, int64(1), snap.DomainLookupsTotal)
	assert.Equal(t, int64(0), snap.DomainLookupsErrors)
	assert.Equal(t, int64(1), snap.ClaimsSubmitted)
	assert.Equal(t, int64(1), snap.ClaimsConfirmed)
	assert.Equal(t, int64(1), snap.ClaimsReverted)
	assert.Equal(t, int64(1), snap.RPCCallsTotal)
	assert.InDelta(t, 10.0, m.RPCLatencyAvgMs(), 0.01)
}

func TestMetricsReset(t *testing.T) {
	t.Parallel()

	m := &Metrics{}
	m.RecordClaimSubmitted()
	m.Reset()
	assert.Equal(t, int64(0), m.Snapshot().ClaimsSubmitted)
}

func TestMetricsConcurrent(t *testing.T) {
	t.Parallel()

	m := &Metrics{}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordClaimSubmitted()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1000), m.Snapshot().ClaimsSubmitted)
}

func TestRPCLatencyAvgMsNoCalls(t *testing.T) {
	t.Parallel()

	m := &Metrics{}
	assert.Zero(t, m.RPCLatencyAvgMs())
}
