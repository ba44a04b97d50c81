// Package metrics provides application-level metrics collection using
// atomic counters.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds claim-flow metrics using atomic counters for thread safety.
type Metrics struct {
	// Asset index queries
	assetQueriesTotal  atomic.Int64
	assetQueriesErrors atomic.Int64

	// Registry reads
	domainLookupsTotal  atomic.Int64
	domainLookupsErrors atomic.Int64

	// Claim lifecycle
	claimsSubmitted atomic.Int64
	claimsConfirmed atomic.Int64
	claimsReverted  atomic.Int64

	// RPC latency
	rpcCallsTotal   atomic.Int64
	rpcLatencyNanos atomic.Int64
}

// Global is the global metrics instance.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordAssetQuery records an asset index query and its outcome.
func (m *Metrics) RecordAssetQuery(err error) {
	m.assetQueriesTotal.Add(1)
	if err != nil {
		m.assetQueriesErrors.Add(1)
	}
}

// RecordDomainLookup records a claimed-domain registry read.
func (m *Metrics) RecordDomainLookup(err error) {
	m.domainLookupsTotal.Add(1)
	if err != nil {
		m.domainLookupsErrors.Add(1)
	}
}

// RecordClaimSubmitted records a broadcast claim transaction.
func (m *Metrics) RecordClaimSubmitted() {
	m.claimsSubmitted.Add(1)
}

// RecordClaimConfirmed records a confirmed claim.
func (m *Metrics) RecordClaimConfirmed() {
	m.claimsConfirmed.Add(1)
}

// RecordClaimReverted records a mined-but-failed claim.
func (m *Metrics) RecordClaimReverted() {
	m.claimsReverted.Add(1)
}

// RecordRPCCall records an RPC call and its duration.
func (m *Metrics) RecordRPCCall(duration time.Duration) {
	m.rpcCallsTotal.Add(1)
	m.rpcLatencyNanos.Add(duration.Nanoseconds())
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	AssetQueriesTotal   int64
	AssetQueriesErrors  int64
	DomainLookupsTotal  int64
	DomainLookupsErrors int64
	ClaimsSubmitted     int64
	ClaimsConfirmed     int64
	ClaimsReverted      int64
	RPCCallsTotal       int64
	RPCLatencyNanos     int64
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		AssetQueriesTotal:   m.assetQueriesTotal.Load(),
		AssetQueriesErrors:  m.assetQueriesErrors.Load(),
		DomainLookupsTotal:  m.domainLookupsTotal.Load(),
		DomainLookupsErrors: m.domainLookupsErrors.Load(),
		ClaimsSubmitted:     m.claimsSubmitted.Load(),
		ClaimsConfirmed:     m.claimsConfirmed.Load(),
		ClaimsReverted:      m.claimsReverted.Load(),
		RPCCallsTotal:       m.rpcCallsTotal.Load(),
		RPCLatencyNanos:     m.rpcLatencyNanos.Load(),
	}
}

// RPCLatencyAvgMs returns the average RPC latency in milliseconds,
// zero when no calls have been made.
func (m *Metrics) RPCLatencyAvgMs() float64 {
	calls := m.rpcCallsTotal.Load()
	if calls == 0 {
		return 0
	}
	return float64(m.rpcLatencyNanos.Load()) / float64(calls) / 1e6
}

// Reset zeroes all metrics. Useful for testing.
func (m *Metrics) Reset() {
	m.assetQueriesTotal.Store(0)
	m.assetQueriesErrors.Store(0)
	m.domainLookupsTotal.Store(0)
	m.domainLookupsErrors.Store(0)
	m.claimsSubmitted.Store(0)
	m.claimsConfirmed.Store(0)
	m.claimsReverted.Store(0)
	m.rpcCallsTotal.Store(0)
	m.rpcLatencyNanos.Store(0)
}
