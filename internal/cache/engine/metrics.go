/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values of the cache metrics.
const (
	resultHit     = "hit"
	resultMiss    = "miss"
	resultSuccess = "success"
	resultFailure = "failure"

	reasonLazy  = "lazy"
	reasonSweep = "sweep"
	reasonTag   = "tag"
)

// Metrics holds the Prometheus metrics of the cache engine.
type Metrics struct {
	// Read metrics
	LookupsTotal *prometheus.CounterVec

	// Population metrics
	PopulationsTotal  *prometheus.CounterVec
	PopulationLatency prometheus.Histogram

	// Maintenance metrics
	EvictionsTotal *prometheus.CounterVec
	SweepsTotal    prometheus.Counter

	// Storage metrics
	StorageErrorsTotal *prometheus.CounterVec
	OperationDuration  *prometheus.HistogramVec
}

// NewMetrics creates the engine metrics under the namespace and registers them with the registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Total cache lookups by result",
		}, []string{"result"}),

		PopulationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "populations_total",
			Help:      "Total getOrSet population rounds by result",
		}, []string{"result"}),
		PopulationLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "population_latency_seconds",
			Help:      "Latency of the compute functions populating the cache",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),

		EvictionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Total entries removed by lazy eviction, sweeps and tag invalidation",
		}, []string{"reason"}),
		SweepsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_total",
			Help:      "Total expired entry sweeps",
		}),

		StorageErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_errors_total",
			Help:      "Total durable store failures by operation",
		}, []string{"operation"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Cache operation duration by operation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// RecordLookup records the result of a lookup.
func (m *Metrics) RecordLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.LookupsTotal.WithLabelValues(resultHit).Inc()
	} else {
		m.LookupsTotal.WithLabelValues(resultMiss).Inc()
	}
}

// RecordPopulation records a finished population round.
func (m *Metrics) RecordPopulation(success bool, duration time.Duration) {
	if m == nil {
		return
	}
	if success {
		m.PopulationsTotal.WithLabelValues(resultSuccess).Inc()
	} else {
		m.PopulationsTotal.WithLabelValues(resultFailure).Inc()
	}
	m.PopulationLatency.Observe(duration.Seconds())
}

// RecordEvictions records entries removed for the reason.
func (m *Metrics) RecordEvictions(reason string, count int64) {
	if m == nil || count <= 0 {
		return
	}
	m.EvictionsTotal.WithLabelValues(reason).Add(float64(count))
}

// RecordSweep records a completed sweep.
func (m *Metrics) RecordSweep(removed int64) {
	if m == nil {
		return
	}
	m.SweepsTotal.Inc()
	m.RecordEvictions(reasonSweep, removed)
}

// RecordStorageError records a durable store failure.
func (m *Metrics) RecordStorageError(operation string) {
	if m == nil {
		return
	}
	m.StorageErrorsTotal.WithLabelValues(operation).Inc()
}

// ObserveOperation records the duration of an operation started at start.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
