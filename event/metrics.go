// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package event

import (
	"github.com/prometheus/client_golang/prometheus"
)

type eventMetrics struct {
	eventsTotal   *prometheus.CounterVec
	eventsDropped *prometheus.CounterVec
	subscribers   *prometheus.GaugeVec
}

func (e *EventBus) initMetrics(promRegistry prometheus.Registerer) {
	e.metrics = &eventMetrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventbus_events_total",
				Help: "total number of events published by type",
			},
			[]string{"type"},
		),
		eventsDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventbus_events_dropped_total",
				Help: "total number of async events dropped by type",
			},
			[]string{"type"},
		),
		subscribers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "eventbus_subscribers",
				Help: "current number of subscribers by event type",
			},
			[]string{"type"},
		),
	}
	promRegistry.MustRegister(
		e.metrics.eventsTotal,
		e.metrics.eventsDropped,
		e.metrics.subscribers,
	)
}
