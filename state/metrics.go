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

package state

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type stateMetrics struct {
	tagClassesCreated prometheus.Counter
	tagClassesUpdated prometheus.Counter
	tagsSet           prometheus.Counter
	tagsDeleted       prometheus.Counter
	permissionDenied  prometheus.Counter
}

func (m *stateMetrics) init(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	m.tagClassesCreated = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "cairn_tag_classes_created_total",
		Help: "total number of tag classes registered",
	})
	m.tagClassesUpdated = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "cairn_tag_classes_updated_total",
		Help: "total number of tag class updates",
	})
	m.tagsSet = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "cairn_tags_set_total",
		Help: "total number of tag writes",
	})
	m.tagsDeleted = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "cairn_tags_deleted_total",
		Help: "total number of tag deletions",
	})
	m.permissionDenied = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "cairn_permission_denied_total",
		Help: "total number of operations rejected for missing authority",
	})
}
