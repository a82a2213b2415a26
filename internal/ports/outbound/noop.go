package outbound

import (
	"context"

	"github.com/nutriplan/v1/internal/domain/shared"
)

// NopMetrics discards every measurement
type NopMetrics struct{}

func (NopMetrics) MenuSuggested(int)             {}
func (NopMetrics) SlotSkipped(string)            {}
func (NopMetrics) MenuForked()                   {}
func (NopMetrics) MenuEdited()                   {}
func (NopMetrics) ItemStatusRejected(string)     {}
func (NopMetrics) PlanTransition(string, string) {}
func (NopMetrics) PlansCancelled(int64)          {}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...shared.DomainEvent) error { return nil }
