package event

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent provides the default DomainEvent implementation.
type BaseEvent struct {
	id            string
	eventType     string
	aggregateID   string
	aggregateType string
	occurredAt    time.Time
}

// NewBaseEvent creates a BaseEvent with a generated UUID and the current time.
func NewBaseEvent(eventType, aggregateID, aggregateType string) BaseEvent {
	return BaseEvent{
		id:            uuid.New().String(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    time.Now().UTC(),
	}
}

// EventID returns the unique identifier for this event.
func (e BaseEvent) EventID() string { return e.id }

// EventType returns the type name of this event.
func (e BaseEvent) EventType() string { return e.eventType }

// AggregateID returns the identifier of the aggregate that produced this event.
func (e BaseEvent) AggregateID() string { return e.aggregateID }

// AggregateType returns the type name of the aggregate.
func (e BaseEvent) AggregateType() string { return e.aggregateType }

// OccurredAt returns the time at which this event occurred.
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }

// EvaluationCompleted is raised after a customer evaluation finishes.
type EvaluationCompleted struct {
	BaseEvent
	CustomerID            string `json:"customer_id"`
	AdmissibleOffers      int    `json:"admissible_offers"`
	BestOfferID           string `json:"best_offer_id,omitempty"`
	BaselineNonConvergent bool   `json:"baseline_non_convergent"`
}

// NewEvaluationCompleted builds the completion event for one evaluation.
func NewEvaluationCompleted(evaluationID, customerID string, admissibleOffers int, bestOfferID string, baselineNonConvergent bool) EvaluationCompleted {
	return EvaluationCompleted{
		BaseEvent:             NewBaseEvent("consolidation.evaluation.completed", evaluationID, "Evaluation"),
		CustomerID:            customerID,
		AdmissibleOffers:      admissibleOffers,
		BestOfferID:           bestOfferID,
		BaselineNonConvergent: baselineNonConvergent,
	}
}
