//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"roulette-lab/domain"
	"roulette-lab/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself; the supervisor recovers its panics and
// restarts it.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker,
// for logging and supervision purposes, avoiding the need for manual
// naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is one connected client's outbound channel.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry maps connections to sinks and tables to their occupants.
type IRegistry interface {
	SinksForTable(tableID string, exclude ...string) []EventSink
	Subscribe(connID, tableID string, sink EventSink)
	Unsubscribe(connID, tableID string)
}

// OutcomeRecorder appends consumed outcomes to the audit trail.
type OutcomeRecorder interface {
	Record(sessionID string, outcome domain.Outcome) error
}
