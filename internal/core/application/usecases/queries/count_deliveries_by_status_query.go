package queries

import (
	"context"
	"errors"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/ports"
	"grameego/internal/pkg/guard"
)

var ErrCountDeliveriesByStatusQueryIsNotConstructed = errors.New(
	"CountDeliveriesByStatusQuery must be created via NewCountDeliveriesByStatusQuery constructor",
)

// CountDeliveriesByStatusQuery feeds the backlog report.
type CountDeliveriesByStatusQuery struct {
	guard guard.ConstructorGuard
}

func NewCountDeliveriesByStatusQuery() CountDeliveriesByStatusQuery {
	return CountDeliveriesByStatusQuery{guard: guard.NewConstructorGuard()}
}

func (q CountDeliveriesByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountDeliveriesByStatusQueryIsNotConstructed)
}

type CountDeliveriesByStatusQueryHandler struct {
	reader ports.DeliveryReader
}

func NewCountDeliveriesByStatusQueryHandler(reader ports.DeliveryReader) CountDeliveriesByStatusQueryHandler {
	return CountDeliveriesByStatusQueryHandler{reader: reader}
}

// Handle returns a count for every known status, zero included.
func (h CountDeliveriesByStatusQueryHandler) Handle(
	ctx context.Context,
	query CountDeliveriesByStatusQuery,
) (map[delivery.Status]int64, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts, err := h.reader.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	result := map[delivery.Status]int64{
		delivery.Pending:   0,
		delivery.Assigned:  0,
		delivery.Picked:    0,
		delivery.Delivered: 0,
	}
	for status, n := range counts {
		result[status] = n
	}
	return result, nil
}
