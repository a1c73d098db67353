// Package services provides domain services that don't belong to a single
// aggregate.
//
// The package includes:
//   - PriceCalculator: the delivery payout baseline computed when a request is created
package services
