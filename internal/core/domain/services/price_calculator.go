package services

import (
	"errors"
	"fmt"
	"math"

	"grameego/internal/pkg/errs"
)

// Tariff parameterises PriceCalculator.
type Tariff struct {
	BaseFare float64
	PerKm    float64
	Minimum  float64
	Default  float64
}

// DefaultTariff is 2 base + 0.6 per km, floored at 3, and a flat 4 when the
// distance is unknown.
func DefaultTariff() Tariff {
	return Tariff{BaseFare: 2, PerKm: 0.6, Minimum: 3, Default: 4}
}

func (t Tariff) Validate() error {
	var errList []error
	for name, v := range map[string]float64{
		"baseFare": t.BaseFare,
		"perKm":    t.PerKm,
		"minimum":  t.Minimum,
		"default":  t.Default,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is not a valid amount", v)))
		}
	}
	return errors.Join(errList...)
}

// PriceCalculator computes the delivery price of a request from its
// estimated distance.
//
// Example:
//
//	calc, _ := services.NewPriceCalculator(services.DefaultTariff())
//	d := 10.0
//	calc.ComputePrice(&d) // 8
//	calc.ComputePrice(nil) // 4
type PriceCalculator struct {
	tariff Tariff
}

func NewPriceCalculator(tariff Tariff) (PriceCalculator, error) {
	if err := tariff.Validate(); err != nil {
		return PriceCalculator{}, err
	}
	return PriceCalculator{tariff: tariff}, nil
}

func (c PriceCalculator) Tariff() Tariff {
	return c.tariff
}

// ComputePrice returns max(Minimum, BaseFare + PerKm*distance) rounded to
// cents for a positive finite distance, and Default otherwise.
func (c PriceCalculator) ComputePrice(distanceKm *float64) float64 {
	if distanceKm == nil {
		return c.tariff.Default
	}

	d := *distanceKm
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return c.tariff.Default
	}

	price := math.Round((c.tariff.BaseFare+c.tariff.PerKm*d)*100) / 100
	return math.Max(c.tariff.Minimum, price)
}
