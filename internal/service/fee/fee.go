// Package fee provides the transaction fee policy.
package fee

const (
	// rate is 1.5% expressed as a fraction of rateBase.
	rate     = 15
	rateBase = 1000
	// Minimum is charged whenever the proportional fee truncates below it.
	Minimum = 1
)

// Calculate returns max(floor(amount * 0.015), 1) for a positive amount.
// The product is split to keep it within int64 for any positive amount.
func Calculate(amount int64) int64 {
	fee := amount/rateBase*rate + amount%rateBase*rate/rateBase
	if fee < Minimum {
		return Minimum
	}
	return fee
}
