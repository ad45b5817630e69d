package payments

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AllocationStrategy splits a declaration's emergency-fund draw across the
// pool's investments. Implementations must return one share per principal,
// in the same order, summing exactly to the draw.
type AllocationStrategy interface {
	Allocate(draw decimal.Decimal, principals []decimal.Decimal) []decimal.Decimal
}

// ProRataByPrincipal weights each share by principal / sum(principals) and
// settles rounding with the largest-remainder method: shares are truncated
// to paise and the leftover paise go to the largest principals first, so the
// shares always sum exactly to the draw.
type ProRataByPrincipal struct{}

var hundred = decimal.NewFromInt(100)
var paisa = decimal.New(1, -2)

func (ProRataByPrincipal) Allocate(draw decimal.Decimal, principals []decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(principals))
	for i := range shares {
		shares[i] = decimal.Zero
	}
	if len(principals) == 0 || !draw.IsPositive() {
		return shares
	}

	total := decimal.Zero
	for _, p := range principals {
		total = total.Add(p)
	}
	if !total.IsPositive() {
		return shares
	}

	allocated := decimal.Zero
	for i, p := range principals {
		shares[i] = draw.Mul(p).Div(total).Truncate(2)
		allocated = allocated.Add(shares[i])
	}

	// Leftover is a whole number of paise because draw and every share
	// carry at most two decimal places.
	leftover := draw.Sub(allocated)
	paise := leftover.Div(paisa).IntPart()
	if paise <= 0 {
		return shares
	}

	order := make([]int, len(principals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return principals[order[a]].GreaterThan(principals[order[b]])
	})
	for k := int64(0); k < paise; k++ {
		idx := order[int(k)%len(order)]
		shares[idx] = shares[idx].Add(paisa)
	}
	return shares
}
