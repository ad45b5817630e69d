package payments

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProRata_SharesSumExactlyToDraw(t *testing.T) {
	strategy := ProRataByPrincipal{}
	draw := dec("10000")
	principals := []decimal.Decimal{dec("100000"), dec("100000"), dec("100000")}

	shares := strategy.Allocate(draw, principals)
	require.Len(t, shares, 3)

	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s)
	}
	assert.True(t, total.Equal(draw), "shares sum to %s, want %s", total, draw)

	// 10,000 over three equal stakes: 3333.33 each with one extra paisa
	// landed deterministically.
	assert.True(t, shares[0].Equal(dec("3333.34")))
	assert.True(t, shares[1].Equal(dec("3333.33")))
	assert.True(t, shares[2].Equal(dec("3333.33")))
}

func TestProRata_WeightedByPrincipal(t *testing.T) {
	strategy := ProRataByPrincipal{}
	shares := strategy.Allocate(dec("9000"), []decimal.Decimal{dec("200000"), dec("100000")})
	assert.True(t, shares[0].Equal(dec("6000")))
	assert.True(t, shares[1].Equal(dec("3000")))
}

func TestProRata_ZeroDrawAndZeroPrincipals(t *testing.T) {
	strategy := ProRataByPrincipal{}

	shares := strategy.Allocate(decimal.Zero, []decimal.Decimal{dec("100")})
	assert.True(t, shares[0].IsZero())

	shares = strategy.Allocate(dec("100"), []decimal.Decimal{decimal.Zero, decimal.Zero})
	assert.True(t, shares[0].IsZero())
	assert.True(t, shares[1].IsZero())

	assert.Empty(t, strategy.Allocate(dec("100"), nil))
}

func TestProRata_ExitedInvestmentGetsNoShare(t *testing.T) {
	strategy := ProRataByPrincipal{}
	shares := strategy.Allocate(dec("5000"), []decimal.Decimal{dec("150000"), decimal.Zero})
	assert.True(t, shares[0].Equal(dec("5000")))
	assert.True(t, shares[1].IsZero())
}

func TestProRata_AwkwardSplitStillExact(t *testing.T) {
	strategy := ProRataByPrincipal{}
	draw := dec("1000.01")
	principals := []decimal.Decimal{dec("33333"), dec("77777"), dec("12345.67")}

	shares := strategy.Allocate(draw, principals)
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s)
	}
	assert.True(t, total.Equal(draw), "shares sum to %s, want %s", total, draw)
}
