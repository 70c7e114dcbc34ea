package repositories

import (
	"strings"
	"testing"

	"college-catalog-backend/colleges/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeRangePredicateBindsOneArmPerRule(t *testing.T) {
	rules := services.SelectFeeRangeRules(services.DefaultFeeRangeRules(), []string{"below50k", "above500k"})
	require.Len(t, rules, 2)

	clause, args := feeRangePredicate(rules)

	assert.Equal(t, 2, strings.Count(clause, "EXISTS"))
	assert.Equal(t, 1, strings.Count(clause, " OR "))
	assert.True(t, strings.HasPrefix(clause, "("))
	assert.True(t, strings.HasSuffix(clause, ")"))

	// Bounded bucket binds min and max, the open-ended top bucket only min.
	assert.Equal(t, 3, strings.Count(clause, "?"))
	require.Len(t, args, 3)
	assert.True(t, args[0].(decimal.Decimal).Equal(decimal.Zero))
	assert.True(t, args[1].(decimal.Decimal).Equal(decimal.NewFromInt(50000)))
	assert.True(t, args[2].(decimal.Decimal).Equal(decimal.NewFromInt(500000)))
}

func TestFeeRangePredicateBoundedArmPairsMinBeforeMax(t *testing.T) {
	rules := services.SelectFeeRangeRules(services.DefaultFeeRangeRules(), []string{"100kTo200k"})
	require.Len(t, rules, 1)

	clause, args := feeRangePredicate(rules)

	lower := strings.Index(clause, "fc.min_fee >= ?")
	upper := strings.Index(clause, "fc.min_fee <= ?")
	assert.True(t, lower >= 0 && upper > lower)
	assert.NotContains(t, clause, " OR ")

	require.Len(t, args, 2)
	assert.True(t, args[0].(decimal.Decimal).Equal(decimal.NewFromInt(100000)))
	assert.True(t, args[1].(decimal.Decimal).Equal(decimal.NewFromInt(200000)))
}
