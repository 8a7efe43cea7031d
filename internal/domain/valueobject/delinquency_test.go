package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/consolidation-service/internal/domain/valueobject"
)

func TestDelinquency_SeverityOrdering(t *testing.T) {
	assert.Less(t,
		valueobject.DelinquencyCurrent.Severity(),
		valueobject.DelinquencyLate30.Severity(),
	)
	assert.Less(t,
		valueobject.DelinquencyLate30.Severity(),
		valueobject.DelinquencyLate60Plus.Severity(),
	)
}

func TestDelinquency_AtMost(t *testing.T) {
	assert.True(t, valueobject.DelinquencyCurrent.AtMost(valueobject.DelinquencyCurrent))
	assert.True(t, valueobject.DelinquencyLate30.AtMost(valueobject.DelinquencyLate30))
	assert.True(t, valueobject.DelinquencyLate30.AtMost(valueobject.DelinquencyLate60Plus))
	assert.False(t, valueobject.DelinquencyLate60Plus.AtMost(valueobject.DelinquencyLate30))
	assert.False(t, valueobject.DelinquencyLate30.AtMost(valueobject.DelinquencyCurrent))
}

func TestParseDelinquency(t *testing.T) {
	for _, raw := range []string{"current", "late_30", "late_60_plus"} {
		d, err := valueobject.ParseDelinquency(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, d.String())
	}

	_, err := valueobject.ParseDelinquency("late_90")
	require.Error(t, err)
}

func TestWorstDelinquency(t *testing.T) {
	worst := valueobject.WorstDelinquency([]valueobject.Delinquency{
		valueobject.DelinquencyCurrent,
		valueobject.DelinquencyLate60Plus,
		valueobject.DelinquencyLate30,
	})
	assert.Equal(t, valueobject.DelinquencyLate60Plus, worst)

	assert.Equal(t, valueobject.DelinquencyCurrent, valueobject.WorstDelinquency(nil))
}

func TestParseProductType(t *testing.T) {
	card, err := valueobject.ParseProductType("card")
	require.NoError(t, err)
	assert.Equal(t, valueobject.ProductTypeCard, card)

	loan, err := valueobject.ParseProductType("loan")
	require.NoError(t, err)
	assert.Equal(t, valueobject.ProductTypeLoan, loan)

	_, err = valueobject.ParseProductType("mortgage")
	require.Error(t, err)
}
