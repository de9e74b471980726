package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPercentOff(t *testing.T) {
	price := FromInt(1000)

	assert.True(t, PercentOff(price, FromInt(10)).Equal(FromInt(900)))
	assert.True(t, PercentOff(price, Zero()).Equal(price))
	assert.True(t, PercentOff(price, FromInt(100)).Equal(Zero()))
	// clamped, not rejected
	assert.True(t, PercentOff(price, FromInt(150)).Equal(Zero()))
	assert.True(t, PercentOff(price, FromInt(-5)).Equal(price))
}

func TestHalfKeepsFractions(t *testing.T) {
	half := Half(FromInt(125))
	expected, _ := decimal.NewFromString("62.5")
	assert.True(t, half.Equal(expected), "got %s", half)
}

func TestFormatGroupsDigits(t *testing.T) {
	assert.Equal(t, "1 250 000", Format(FromInt(1250000)))
	assert.Equal(t, "999", Format(FromInt(999)))
	assert.Equal(t, "0", Format(Zero()))
}

func TestFormatTenge(t *testing.T) {
	assert.Equal(t, "12 500 ₸", FormatTenge(FromInt(12500)))
}
