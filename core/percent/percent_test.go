package percent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	p, err := FromString(" 50% ")
	assert.NoError(t, err)
	assert.Equal(t, Percent(50), p)
	assert.Equal(t, 100, p.Of(200))
	assert.Equal(t, 0.5, p.Fraction())
	p, err = FromString("250%")
	assert.NoError(t, err)
	assert.Equal(t, "100%", p.String())
	_, err = FromString("50")
	assert.ErrorIs(t, err, ErrNotAPercentage)
}
