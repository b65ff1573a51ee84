package orders

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var onlyDigits = regexp.MustCompile(`^[0-9]+$`)

func TestGenerateOrderNumberFormat(t *testing.T) {
	n := GenerateOrderNumber()

	// 13 chiffres de timestamp milliseconde + 4 chiffres de suffixe
	assert.GreaterOrEqual(t, len(n), 17)
	assert.True(t, onlyDigits.MatchString(n), "numéro non numérique: %s", n)

	suffix, err := strconv.Atoi(n[len(n)-4:])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, suffix, 1000)
	assert.LessOrEqual(t, suffix, 9999)
}

func TestGenerateOrderNumberDistinct(t *testing.T) {
	first := GenerateOrderNumber()
	time.Sleep(2 * time.Millisecond) // change de milliseconde, donc de préfixe
	second := GenerateOrderNumber()

	assert.NotEqual(t, first, second)
}
