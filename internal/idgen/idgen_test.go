package idgen

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderNumberFromUUID_TakesFirst13HexDigits(t *testing.T) {
	id := uuid.MustParse("0123abcd-ef45-4789-8abc-def012345678")
	// 0123abcdef454 (hex) = 20016963908692
	assert.Equal(t, int64(0x0123abcdef454), orderNumberFromUUID(id))
}

func TestNewOrderNumber_PositiveAndWithin53Bits(t *testing.T) {
	const limit = int64(1) << 53
	for i := 0; i < 1000; i++ {
		n := NewOrderNumber()
		require.Greater(t, n, int64(0))
		require.LessOrEqual(t, n, limit)
	}
}

func TestNewOrderNumber_ConsecutiveCallsDiffer(t *testing.T) {
	for i := 0; i < 1000; i++ {
		a, b := NewOrderNumber(), NewOrderNumber()
		require.NotEqual(t, a, b, "collision on iteration %d", i)
	}
}

func TestGroupIDAt_SameMillisecondDiffers(t *testing.T) {
	at := time.UnixMilli(1767225600000)
	same := 0
	const rounds = 2000
	for i := 0; i < rounds; i++ {
		if groupIDAt(at) == groupIDAt(at) {
			same++
		}
	}
	// expected collision rate is 1/10000
	assert.LessOrEqual(t, same, 5)
}

func TestGroupIDAt_Range(t *testing.T) {
	at := time.UnixMilli(1767225600000)
	for i := 0; i < 500; i++ {
		g := groupIDAt(at)
		require.GreaterOrEqual(t, g, at.UnixMilli())
		require.Less(t, g, at.UnixMilli()+groupIDJitter)
	}
}

func TestOrderNumbers(t *testing.T) {
	seq := &Sequence{NextOrder: 100}
	assert.Equal(t, []int64{101, 102, 103}, OrderNumbers(seq, 3))
	assert.Empty(t, OrderNumbers(seq, 0))
}
