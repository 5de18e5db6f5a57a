package idgen

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// orderNumberDigits: hex characters kept from the uuid (13 * 4 = 52 bits)
const orderNumberDigits = 13

// groupIDJitter: upper bound (exclusive) of the random offset added to the
// millisecond timestamp
const groupIDJitter = 10000

// Generator produces the client-side identifiers attached to shipment line
// items. Both values are best-effort: there is no collision check.
type Generator interface {
	OrderNumber() int64
	GroupID() int64
}

// Default is the generator used outside of tests.
var Default Generator = randomGenerator{}

type randomGenerator struct{}

func (randomGenerator) OrderNumber() int64 { return NewOrderNumber() }
func (randomGenerator) GroupID() int64     { return NewGroupID() }

// NewOrderNumber: random uuid, separators stripped, first 13 hex digits
// parsed as an integer.
func NewOrderNumber() int64 {
	return orderNumberFromUUID(uuid.New())
}

func orderNumberFromUUID(id uuid.UUID) int64 {
	hex := strings.ReplaceAll(id.String(), "-", "")
	n, err := strconv.ParseInt(hex[:orderNumberDigits], 16, 64)
	if err != nil {
		// 13 hex digits always fit in int64
		panic(err)
	}
	if n == 0 {
		// keep order numbers positive
		return 1
	}
	return n
}

// NewGroupID: epoch milliseconds plus a random offset in [0, 10000).
func NewGroupID() int64 {
	return groupIDAt(time.Now())
}

func groupIDAt(t time.Time) int64 {
	return t.UnixMilli() + rand.Int64N(groupIDJitter)
}

// OrderNumbers returns n fresh order numbers.
func OrderNumbers(g Generator, n int) []int64 {
	out := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.OrderNumber())
	}
	return out
}

// Sequence is a deterministic Generator: order numbers count up from
// NextOrder, group ids from NextGroup.
type Sequence struct {
	NextOrder int64
	NextGroup int64
}

func (s *Sequence) OrderNumber() int64 {
	s.NextOrder++
	return s.NextOrder
}

func (s *Sequence) GroupID() int64 {
	s.NextGroup++
	return s.NextGroup
}
