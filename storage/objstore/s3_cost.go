package objstore

import (
	"fmt"
	"sync/atomic"
)

// RequestUsage counts the requests made to an object store and estimates
// their cost. It is safe for concurrent use.
type RequestUsage struct {
	reads atomic.Int64
	lists atomic.Int64
}

// Cost per 1,000 requests in microdollars (1 dollar = 1,000,000 microdollars)
const (
	readCostPerThousand = 400   // $0.0004 = 400 microdollars
	listCostPerThousand = 5_000 // $0.005 = 5000 microdollars
)

func (u *RequestUsage) AddRead() {
	u.reads.Add(1)
}

func (u *RequestUsage) AddList() {
	u.lists.Add(1)
}

func (u *RequestUsage) Reads() int64 {
	return u.reads.Load()
}

func (u *RequestUsage) Lists() int64 {
	return u.lists.Load()
}

// TotalCost calculates the total cost and returns it formatted as USD.
func (u *RequestUsage) TotalCost() string {
	readCost := (u.reads.Load() * readCostPerThousand) / 1000
	listCost := (u.lists.Load() * listCostPerThousand) / 1000
	totalMicrodollars := readCost + listCost

	dollars := totalMicrodollars / 1_000_000
	cents := (totalMicrodollars % 1_000_000) / 10_000
	remainderMicrodollars := (totalMicrodollars % 10_000) / 100

	if dollars > 0 || cents > 0 {
		return fmt.Sprintf("$%d.%02d", dollars, cents)
	}
	return fmt.Sprintf("$0.%04d", remainderMicrodollars)
}
