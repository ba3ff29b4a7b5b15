package utils

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"
)

// productIDCounter disambiguates product ids generated within the same
// nanosecond.
var productIDCounter uint32

// NewProductID generates a collision-resistant product id. Time-based
// rather than length-based so ids survive deletions and concurrent
// sessions.
func NewProductID() string {
	n := atomic.AddUint32(&productIDCounter, 1)
	return "p" + strconv.FormatInt(time.Now().UnixNano(), 36) + strconv.FormatUint(uint64(n), 36)
}

// FormatTransactionID renders a persisted sequence number in the display
// format used on receipts (T001, T002, ...). The width grows past three
// digits rather than wrapping.
func FormatTransactionID(seq int64) string {
	return fmt.Sprintf("T%03d", seq)
}
