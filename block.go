package blockgen

import "fmt"

// Block is an ordered group of items sealed together by a roll, identified
// by an id that is globally unique within the owning Generator.
type Block struct {
	ID    string
	Items []any
}

// makeID constructs a block id from the owning receiver's numeric id and
// the generation timestamp (the start of the interval the block covers,
// in Unix milliseconds; see roll.go for the subtraction that anchors it
// to the interval start rather than its end).
func makeID(receiverID int64, intervalStartUnixMilli int64) string {
	return fmt.Sprintf("%d-%d", receiverID, intervalStartUnixMilli)
}
