package purchase

import "time"

// HotWindow is an externally predicted restock interval for a product at a
// retailer. Entries arrive through the ephemeral key-value store and expire
// on their own.
type HotWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Conf  float64   `json:"conf"`
}

// Staging intensities, from nearest to farthest ahead of the window start.
type StageBucket int

const (
	BucketNone StageBucket = iota
	BucketBurst
	BucketSingle
	BucketPrewarm
)

const (
	burstLookback  = 20 * time.Second
	singleLookout  = 30 * time.Second
	prewarmLookout = 120 * time.Second
)

// BucketFor classifies the time remaining until a window start. The buckets
// are checked narrowest first: delta shrinks on every poll, so a pair that
// missed the prewarm bucket can still land in single or burst later.
//
//	(-20s, 0s]   burst: two attempts at full quantity
//	(0s, 30s]    single: one attempt at full quantity
//	(30s, 120s]  prewarm: one attempt with quantity zero
//	otherwise    none
func BucketFor(delta time.Duration) StageBucket {
	switch {
	case delta > -burstLookback && delta <= 0:
		return BucketBurst
	case delta > 0 && delta <= singleLookout:
		return BucketSingle
	case delta > singleLookout && delta <= prewarmLookout:
		return BucketPrewarm
	default:
		return BucketNone
	}
}

// JobCount is how many identical jobs the bucket stages.
func (b StageBucket) JobCount() int {
	switch b {
	case BucketBurst:
		return 2
	case BucketSingle, BucketPrewarm:
		return 1
	default:
		return 0
	}
}

// Qty is the quantity each staged job carries. Prewarm forces zero: it primes
// session and connection state without committing to a purchase.
func (b StageBucket) Qty(requested int) int {
	if b == BucketPrewarm {
		return 0
	}
	return requested
}
