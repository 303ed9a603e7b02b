package ethereum

import (
	"context"
	"time"
)

// UsageCounter binds a CollectionClient to the blessing contract so callers
// can read the daily usage counter without carrying the contract address
type UsageCounter struct {
	client          CollectionClient
	contractAddress string
}

// NewUsageCounter creates a usage counter for the given blessing contract
func NewUsageCounter(client CollectionClient, contractAddress string) *UsageCounter {
	return &UsageCounter{
		client:          client,
		contractAddress: contractAddress,
	}
}

// DailyBlessingsUsed reads the authoritative per-wallet blessing counter for
// the UTC day starting at dayStart
func (c *UsageCounter) DailyBlessingsUsed(ctx context.Context, walletAddress string, dayStart time.Time) (uint64, error) {
	return c.client.DailyBlessingsUsed(ctx, c.contractAddress, walletAddress, dayStart)
}
