package domain

import "time"

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// QUOTA_PERIOD is the length of a blessing quota period, aligned to UTC midnight
	QUOTA_PERIOD = 24 * time.Hour

	// DEFAULT_BLESSINGS_PER_NFT is the daily quota granted per owned token
	DEFAULT_BLESSINGS_PER_NFT = 1

	// DEFAULT_AVG_TIME_TO_WINNER is the decay constant for the early-bird bonus
	DEFAULT_AVG_TIME_TO_WINNER = 7 * 24 * time.Hour

	// DEFAULT_SNAPSHOT_HISTORY is how many superseded snapshots are retained
	// for rollback
	DEFAULT_SNAPSHOT_HISTORY = 5
)
