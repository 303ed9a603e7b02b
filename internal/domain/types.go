package domain

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet || chain == ChainEthereumSepolia
}

// ReferenceID returns the numeric chain reference of an eip155 CAIP-2
// identifier, as reported by the node's eth_chainId
func (c Chain) ReferenceID() (*big.Int, error) {
	ref, ok := strings.CutPrefix(string(c), "eip155:")
	if !ok {
		return nil, fmt.Errorf("chain %q is not an eip155 identifier", c)
	}
	id, ok := new(big.Int).SetString(ref, 10)
	if !ok {
		return nil, fmt.Errorf("chain %q has a non-numeric reference", c)
	}
	return id, nil
}

// Timeframe represents a leaderboard scoring window
type Timeframe string

const (
	TimeframeDaily    Timeframe = "daily"
	TimeframeWeekly   Timeframe = "weekly"
	TimeframeMonthly  Timeframe = "monthly"
	TimeframeYearly   Timeframe = "yearly"
	TimeframeLifetime Timeframe = "lifetime"
)

// Duration returns the window length for the timeframe and whether the
// timeframe is bounded at all (lifetime is not).
func (t Timeframe) Duration() (time.Duration, bool) {
	switch t {
	case TimeframeDaily:
		return 24 * time.Hour, true
	case TimeframeWeekly:
		return 7 * 24 * time.Hour, true
	case TimeframeMonthly:
		return 30 * 24 * time.Hour, true
	case TimeframeYearly:
		return 365 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// Valid checks if the timeframe is one of the supported windows
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeDaily, TimeframeWeekly, TimeframeMonthly, TimeframeYearly, TimeframeLifetime:
		return true
	default:
		return false
	}
}

// Holder represents a single address and the token IDs it owned at snapshot time
type Holder struct {
	Address  string   `json:"address"`
	TokenIDs []uint64 `json:"token_ids"`
}

// Snapshot is an immutable point-in-time record of collection ownership.
// It is never mutated after construction; a newer snapshot supersedes it.
type Snapshot struct {
	ID              string    `json:"id"`
	ContractAddress string    `json:"contract_address"`
	TotalSupply     uint64    `json:"total_supply"`
	BlockNumber     uint64    `json:"block_number"`
	TakenAt         time.Time `json:"taken_at"`
	Holders         []Holder  `json:"holders"`

	holderIndex map[string][]uint64
}

// NewSnapshot builds a snapshot from a token->owner mapping. Addresses are
// lowercase-normalized, token IDs are sorted ascending and holders are sorted
// by address so the same ownership set always produces the same snapshot.
func NewSnapshot(id, contractAddress string, blockNumber uint64, takenAt time.Time, owners map[uint64]string) *Snapshot {
	index := make(map[string][]uint64)
	for tokenID, owner := range owners {
		addr := NormalizeAddress(owner)
		index[addr] = append(index[addr], tokenID)
	}

	holders := make([]Holder, 0, len(index))
	for addr, tokenIDs := range index {
		sort.Slice(tokenIDs, func(i, j int) bool { return tokenIDs[i] < tokenIDs[j] })
		holders = append(holders, Holder{Address: addr, TokenIDs: tokenIDs})
	}
	sort.Slice(holders, func(i, j int) bool { return holders[i].Address < holders[j].Address })

	return &Snapshot{
		ID:              id,
		ContractAddress: NormalizeAddress(contractAddress),
		TotalSupply:     uint64(len(owners)),
		BlockNumber:     blockNumber,
		TakenAt:         takenAt.UTC(),
		Holders:         holders,
		holderIndex:     index,
	}
}

// RestoreSnapshot rebuilds the holder index for a snapshot loaded from storage
func RestoreSnapshot(s *Snapshot) *Snapshot {
	index := make(map[string][]uint64, len(s.Holders))
	for _, h := range s.Holders {
		index[h.Address] = h.TokenIDs
	}
	s.holderIndex = index
	return s
}

// TokenIDsOf returns the token IDs held by the given address, or nil if the
// address held nothing at snapshot time
func (s *Snapshot) TokenIDsOf(address string) []uint64 {
	if s == nil || s.holderIndex == nil {
		return nil
	}
	return s.holderIndex[NormalizeAddress(address)]
}

// NFTCountOf returns the number of tokens held by the address at snapshot time
func (s *Snapshot) NFTCountOf(address string) int {
	return len(s.TokenIDsOf(address))
}

// Validate checks the snapshot invariants: every holder owns at least one
// token, addresses are lowercase and unique, and the per-holder token counts
// sum to the total supply.
func (s *Snapshot) Validate() error {
	seen := make(map[string]bool, len(s.Holders))
	var total uint64
	for _, h := range s.Holders {
		if len(h.TokenIDs) == 0 {
			return fmt.Errorf("holder %s has no tokens", h.Address)
		}
		if h.Address != strings.ToLower(h.Address) {
			return fmt.Errorf("holder address %s is not lowercase-normalized", h.Address)
		}
		if seen[h.Address] {
			return fmt.Errorf("duplicate holder address %s", h.Address)
		}
		seen[h.Address] = true
		total += uint64(len(h.TokenIDs))
	}
	if total != s.TotalSupply {
		return fmt.Errorf("holder token counts sum to %d, expected total supply %d", total, s.TotalSupply)
	}
	return nil
}

// MerkleTree holds the ownership commitment derived from exactly one snapshot
type MerkleTree struct {
	Root   [32]byte              `json:"root"`
	Leaves map[string][32]byte   `json:"leaves"`
	Proofs map[string][][32]byte `json:"proofs"`
}

// ProofOf returns the leaf and sibling path for an address, or
// ErrProofNotFound if the address held no tokens in the source snapshot
func (t *MerkleTree) ProofOf(address string) ([32]byte, [][32]byte, error) {
	addr := NormalizeAddress(address)
	leaf, ok := t.Leaves[addr]
	if !ok {
		return [32]byte{}, nil, ErrProofNotFound
	}
	return leaf, t.Proofs[addr], nil
}

// UserBlessingData is the per-wallet rate-limit state for one quota period.
// It is a cache over the authoritative on-chain counter, never the source of
// truth.
type UserBlessingData struct {
	WalletAddress string    `json:"wallet_address"`
	NFTCount      int       `json:"nft_count"`
	MaxBlessings  int       `json:"max_blessings"`
	UsedBlessings int       `json:"used_blessings"`
	PeriodStart   time.Time `json:"period_start"`
	PeriodEnd     time.Time `json:"period_end"`
}

// BlessingEvent is a single confirmed blessing sourced from chain event logs
type BlessingEvent struct {
	SeedID        uint64    `json:"seed_id"`
	Blesser       string    `json:"blesser"`
	Timestamp     time.Time `json:"timestamp"`
	SeedCreatedAt time.Time `json:"seed_created_at"`
	WasWinner     bool      `json:"was_winner"`
}

// WalletStats is the scoring input for a single wallet
type WalletStats struct {
	Address   string          `json:"address"`
	NFTCount  int             `json:"nft_count"`
	Blessings []BlessingEvent `json:"blessings"`
}

// LeaderboardEntry is a derived, per-query leaderboard row. Reason is set on
// zero-value entries returned when the score could not be computed.
type LeaderboardEntry struct {
	Address            string  `json:"address"`
	NFTCount           int     `json:"nft_count"`
	BlessingCount      int     `json:"blessing_count"`
	WinningBlessings   int     `json:"winning_blessings"`
	Score              int64   `json:"score"`
	Rank               int     `json:"rank"`
	BlessingEfficiency float64 `json:"blessing_efficiency"`
	CurationAccuracy   float64 `json:"curation_accuracy"`
	Reason             string  `json:"reason,omitempty"`
}

// Leaderboard is the ranked result for one timeframe. When no ownership
// snapshot exists the board degrades to empty entries with Reason set rather
// than an error, so score reads stay available.
type Leaderboard struct {
	Timeframe Timeframe          `json:"timeframe"`
	Entries   []LeaderboardEntry `json:"entries"`
	Reason    string             `json:"reason,omitempty"`
}

// EligibilityDecision is the result of a rate-limit check for one wallet
type EligibilityDecision struct {
	WalletAddress      string    `json:"wallet_address"`
	Eligible           bool      `json:"eligible"`
	Indeterminate      bool      `json:"indeterminate,omitempty"`
	NFTCount           int       `json:"nft_count"`
	MaxBlessings       int       `json:"max_blessings"`
	UsedBlessings      int       `json:"used_blessings"`
	RemainingBlessings int       `json:"remaining_blessings"`
	PeriodEnd          time.Time `json:"period_end"`
	Reason             string    `json:"reason,omitempty"`
}

// Ineligibility reason codes
const (
	ReasonNoNFTs                 = "No NFTs owned"
	ReasonAllBlessingsUsed       = "All blessings used for this period"
	ReasonRateLimitIndeterminate = "Blessing usage could not be verified"
	ReasonSnapshotUnavailable    = "No ownership snapshot available"
)

// PeriodStart returns the UTC-midnight-aligned start of the quota period
// containing t
func PeriodStart(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// NormalizeAddress lowercases a hex address so snapshot and cache lookups are
// case-insensitive
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}

// ValidAddress checks that an address is a well-formed hex address
func ValidAddress(address string) bool {
	return common.IsHexAddress(address)
}
