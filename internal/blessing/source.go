package blessing

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/seedgarden/blessing-engine/internal/adapter"
	"github.com/seedgarden/blessing-engine/internal/domain"
	"github.com/seedgarden/blessing-engine/internal/logger"
)

var (
	// SeedBlessed(uint256 indexed seedId, address indexed blesser, uint256 seedCreatedAt)
	seedBlessedEventSignature = crypto.Keccak256Hash([]byte("SeedBlessed(uint256,address,uint256)"))

	// SeedWinnerSelected(uint256 indexed seedId)
	seedWinnerSelectedEventSignature = crypto.Keccak256Hash([]byte("SeedWinnerSelected(uint256)"))
)

// EventSource provides the append-only, timestamp-ordered log of confirmed
// blessings for the scoring engine
//
//go:generate mockgen -source=source.go -destination=../mocks/event_source.go -package=mocks -mock_names=EventSource=MockEventSource
type EventSource interface {
	// Events returns all blessing events between fromBlock and toBlock
	// inclusive, ordered by timestamp, with winner flags resolved
	Events(ctx context.Context, fromBlock, toBlock uint64) ([]domain.BlessingEvent, error)
}

type chainEventSource struct {
	contractAddress common.Address
	client          adapter.EthClient
	clock           adapter.Clock
}

// NewChainEventSource creates an EventSource reading SeedBlessed and
// SeedWinnerSelected logs from the seed contract
func NewChainEventSource(contractAddress string, client adapter.EthClient, clock adapter.Clock) EventSource {
	return &chainEventSource{
		contractAddress: common.HexToAddress(contractAddress),
		client:          client,
		clock:           clock,
	}
}

// Events returns all blessing events in the block range, ordered by timestamp
func (s *chainEventSource) Events(ctx context.Context, fromBlock, toBlock uint64) ([]domain.BlessingEvent, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{s.contractAddress},
		Topics: [][]common.Hash{
			{seedBlessedEventSignature, seedWinnerSelectedEventSignature},
		},
	}

	logs, err := s.filterLogsChunked(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to filter seed contract logs: %w", err)
	}

	// First pass: collect winning seeds so blessings can be flagged
	winners := make(map[uint64]bool)
	for _, vLog := range logs {
		if vLog.Topics[0] != seedWinnerSelectedEventSignature {
			continue
		}
		if len(vLog.Topics) != 2 {
			logger.Warn("Invalid SeedWinnerSelected event: unexpected topic count",
				zap.Int("topics", len(vLog.Topics)),
				zap.String("txHash", vLog.TxHash.Hex()))
			continue
		}
		winners[new(big.Int).SetBytes(vLog.Topics[1].Bytes()).Uint64()] = true
	}

	// Second pass: parse blessings, resolving block timestamps once per block
	blockTimes := make(map[uint64]time.Time)
	events := make([]domain.BlessingEvent, 0, len(logs))
	for _, vLog := range logs {
		if vLog.Topics[0] != seedBlessedEventSignature {
			continue
		}

		event, err := s.parseSeedBlessed(ctx, vLog, blockTimes)
		if err != nil {
			logger.Warn("Failed to parse SeedBlessed event",
				zap.Error(err),
				zap.String("txHash", vLog.TxHash.Hex()))
			continue
		}
		event.WasWinner = winners[event.SeedID]
		events = append(events, *event)
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Timestamp.Before(events[j].Timestamp) })

	return events, nil
}

// parseSeedBlessed decodes a single SeedBlessed log
func (s *chainEventSource) parseSeedBlessed(ctx context.Context, vLog types.Log, blockTimes map[uint64]time.Time) (*domain.BlessingEvent, error) {
	if len(vLog.Topics) != 3 {
		return nil, fmt.Errorf("invalid SeedBlessed event: expected 3 topics, got %d", len(vLog.Topics))
	}
	if len(vLog.Data) < 32 {
		return nil, fmt.Errorf("invalid SeedBlessed event: insufficient data")
	}

	timestamp, ok := blockTimes[vLog.BlockNumber]
	if !ok {
		header, err := s.client.HeaderByNumber(ctx, new(big.Int).SetUint64(vLog.BlockNumber))
		if err != nil {
			return nil, fmt.Errorf("failed to get block %d: %w", vLog.BlockNumber, err)
		}
		timestamp = s.clock.Unix(int64(header.Time), 0).UTC() //nolint:gosec,G115 // header.Time is a uint64 from geth which is safe to cast
		blockTimes[vLog.BlockNumber] = timestamp
	}

	seedID := new(big.Int).SetBytes(vLog.Topics[1].Bytes())
	if !seedID.IsUint64() {
		return nil, fmt.Errorf("seed ID %s out of uint64 range", seedID)
	}

	seedCreatedAt := new(big.Int).SetBytes(vLog.Data[0:32])

	return &domain.BlessingEvent{
		SeedID:        seedID.Uint64(),
		Blesser:       domain.NormalizeAddress(common.BytesToAddress(vLog.Topics[2].Bytes()).Hex()),
		Timestamp:     timestamp,
		SeedCreatedAt: time.Unix(seedCreatedAt.Int64(), 0).UTC(),
	}, nil
}

// filterLogsChunked processes the block range in chunks, halving the chunk
// size when the provider rejects a query for returning too many results
func (s *chainEventSource) filterLogsChunked(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	chunkSize := uint64(1000000)

	var allLogs []types.Log
	currentFrom := new(big.Int).Set(query.FromBlock)

	for currentFrom.Cmp(query.ToBlock) <= 0 {
		currentTo := new(big.Int).Add(currentFrom, new(big.Int).SetUint64(chunkSize-1))
		if currentTo.Cmp(query.ToBlock) > 0 {
			currentTo.Set(query.ToBlock)
		}

		chunkQuery := query
		chunkQuery.FromBlock = new(big.Int).Set(currentFrom)
		chunkQuery.ToBlock = new(big.Int).Set(currentTo)

		logs, err := s.client.FilterLogs(timeoutCtx, chunkQuery)
		if err == nil {
			allLogs = append(allLogs, logs...)
			currentFrom.SetUint64(currentTo.Uint64() + 1)
			continue
		}

		if !isTooManyResultsError(err) {
			return nil, err
		}

		chunkSize = chunkSize / 2
		if chunkSize == 0 {
			return nil, fmt.Errorf("log query failed at minimum chunk size: %w", err)
		}

		logger.Warn("Too many results, reducing chunk size",
			zap.Uint64("newChunkSize", chunkSize),
			zap.Uint64("fromBlock", currentFrom.Uint64()),
			zap.Uint64("toBlock", currentTo.Uint64()))
	}

	return allLogs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum")
}
