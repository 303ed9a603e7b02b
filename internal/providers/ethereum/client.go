package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/seedgarden/blessing-engine/internal/adapter"
	"github.com/seedgarden/blessing-engine/internal/domain"
)

const (
	// rpcCallTimeout bounds a single contract read
	rpcCallTimeout = 15 * time.Second

	// rpcMaxRetryElapsed bounds the total retry budget for one read
	rpcMaxRetryElapsed = 45 * time.Second
)

// CollectionClient exposes the typed contract reads the core needs. All
// decoding from raw RPC return data happens here so the rest of the code
// never sees transport-format quirks.
//
//go:generate mockgen -source=client.go -destination=../../mocks/collection_client.go -package=mocks -mock_names=CollectionClient=MockCollectionClient
type CollectionClient interface {
	// TotalSupply returns the collection's totalSupply at the given block
	TotalSupply(ctx context.Context, contractAddress string, blockNumber uint64) (uint64, error)

	// TokenByIndex returns the token ID at the given enumeration index
	TokenByIndex(ctx context.Context, contractAddress string, index uint64, blockNumber uint64) (uint64, error)

	// OwnerOf returns the owner of a token at the given block, lowercase-normalized
	OwnerOf(ctx context.Context, contractAddress string, tokenID uint64, blockNumber uint64) (string, error)

	// FinalizedBlockNumber returns the latest finalized block number
	FinalizedBlockNumber(ctx context.Context) (uint64, error)

	// DailyBlessingsUsed reads the authoritative per-wallet blessing counter
	// for the UTC day starting at dayStart
	DailyBlessingsUsed(ctx context.Context, contractAddress, walletAddress string, dayStart time.Time) (uint64, error)

	// Close closes the connection
	Close()
}

var (
	erc721ABI = mustParseABI(`[
		{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
		{"constant":true,"inputs":[{"name":"index","type":"uint256"}],"name":"tokenByIndex","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
		{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
	]`)

	blessingABI = mustParseABI(`[
		{"constant":true,"inputs":[{"name":"wallet","type":"address"},{"name":"day","type":"uint256"}],"name":"dailyBlessingsUsed","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
	]`)
)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}
	return parsed
}

type collectionClient struct {
	chainID domain.Chain
	client  adapter.EthClient
}

// NewCollectionClient creates a CollectionClient over a dialed EthClient. It
// verifies the node serves the configured chain before returning, so a
// misconfigured RPC URL fails at startup instead of producing snapshots from
// the wrong network.
func NewCollectionClient(ctx context.Context, chainID domain.Chain, client adapter.EthClient) (CollectionClient, error) {
	expected, err := chainID.ReferenceID()
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, rpcCallTimeout)
	defer cancel()

	reported, err := client.ChainID(callCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain ID from node: %w", err)
	}
	if reported.Cmp(expected) != 0 {
		return nil, fmt.Errorf("node serves chain %s, configured for %s", reported, chainID)
	}

	return &collectionClient{chainID: chainID, client: client}, nil
}

// callContract packs the call, executes it with bounded exponential retries
// and returns the raw return data
func (c *collectionClient) callContract(ctx context.Context, parsed abi.ABI, contractAddress string, blockNumber *big.Int, method string, args ...interface{}) ([]byte, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	contractAddr := common.HexToAddress(contractAddress)
	msg := ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = rpcMaxRetryElapsed

	var result []byte
	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, rpcCallTimeout)
		defer cancel()

		result, err = c.client.CallContract(callCtx, msg, blockNumber)
		return err
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("failed to call %s on %s: %w", method, contractAddress, err)
	}

	return result, nil
}

// TotalSupply returns the collection's totalSupply at the given block
func (c *collectionClient) TotalSupply(ctx context.Context, contractAddress string, blockNumber uint64) (uint64, error) {
	result, err := c.callContract(ctx, erc721ABI, contractAddress, new(big.Int).SetUint64(blockNumber), "totalSupply")
	if err != nil {
		return 0, err
	}

	var supply *big.Int
	if err := erc721ABI.UnpackIntoInterface(&supply, "totalSupply", result); err != nil {
		return 0, fmt.Errorf("failed to unpack totalSupply result: %w", err)
	}
	if !supply.IsUint64() {
		return 0, fmt.Errorf("totalSupply %s out of uint64 range", supply)
	}

	return supply.Uint64(), nil
}

// TokenByIndex returns the token ID at the given enumeration index
func (c *collectionClient) TokenByIndex(ctx context.Context, contractAddress string, index uint64, blockNumber uint64) (uint64, error) {
	result, err := c.callContract(ctx, erc721ABI, contractAddress, new(big.Int).SetUint64(blockNumber), "tokenByIndex", new(big.Int).SetUint64(index))
	if err != nil {
		return 0, err
	}

	var tokenID *big.Int
	if err := erc721ABI.UnpackIntoInterface(&tokenID, "tokenByIndex", result); err != nil {
		return 0, fmt.Errorf("failed to unpack tokenByIndex result: %w", err)
	}
	if !tokenID.IsUint64() {
		return 0, fmt.Errorf("token ID %s out of uint64 range", tokenID)
	}

	return tokenID.Uint64(), nil
}

// OwnerOf returns the owner of a token at the given block, lowercase-normalized
func (c *collectionClient) OwnerOf(ctx context.Context, contractAddress string, tokenID uint64, blockNumber uint64) (string, error) {
	result, err := c.callContract(ctx, erc721ABI, contractAddress, new(big.Int).SetUint64(blockNumber), "ownerOf", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", err
	}

	var owner common.Address
	if err := erc721ABI.UnpackIntoInterface(&owner, "ownerOf", result); err != nil {
		return "", fmt.Errorf("failed to unpack ownerOf result: %w", err)
	}

	return domain.NormalizeAddress(owner.Hex()), nil
}

// FinalizedBlockNumber returns the latest finalized block number
func (c *collectionClient) FinalizedBlockNumber(ctx context.Context) (uint64, error) {
	callCtx, cancel := context.WithTimeout(ctx, rpcCallTimeout)
	defer cancel()

	header, err := c.client.HeaderByNumber(callCtx, big.NewInt(int64(rpc.FinalizedBlockNumber)))
	if err != nil {
		return 0, fmt.Errorf("failed to get finalized block header: %w", err)
	}

	return header.Number.Uint64(), nil
}

// DailyBlessingsUsed reads the authoritative per-wallet blessing counter for
// the UTC day starting at dayStart. Day indexes on the contract are unix
// timestamps divided by 86400.
func (c *collectionClient) DailyBlessingsUsed(ctx context.Context, contractAddress, walletAddress string, dayStart time.Time) (uint64, error) {
	day := new(big.Int).SetInt64(dayStart.UTC().Unix() / 86400)
	wallet := common.HexToAddress(walletAddress)

	result, err := c.callContract(ctx, blessingABI, contractAddress, nil, "dailyBlessingsUsed", wallet, day)
	if err != nil {
		return 0, err
	}

	var used *big.Int
	if err := blessingABI.UnpackIntoInterface(&used, "dailyBlessingsUsed", result); err != nil {
		return 0, fmt.Errorf("failed to unpack dailyBlessingsUsed result: %w", err)
	}
	if !used.IsUint64() {
		return 0, fmt.Errorf("dailyBlessingsUsed %s out of uint64 range", used)
	}

	return used.Uint64(), nil
}

// Close closes the connection
func (c *collectionClient) Close() {
	c.client.Close()
}
