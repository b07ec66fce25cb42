package ethereum

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/logger"
)

// Event signatures
var (
	// ERC20 Transfer(address indexed from, address indexed to, uint256 value)
	transferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

	// TokenPurchased(address indexed buyer, uint256 amount, uint256 price)
	tokenPurchasedEventSignature = crypto.Keccak256Hash([]byte("TokenPurchased(address,uint256,uint256)"))

	// PriceUpdated(uint256 newPrice)
	priceUpdatedEventSignature = crypto.Keccak256Hash([]byte("PriceUpdated(uint256)"))
)

// EventTopics lists the log topics the emitter follows
func EventTopics() []common.Hash {
	return []common.Hash{
		transferEventSignature,
		tokenPurchasedEventSignature,
		priceUpdatedEventSignature,
	}
}

// EthereumClient wraps the node connection with log decoding for creator token contracts
//
//go:generate mockgen -source=client.go -destination=../../mocks/ethereum_client.go -package=mocks -mock_names=EthereumClient=MockEthereumClient
type EthereumClient interface {
	// ParseEventLog decodes a token contract log. It returns nil for logs the emitter does not follow.
	ParseEventLog(vLog types.Log) (*domain.ChainEvent, error)

	// SubscribeFilterLogs subscribes to new logs matching the query
	SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)

	// FilterLogs retrieves the logs of a closed block range, splitting the range
	// when the node refuses to return that many results
	FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)

	// LatestBlock returns the latest block number
	LatestBlock(ctx context.Context) (uint64, error)

	// Close closes the connection
	Close()
}

type ethereumClient struct {
	chainID domain.Chain
	client  adapter.EthClient
}

// NewClient creates an Ethereum client for the given chain
func NewClient(chainID domain.Chain, client adapter.EthClient) EthereumClient {
	return &ethereumClient{chainID: chainID, client: client}
}

func (c *ethereumClient) SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return c.client.SubscribeFilterLogs(ctx, query, ch)
}

func (c *ethereumClient) LatestBlock(ctx context.Context) (uint64, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return header.Number.Uint64(), nil
}

func (c *ethereumClient) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	if query.FromBlock == nil || query.ToBlock == nil {
		return nil, fmt.Errorf("filter logs requires a closed block range")
	}
	if query.FromBlock.Cmp(query.ToBlock) > 0 {
		return nil, nil
	}

	stepSize := new(big.Int).Sub(query.ToBlock, query.FromBlock).Uint64() + 1
	return c.getLogsWithRetry(ctx, query, stepSize)
}

// getLogsWithRetry processes the range from query.FromBlock to query.ToBlock in
// chunks, halving the chunk size whenever the node reports too many results
func (c *ethereumClient) getLogsWithRetry(ctx context.Context, query ethereum.FilterQuery, stepSize uint64) ([]types.Log, error) {
	currentStepSize := stepSize

	var allLogs []types.Log
	currentFrom := new(big.Int).Set(query.FromBlock)

	for currentFrom.Cmp(query.ToBlock) <= 0 {
		currentTo := new(big.Int).Add(currentFrom, new(big.Int).SetUint64(currentStepSize-1))
		if currentTo.Cmp(query.ToBlock) > 0 {
			currentTo.Set(query.ToBlock)
		}

		queryCopy := query
		queryCopy.FromBlock = new(big.Int).Set(currentFrom)
		queryCopy.ToBlock = new(big.Int).Set(currentTo)

		logs, err := c.client.FilterLogs(ctx, queryCopy)
		if err == nil {
			allLogs = append(allLogs, logs...)
			currentFrom.SetUint64(currentTo.Uint64() + 1)
			continue
		}

		if !isTooManyResultsError(err) || currentStepSize == 1 {
			return nil, err
		}

		currentStepSize = currentStepSize / 2

		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.Uint64("oldStepSize", currentStepSize*2),
			zap.Uint64("newStepSize", currentStepSize),
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
		strings.Contains(errStr, "exceeded maximum") ||
		strings.Contains(errStr, "block range")
}

func (c *ethereumClient) ParseEventLog(vLog types.Log) (*domain.ChainEvent, error) {
	if len(vLog.Topics) == 0 {
		return nil, nil
	}

	event := &domain.ChainEvent{
		Chain:           c.chainID,
		ContractAddress: domain.NormalizeAddress(vLog.Address.Hex()),
		BlockNumber:     vLog.BlockNumber,
		TransactionHash: strings.ToLower(vLog.TxHash.Hex()),
		LogIndex:        vLog.Index,
	}

	var payload interface{}
	switch vLog.Topics[0] {
	case transferEventSignature:
		// ERC721 shares the signature with the token id as a fourth topic
		if len(vLog.Topics) != 3 {
			logger.Debug("Skipping non ERC20 transfer event",
				zap.String("contract", event.ContractAddress),
				zap.String("txHash", event.TransactionHash))
			return nil, nil
		}
		from := topicAddress(vLog.Topics[1])
		// the paired TokenPurchased event credits the buyer
		if domain.IsZeroAddress(from) {
			logger.Debug("Skipping mint transfer event",
				zap.String("contract", event.ContractAddress),
				zap.String("txHash", event.TransactionHash))
			return nil, nil
		}
		words, err := dataWords(vLog.Data, 1)
		if err != nil {
			return nil, fmt.Errorf("invalid Transfer event: %w", err)
		}

		event.EventType = domain.EventTypeTokenTransfer
		payload = domain.TransferPayload{
			From:  from,
			To:    topicAddress(vLog.Topics[2]),
			Value: domain.NewAmount(words[0]),
		}

	case tokenPurchasedEventSignature:
		var buyer string
		var amount, price *big.Int
		switch len(vLog.Topics) {
		case 2:
			words, err := dataWords(vLog.Data, 2)
			if err != nil {
				return nil, fmt.Errorf("invalid TokenPurchased event: %w", err)
			}
			buyer = topicAddress(vLog.Topics[1])
			amount, price = words[0], words[1]
		case 1:
			words, err := dataWords(vLog.Data, 3)
			if err != nil {
				return nil, fmt.Errorf("invalid TokenPurchased event: %w", err)
			}
			buyer = domain.NormalizeAddress(common.BigToAddress(words[0]).Hex())
			amount, price = words[1], words[2]
		default:
			return nil, fmt.Errorf("invalid TokenPurchased event: expected 1 or 2 topics, got %d", len(vLog.Topics))
		}

		total := domain.NewAmount(new(big.Int).Mul(amount, price))
		event.EventType = domain.EventTypeTokenPurchase
		payload = domain.PurchasePayload{
			Buyer:      buyer,
			Amount:     domain.NewAmount(amount),
			Price:      domain.NewAmount(price),
			TotalValue: &total,
		}

	case priceUpdatedEventSignature:
		var newPrice *big.Int
		switch len(vLog.Topics) {
		case 2:
			newPrice = new(big.Int).SetBytes(vLog.Topics[1].Bytes())
		case 1:
			words, err := dataWords(vLog.Data, 1)
			if err != nil {
				return nil, fmt.Errorf("invalid PriceUpdated event: %w", err)
			}
			newPrice = words[0]
		default:
			return nil, fmt.Errorf("invalid PriceUpdated event: expected 1 or 2 topics, got %d", len(vLog.Topics))
		}

		event.EventType = domain.EventTypePriceUpdate
		payload = domain.PriceUpdatePayload{NewPrice: domain.NewAmount(newPrice)}

	default:
		return nil, nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", event.EventType, err)
	}
	event.Data = data

	return event, nil
}

func (c *ethereumClient) Close() {
	c.client.Close()
}

// dataWords splits ABI encoded log data into n uint256 words
func dataWords(data []byte, n int) ([]*big.Int, error) {
	if len(data) < n*32 {
		return nil, fmt.Errorf("insufficient data: expected %d bytes, got %d", n*32, len(data))
	}

	words := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		words[i] = new(big.Int).SetBytes(data[i*32 : (i+1)*32])
	}
	return words, nil
}

func topicAddress(topic common.Hash) string {
	return domain.NormalizeAddress(common.BytesToAddress(topic.Bytes()).Hex())
}
