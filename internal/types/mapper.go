package types

import (
	"encoding/json"
	"strconv"

	"gorm.io/datatypes"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/store/schema"
)

// ChainEventToSchema converts a normalized chain event to a blockchain_events row
func ChainEventToSchema(event domain.ChainEvent) schema.BlockchainEvent {
	data := event.Data
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	return schema.BlockchainEvent{
		EventType:       string(event.EventType),
		ContractAddress: event.ContractAddress,
		BlockNumber:     strconv.FormatUint(event.BlockNumber, 10),
		TransactionHash: event.TransactionHash,
		LogIndex:        int(event.LogIndex), //nolint:gosec,G115
		Data:            datatypes.JSON(data),
	}
}

// SchemaToChainEvent converts a stored blockchain_events row back to a chain event
func SchemaToChainEvent(row schema.BlockchainEvent) domain.ChainEvent {
	blockNumber, _ := strconv.ParseUint(row.BlockNumber, 10, 64)
	return domain.ChainEvent{
		EventType:       domain.EventType(row.EventType),
		ContractAddress: row.ContractAddress,
		BlockNumber:     blockNumber,
		TransactionHash: row.TransactionHash,
		LogIndex:        uint(row.LogIndex), //nolint:gosec,G115
		Data:            json.RawMessage(row.Data),
	}
}
