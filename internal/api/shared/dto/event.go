package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/inorbyt/chain-sync/internal/ingestor"
	"github.com/inorbyt/chain-sync/internal/store/schema"
)

// IngestEventResponse describes the outcome of ingesting one event
type IngestEventResponse struct {
	Status  ingestor.Status `json:"status"`
	EventID *uuid.UUID      `json:"event_id,omitempty"`
	Key     string          `json:"key"`
	// Error is the handler failure of a stored event. Recovery retries it.
	Error string `json:"error,omitempty"`
}

// BatchEventsResponse counts the outcomes of a batch
type BatchEventsResponse struct {
	Message    string `json:"message"`
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`
}

// RecoveryResponse counts the outcomes of a recovery scan
type RecoveryResponse struct {
	Scanned   int `json:"scanned"`
	Recovered int `json:"recovered"`
	Failed    int `json:"failed"`
}

// EventResponse represents a stored blockchain event
type EventResponse struct {
	ID              uuid.UUID       `json:"id"`
	EventType       string          `json:"event_type"`
	ContractAddress string          `json:"contract_address"`
	BlockNumber     string          `json:"block_number"`
	TransactionHash string          `json:"transaction_hash"`
	LogIndex        int             `json:"log_index"`
	Data            json.RawMessage `json:"data"`
	Processed       bool            `json:"processed"`
	Attempts        int             `json:"attempts"`
	LastError       *string         `json:"last_error,omitempty"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EventListResponse represents a page of blockchain events
type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	Pagination Pagination      `json:"pagination"`
}

// MapEventToDTO maps a schema.BlockchainEvent to EventResponse
func MapEventToDTO(event *schema.BlockchainEvent) *EventResponse {
	if event == nil {
		return nil
	}

	data := json.RawMessage(event.Data)
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	return &EventResponse{
		ID:              event.ID,
		EventType:       event.EventType,
		ContractAddress: event.ContractAddress,
		BlockNumber:     event.BlockNumber,
		TransactionHash: event.TransactionHash,
		LogIndex:        event.LogIndex,
		Data:            data,
		Processed:       event.Processed,
		Attempts:        event.Attempts,
		LastError:       event.LastError,
		ProcessedAt:     event.ProcessedAt,
		CreatedAt:       event.CreatedAt,
	}
}
