package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/domain"
)

// maxEventLineSize bounds a single JSONL line
const maxEventLineSize = 1 << 20

// readEvents decodes one chain event per line. Blank lines are skipped.
func readEvents(r io.Reader, json adapter.JSON) ([]domain.ChainEvent, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventLineSize)

	var events []domain.ChainEvent
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var event domain.ChainEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	return events, nil
}
