package domain

import (
	"encoding/json"
	"fmt"
	"io"
)

// MaxDocumentSize bounds how much of a stats document is read.
const MaxDocumentSize = 32 << 20

// Decode parses and validates a stats document from r.
func Decode(r io.Reader) (*StatsData, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read stats document: %w", ErrDataUnavailable, err)
	}
	if len(body) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: stats document exceeds %d bytes", ErrDataUnavailable, MaxDocumentSize)
	}
	return DecodeBytes(body)
}

// DecodeBytes parses and validates a stats document held in memory.
func DecodeBytes(body []byte) (*StatsData, error) {
	var data StatsData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: failed to parse stats document: %w", ErrDataUnavailable, err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}
