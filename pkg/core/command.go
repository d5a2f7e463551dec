// pkg/core/command.go
package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawCommand is one row of an event command list as the editor serializes it.
// Rows are never mutated once decoded.
type RawCommand struct {
	Code       int   `json:"code"`
	Indent     int   `json:"indent"`
	Parameters []any `json:"parameters"`
}

// Event is a single command list together with where it came from.
// Map events carry one Event per page; common events use Page 0.
type Event struct {
	ID       int
	Page     int
	Name     string
	Source   string
	Commands []RawCommand
}

// DecodeCommands decodes a JSON command list. Numbers are kept as
// json.Number so integer operands survive without float rounding.
func DecodeCommands(data []byte) ([]RawCommand, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var list []RawCommand
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("error decoding command list: %w", err)
	}
	for i := range list {
		if list[i].Parameters == nil {
			list[i].Parameters = []any{}
		}
	}
	return list, nil
}
