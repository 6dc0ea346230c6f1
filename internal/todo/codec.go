package todo

import (
	"encoding/json"
	"fmt"
)

// Marshal serializes the list with 2-space indentation and a trailing
// newline. A nil list encodes as an empty array.
func Marshal(l List) ([]byte, error) {
	if l == nil {
		l = List{}
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal parses and validates slot data.
func Unmarshal(data []byte) (List, error) {
	if res := Validate(data); !res.Valid {
		return nil, fmt.Errorf("parse tasks: %w", res.Err())
	}
	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if l == nil {
		l = List{}
	}
	return l, nil
}
