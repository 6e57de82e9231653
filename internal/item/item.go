// Package item defines the in-memory item-stack model and the two codec
// boundaries the migration crosses: the legacy codec that decodes blobs from
// the source schema, and the destination codec that produces the format the
// profile store persists. Both are injected capabilities so converters stay
// testable with fakes.
package item

import "context"

// Stack is one item stack slot. An empty Type means an empty slot.
type Stack struct {
	Type         string         `json:"type"`
	Amount       int            `json:"amount"`
	Damage       int            `json:"damage,omitempty"`
	Name         string         `json:"name,omitempty"`
	Lore         []string       `json:"lore,omitempty"`
	Enchantments map[string]int `json:"enchantments,omitempty"`
}

// Empty reports whether the stack is an empty slot.
func (s Stack) Empty() bool {
	return s.Type == ""
}

// LegacyCodec decodes opaque legacy-encoded blobs into ordered item lists.
// Implementations are provided by the legacy format integration; the
// migration core never interprets blob bytes itself.
type LegacyCodec interface {
	DecodeItems(ctx context.Context, blob string) ([]Stack, error)
}

// Codec encodes ordered item lists into the destination store's own
// serialized representation.
type Codec interface {
	EncodeItems(ctx context.Context, items []Stack) (string, error)
}
