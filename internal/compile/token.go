package compile

import (
	"sync"

	"github.com/google/uuid"
)

// TokenGenerator generates query IDs for compiled queries. Implemented by
// UUIDv7Tokens (production) and FixedTokens (tests).
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Tokens generates time-sortable UUIDv7 query IDs. The embedded
// timestamp keeps IDs sortable by compilation time, which helps when
// correlating execution traces downstream.
//
// Stateless and safe for concurrent use.
type UUIDv7Tokens struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Tokens) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedTokens returns predetermined IDs for deterministic tests and golden
// comparisons. Safe for concurrent use via internal mutex.
type FixedTokens struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokens creates a generator that returns tokens in order.
// Generate panics once all tokens are consumed; tests should provide
// exactly as many as they compile.
func NewFixedTokens(tokens ...string) *FixedTokens {
	return &FixedTokens{tokens: tokens}
}

// Generate returns the next predetermined token.
func (f *FixedTokens) Generate() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.idx >= len(f.tokens) {
		panic("FixedTokens: all tokens exhausted")
	}
	token := f.tokens[f.idx]
	f.idx++
	return token
}
