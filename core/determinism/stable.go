// Package determinism provides primitives for deterministic reports.
// Use these instead of ranging over Go maps wherever output order matters.
package determinism

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"slices"

	"github.com/shopspring/decimal"
)

// OrderedSet is a set that iterates in insertion order.
// It is not safe for concurrent writers.
type OrderedSet[T comparable] struct {
	items []T
	index map[T]struct{}
}

// NewOrderedSet creates an empty OrderedSet
func NewOrderedSet[T comparable]() *OrderedSet[T] {
	return &OrderedSet[T]{index: make(map[T]struct{})}
}

// Add inserts item and reports whether it was new
func (s *OrderedSet[T]) Add(item T) bool {
	if _, exists := s.index[item]; exists {
		return false
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// Contains reports whether item is in the set
func (s *OrderedSet[T]) Contains(item T) bool {
	_, ok := s.index[item]
	return ok
}

// Items returns a copy of the items in insertion order
func (s *OrderedSet[T]) Items() []T {
	result := make([]T, len(s.items))
	copy(result, s.items)
	return result
}

// Len returns the number of items
func (s *OrderedSet[T]) Len() int {
	return len(s.items)
}

// SortedKeys returns the keys of m in ascending order
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Hex()[:16] + "..."
}

// Money is a USD amount with full precision.
// NEVER use float64 for money calculations.
type Money struct {
	amount decimal.Decimal
}

// USD creates Money from a decimal
func USD(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// ParseUSD creates Money from a decimal string
func ParseUSD(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: d}, nil
}

// Zero returns zero money
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add adds two amounts
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub subtracts other from m
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Mul multiplies by a scalar
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// MulInt multiplies by an integer scalar
func (m Money) MulInt(factor int64) Money {
	return m.Mul(decimal.NewFromInt(factor))
}

// IsZero returns true if amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative returns true if amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Equal compares amounts regardless of scale
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount with 2 decimal places
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// StringRaw returns the raw decimal string (full precision)
func (m Money) StringRaw() string {
	return m.amount.String()
}

// MarshalJSON encodes the amount as a JSON number with 2 decimal places
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.amount.UnmarshalJSON(data)
}
