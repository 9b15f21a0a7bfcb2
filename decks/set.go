package decks

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

const (
	bitsPerWord = 64
	numWords    = 2
	// MaxDecks is the number of distinct deck indices a Set can hold.
	MaxDecks = bitsPerWord * numWords
)

// Set represents an unordered set of deck indices.
// Bit i of the Set is set iff deck i is a member.
//
// Set is a plain value: copying it copies the membership, so a vertex can
// derive the sets of its children without touching its own. Sets are
// comparable and may be used directly inside map keys.
type Set [numWords]uint64

// NewSet creates a new Set containing the given decks.
func NewSet(decks ...int) Set {
	var result Set
	for _, deck := range decks {
		result.Add(deck)
	}

	return result
}

// IsEmpty returns whether this Set contains any decks.
func (s Set) IsEmpty() bool {
	return s == Set{}
}

// Contains returns whether the given deck is in the Set.
func (s Set) Contains(deck int) bool {
	w, b := position(deck)
	return s[w]&(1<<b) != 0
}

// Len gets the number of decks in the Set.
func (s Set) Len() int {
	n := 0
	for _, word := range s {
		n += bits.OnesCount64(word)
	}
	return n
}

// Iter calls cb with each deck in the Set, in ascending order.
func (s Set) Iter(cb func(deck int)) {
	for w, word := range s {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			cb(w*bitsPerWord + b)
			word &= word - 1
		}
	}
}

// AsSlice returns the decks in the Set in ascending order.
func (s Set) AsSlice() []int {
	result := make([]int, 0, s.Len())
	s.Iter(func(deck int) {
		result = append(result, deck)
	})
	return result
}

// Add includes the given deck in the Set.
func (s *Set) Add(deck int) {
	w, b := position(deck)
	s[w] |= 1 << b
}

// Remove removes the given deck from the Set.
// Remove panics if the deck is not present in the Set.
func (s *Set) Remove(deck int) {
	if !s.Contains(deck) {
		panic(fmt.Errorf("deck %d not in set %v", deck, *s))
	}

	w, b := position(deck)
	s[w] &^= 1 << b
}

// Without returns a copy of the Set with the given deck removed, if present.
func (s Set) Without(deck int) Set {
	w, b := position(deck)
	s[w] &^= 1 << b
	return s
}

// Union returns the decks that are in either Set.
func (s Set) Union(other Set) Set {
	for w := range s {
		s[w] |= other[w]
	}
	return s
}

// Difference returns the decks in s that are not in other.
func (s Set) Difference(other Set) Set {
	for w := range s {
		s[w] &^= other[w]
	}
	return s
}

// Subsets enumerates every subset of s with exactly size decks.
//
// Subsets are produced in lexicographic order of their ascending deck lists,
// so subsets containing the smallest deck come first. The order is stable and
// is the order in which strategies over the subsets are reported.
func (s Set) Subsets(size int) []Set {
	if size < 0 || size > s.Len() {
		return nil
	}

	return enumerateSubsets(s.AsSlice(), size, Set{}, nil)
}

func enumerateSubsets(available []int, size int, current Set, result []Set) []Set {
	if size == 0 {
		return append(result, current)
	}

	for i := 0; i+size <= len(available); i++ {
		next := current
		next.Add(available[i])
		result = enumerateSubsets(available[i+1:], size-1, next, result)
	}

	return result
}

// String implements Stringer.
func (s Set) String() string {
	result := make([]string, 0, s.Len())
	s.Iter(func(deck int) {
		result = append(result, strconv.Itoa(deck))
	})

	return "{" + strings.Join(result, ", ") + "}"
}

func position(deck int) (int, uint) {
	if deck < 0 || deck >= MaxDecks {
		panic(fmt.Errorf("deck index %d out of range [0, %d)", deck, MaxDecks))
	}

	return deck / bitsPerWord, uint(deck % bitsPerWord)
}
