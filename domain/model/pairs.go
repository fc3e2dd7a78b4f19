package model

import (
	"sort"

	"glyphchain/domain/corpus"
)

// TokenPair is one entry of the externally mined token-level forbidden
// inventory: the pair (Source, Target) must never appear adjacently.
type TokenPair struct {
	Source string
	Target string
}

// ClassPair is an ordered pair of class ids. All forbidden-pair bookkeeping
// above the token level uses this single representation.
type ClassPair struct {
	From corpus.ClassID
	To   corpus.ClassID
}

// ForbiddenPairSet is an immutable set of class pairs that suppression zeroes
// out of candidate matrices.
type ForbiddenPairSet struct {
	pairs   map[ClassPair]struct{}
	dropped int
}

// MapForbiddenPairs lifts the token-level inventory to class level through the
// classifier. Pairs with an unclassified token on either side are silently
// dropped; the dropped count stays observable for auditing. Duplicate class
// pairs collapse.
func MapForbiddenPairs(inventory []TokenPair, classOf func(string) (corpus.ClassID, bool)) *ForbiddenPairSet {
	set := &ForbiddenPairSet{pairs: make(map[ClassPair]struct{})}
	for _, tp := range inventory {
		from, ok := classOf(tp.Source)
		if !ok {
			set.dropped++
			continue
		}
		to, ok := classOf(tp.Target)
		if !ok {
			set.dropped++
			continue
		}
		set.pairs[ClassPair{From: from, To: to}] = struct{}{}
	}
	return set
}

// NewForbiddenPairSet builds a set directly from class pairs.
func NewForbiddenPairSet(pairs []ClassPair) *ForbiddenPairSet {
	set := &ForbiddenPairSet{pairs: make(map[ClassPair]struct{}, len(pairs))}
	for _, p := range pairs {
		set.pairs[p] = struct{}{}
	}
	return set
}

// Contains reports whether the ordered pair (from, to) is forbidden.
func (s *ForbiddenPairSet) Contains(from, to corpus.ClassID) bool {
	if s == nil {
		return false
	}
	_, ok := s.pairs[ClassPair{From: from, To: to}]
	return ok
}

// Len returns the number of forbidden pairs.
func (s *ForbiddenPairSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pairs)
}

// DroppedCount returns how many inventory entries were discarded because a
// token was unclassified.
func (s *ForbiddenPairSet) DroppedCount() int {
	if s == nil {
		return 0
	}
	return s.dropped
}

// Pairs returns the pairs in deterministic order for reporting.
func (s *ForbiddenPairSet) Pairs() []ClassPair {
	out := make([]ClassPair, 0, len(s.pairs))
	for p := range s.pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Symmetrized returns the closure of the set under pair reversal: for every
// (a,b) present, (b,a) is added. The operation only adds pairs, never removes
// one, so the result is always a superset of the receiver.
func (s *ForbiddenPairSet) Symmetrized() *ForbiddenPairSet {
	out := &ForbiddenPairSet{
		pairs:   make(map[ClassPair]struct{}, len(s.pairs)*2),
		dropped: s.dropped,
	}
	for p := range s.pairs {
		out.pairs[p] = struct{}{}
		out.pairs[ClassPair{From: p.To, To: p.From}] = struct{}{}
	}
	return out
}
