package primitives

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Vocabulary is the ordered, read-only list of words a run works with.
//
// Index positions are stable for the lifetime of the Vocabulary; candidate sets are bitsets
// over those indices.
type Vocabulary struct {
	words       []Word
	length      int
	fingerprint string
	indexByText map[string]int

	// at[pos][letter] is the set of words with letter at pos.
	at [][AlphabetSize]*bitset.BitSet
	// atLeast[letter][k] is the set of words holding letter at least k+1 times.
	atLeast [AlphabetSize][]*bitset.BitSet

	all *bitset.BitSet
}

// NewVocabulary builds a Vocabulary from words that must all have the same length as the
// first one.
func NewVocabulary(texts []string) (*Vocabulary, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyVocabulary
	}

	v := &Vocabulary{
		words:       make([]Word, 0, len(texts)),
		indexByText: make(map[string]int, len(texts)),
	}
	hasher := sha256.New()

	for i, text := range texts {
		w, err := NewWord(text)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i+1, err)
		}
		if i == 0 {
			v.length = w.Len()
		} else if w.Len() != v.length {
			return nil, &LengthMismatchError{Index: i + 1, Word: w.text, Want: v.length, Got: w.Len()}
		}
		if _, ok := v.indexByText[w.text]; !ok {
			v.indexByText[w.text] = len(v.words)
		}
		v.words = append(v.words, w)
		hasher.Write([]byte(w.text))
	}
	v.fingerprint = hex.EncodeToString(hasher.Sum(nil))

	v.buildIndex()
	return v, nil
}

// MustVocabulary is like NewVocabulary but panics on error. It is meant for tests.
func MustVocabulary(texts ...string) *Vocabulary {
	v, err := NewVocabulary(texts)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Vocabulary) buildIndex() {
	n := uint(len(v.words))

	v.at = make([][AlphabetSize]*bitset.BitSet, v.length)
	for pos := range v.at {
		for l := range v.at[pos] {
			v.at[pos][l] = bitset.New(n)
		}
	}

	for wi, w := range v.words {
		for pos := 0; pos < v.length; pos++ {
			v.at[pos][w.text[pos]-minLetter].Set(uint(wi))
		}
		for l, count := range w.counts {
			for len(v.atLeast[l]) < int(count) {
				v.atLeast[l] = append(v.atLeast[l], bitset.New(n))
			}
			for k := 0; k < int(count); k++ {
				v.atLeast[l][k].Set(uint(wi))
			}
		}
	}

	v.all = bitset.New(n).FlipRange(0, n)
}

// Len returns the number of words.
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// WordLen returns the shared length of every word.
func (v *Vocabulary) WordLen() int {
	return v.length
}

// At returns the word at index i.
func (v *Vocabulary) At(i int) Word {
	return v.words[i]
}

// Index returns the index of the first word equal to text.
func (v *Vocabulary) Index(text string) (int, bool) {
	i, ok := v.indexByText[text]
	return i, ok
}

// Fingerprint is the hex SHA-256 of the concatenated words, identifying the word list across
// runs.
func (v *Vocabulary) Fingerprint() string {
	return v.fingerprint
}

// All returns a new set holding every index.
func (v *Vocabulary) All() *bitset.BitSet {
	return v.all.Clone()
}

// Filter returns the set of words allowed by c.
func (v *Vocabulary) Filter(c *Constraint) *bitset.BitSet {
	dst := bitset.New(uint(len(v.words)))
	v.MatchInto(dst, c, v.all)
	return dst
}

// MatchInto overwrites dst with the members of within that c allows and returns how many
// there are. dst must have been created for this Vocabulary's length and may be reused.
func (v *Vocabulary) MatchInto(dst *bitset.BitSet, c *Constraint, within *bitset.BitSet) uint {
	if c.Len() != v.length {
		dst.ClearAll()
		return 0
	}
	within.Copy(dst)

	for l := range c.hasMin.Letters() {
		idx := l - minLetter
		need := int(c.min[idx])
		if need > len(v.atLeast[idx]) {
			dst.ClearAll()
			return 0
		}
		dst.InPlaceIntersection(v.atLeast[idx][need-1])
	}
	for l := range c.hasMax.Letters() {
		idx := l - minLetter
		if limit := int(c.max[idx]); limit < len(v.atLeast[idx]) {
			dst.InPlaceDifference(v.atLeast[idx][limit])
		}
	}
	for pos, p := range c.positions {
		if p.Exact != 0 {
			dst.InPlaceIntersection(v.at[pos][p.Exact-minLetter])
		}
		for l := range p.Excluded.Letters() {
			dst.InPlaceDifference(v.at[pos][l-minLetter])
		}
	}
	return dst.Count()
}

// Indices lists the members of set in vocabulary order.
func (v *Vocabulary) Indices(set *bitset.BitSet) []int {
	out := make([]int, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// Texts lists the words of set in vocabulary order.
func (v *Vocabulary) Texts(set *bitset.BitSet) []string {
	out := make([]string, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, v.words[i].text)
	}
	return out
}
