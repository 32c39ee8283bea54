// Package bag implements the random tile bag external collaborator from
// spec.md §6: the per-letter counts for standard and double Bananagrams,
// and random-hand drawing for practice play.
package bag

import (
	"errors"
	"math/rand"

	"github.com/crossplay/banana-engine/pkg/multiset"
)

// ErrNotEnoughTiles is returned when Draw is asked for more tiles than
// the bag holds.
var ErrNotEnoughTiles = errors.New("bag: not enough tiles remaining")

// StandardCounts are the 144 per-letter tile counts of a standard
// Bananagrams set, per spec.md §6.
var StandardCounts = [multiset.NumLetters]int{
	13, 3, 3, 6, 18, 3, 4, 3, 12, 2, 2, 5, 3, 8, 11, 3, 2, 9, 6, 9, 6, 3, 3, 2, 3, 2,
}

// Bag is a shuffled pool of individual letter tiles that can be drawn
// down into a Hand, grounded on the teacher's pkg/grid/seed.go pattern of
// a seeded rand.Source producing a reproducible shuffle.
type Bag struct {
	tiles []byte
	rnd   *rand.Rand
}

// NewStandard returns a 144-tile bag (doubled=false) or a 288-tile
// double-Bananagrams bag (doubled=true), per spec.md §6.
func NewStandard(doubled bool, seed int64) *Bag {
	multiplier := 1
	if doubled {
		multiplier = 2
	}
	var tiles []byte
	for letter, count := range StandardCounts {
		for i := 0; i < count*multiplier; i++ {
			tiles = append(tiles, byte(letter))
		}
	}
	b := &Bag{tiles: tiles, rnd: rand.New(rand.NewSource(seed))}
	b.rnd.Shuffle(len(b.tiles), func(i, j int) {
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	})
	return b
}

// Remaining reports how many tiles are still undrawn.
func (b *Bag) Remaining() int {
	return len(b.tiles)
}

// Draw removes n tiles from the bag and returns them as a Hand.
func (b *Bag) Draw(n int) (multiset.Hand, error) {
	var hand multiset.Hand
	if n > len(b.tiles) {
		return hand, ErrNotEnoughTiles
	}
	for i := 0; i < n; i++ {
		hand[b.tiles[i]]++
	}
	b.tiles = b.tiles[n:]
	return hand, nil
}
