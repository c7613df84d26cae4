package game

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"
)

// DefaultCatalogSize is the number of cards generated at startup.
const DefaultCatalogSize = 100

// Catalog owns the fixed pool of addressable cards for the process
// lifetime. Cards are generated once; Generate is a no-op when the
// catalog is already full.
type Catalog struct {
	mu    sync.RWMutex
	cards []Card
	seen  map[string]bool
	size  int
	rng   *rand.Rand
}

func NewCatalog(size int) *Catalog {
	if size <= 0 {
		size = DefaultCatalogSize
	}
	return &Catalog{
		seen: make(map[string]bool, size),
		size: size,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate fills the catalog up to its target size. Card ids are
// assigned sequentially from 1. A sampled card whose numbers collide
// with an existing card is resampled, so the catalog holds no
// duplicates.
func (ct *Catalog) Generate() {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	if len(ct.cards) >= ct.size {
		return
	}

	for id := len(ct.cards) + 1; id <= ct.size; id++ {
		card := ct.sampleCard(id)
		for ct.seen[cardSignature(card)] {
			card = ct.sampleCard(id)
		}
		ct.seen[cardSignature(card)] = true
		ct.cards = append(ct.cards, card)
	}
	log.Printf("[Catalog] Generated %d bingo cards", len(ct.cards))
}

// Get returns the card with the given id, if it exists.
func (ct *Catalog) Get(id int) (Card, bool) {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	if id < 1 || id > len(ct.cards) {
		return Card{}, false
	}
	return ct.cards[id-1], true
}

// All returns the full catalog in id order.
func (ct *Catalog) All() []Card {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return append([]Card(nil), ct.cards...)
}

func (ct *Catalog) Size() int {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return len(ct.cards)
}

// sampleCard draws 5 distinct ascending numbers per column range.
// Every range has 15 members, so sampling cannot fail.
func (ct *Catalog) sampleCard(id int) Card {
	return Card{
		CardID: id,
		B:      ct.sampleColumn(1, 15),
		I:      ct.sampleColumn(16, 30),
		N:      ct.sampleColumn(31, 45),
		G:      ct.sampleColumn(46, 60),
		O:      ct.sampleColumn(61, 75),
	}
}

func (ct *Catalog) sampleColumn(min, max int) []int {
	available := make([]int, 0, max-min+1)
	for n := min; n <= max; n++ {
		available = append(available, n)
	}
	ct.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	col := available[:ColumnSize]
	// insertion sort, the column is 5 wide
	for i := 1; i < len(col); i++ {
		for j := i; j > 0 && col[j] < col[j-1]; j-- {
			col[j], col[j-1] = col[j-1], col[j]
		}
	}
	return append([]int(nil), col...)
}

func cardSignature(c Card) string {
	return fmt.Sprint(c.Numbers())
}
