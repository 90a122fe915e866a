package textsize

import (
	"sync"
	"testing"
)

// countingMeasurer records the strings it is asked to measure.
type countingMeasurer struct {
	mu    sync.Mutex
	calls []string
}

func (c *countingMeasurer) Width(text string, size FontSize) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, text)
	return len([]rune(text)) * (6 - int(size))
}

func (c *countingMeasurer) LineHeight(size FontSize) int { return 10 - int(size) }

func TestCached_Memoizes(t *testing.T) {
	base := &countingMeasurer{}
	c, err := NewCached(base, 16)
	if err != nil {
		t.Fatal(err)
	}

	if got := c.Width("Hello", Normal); got != 30 {
		t.Errorf("Width = %d, want 30", got)
	}
	if got := c.Width("Hello", Normal); got != 30 {
		t.Errorf("cached Width = %d, want 30", got)
	}
	if got := c.Width("Hello", Small); got != 25 {
		t.Errorf("small Width = %d, want 25", got)
	}
	if len(base.calls) != 2 {
		t.Errorf("underlying calls = %v, want 2", base.calls)
	}
	hits, misses := c.Stats()
	if hits != 1 || misses != 2 {
		t.Errorf("Stats() = %d hits, %d misses, want 1, 2", hits, misses)
	}
	if c.LineHeight(Small) != 9 {
		t.Errorf("LineHeight(Small) = %d, want 9", c.LineHeight(Small))
	}
}

func TestCached_NormalizesKeys(t *testing.T) {
	base := &countingMeasurer{}
	c, err := NewCached(base, 16)
	if err != nil {
		t.Fatal(err)
	}

	decomposed := "Cafe\u0301"
	precomposed := "Caf\u00e9"
	a := c.Width(decomposed, Normal)
	b := c.Width(precomposed, Normal)
	if a != b {
		t.Errorf("equivalent strings measured %d and %d", a, b)
	}
	if len(base.calls) != 1 || base.calls[0] != precomposed {
		t.Errorf("underlying calls = %q, want one NFC call", base.calls)
	}
}

func TestCached_Evicts(t *testing.T) {
	base := &countingMeasurer{}
	c, err := NewCached(base, 2)
	if err != nil {
		t.Fatal(err)
	}

	c.Width("a", Normal)
	c.Width("b", Normal)
	c.Width("c", Normal)
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	c.Width("a", Normal)
	if len(base.calls) != 4 {
		t.Errorf("evicted entry not re-measured: calls = %q", base.calls)
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Purge", c.Len())
	}
}

func TestCached_Empty(t *testing.T) {
	base := &countingMeasurer{}
	c, err := NewCached(base, 2)
	if err != nil {
		t.Fatal(err)
	}
	if c.Width("", Normal) != 0 || len(base.calls) != 0 {
		t.Error("empty string reached the underlying measurer")
	}
}
