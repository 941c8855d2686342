package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulator(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(Contribution{Category: "C2", Keywords: []string{"k1"}})
	acc.Add(Contribution{Category: "C10", Keywords: []string{"zeta", "alpha", "alpha"}})
	acc.Add(Contribution{Category: "C2", Keywords: []string{"k1", "k2"}})
	acc.Add(Contribution{Category: "C7"})

	assert.Equal(t, 3, acc.Len())
	assert.Equal(t, 2, acc.Count("C2"))
	assert.Equal(t, 0, acc.Count("C7"))
	assert.Equal(t, 0, acc.Count("missing"))

	result := acc.Result()
	assert.Equal(t, []Category{
		{Name: "C2", Keywords: []string{"k1", "k2"}},
		{Name: "C10", Keywords: []string{"alpha", "zeta"}},
		{Name: "C7", Keywords: []string{}},
	}, result.Categories)

	assert.Equal(t, []string{"C10", "C2", "C7"}, result.Names())

	kws, ok := result.Get("C10")
	assert.True(t, ok)
	assert.Equal(t, []string{"alpha", "zeta"}, kws)

	_, ok = result.Get("C99")
	assert.False(t, ok)
}

func TestAccumulatorSortsByCodePoint(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(Contribution{Category: "C1", Keywords: []string{"中文", "Zebra", "apple", "Äpfel", "123"}})

	kws, _ := acc.Result().Get("C1")
	assert.Equal(t, []string{"123", "Zebra", "apple", "Äpfel", "中文"}, kws)
}
