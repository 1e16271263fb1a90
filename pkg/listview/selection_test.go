package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionToggleOne(t *testing.T) {
	s := NewSelection()
	s = s.ToggleOne("1")
	s = s.ToggleOne("2")
	assert.Equal(t, []string{"1", "2"}, s.IDs())

	s = s.ToggleOne("1")
	assert.Equal(t, []string{"2"}, s.IDs())
	assert.False(t, s.Has("1"))
}

func TestSelectionIsImmutable(t *testing.T) {
	a := NewSelection("1")
	b := a.ToggleOne("2")
	c := b.ToggleOne("1")

	assert.Equal(t, []string{"1"}, a.IDs())
	assert.Equal(t, []string{"1", "2"}, b.IDs())
	assert.Equal(t, []string{"2"}, c.IDs())
}

func TestSelectionToggleAllVisible(t *testing.T) {
	visible := []string{"A", "B"}

	s := NewSelection().ToggleAllVisible(visible)
	assert.Equal(t, []string{"A", "B"}, s.IDs())
	assert.True(t, s.AllVisibleSelected(visible))

	s = s.ToggleAllVisible(visible)
	assert.Empty(t, s.IDs())

	// Partially selected page: toggling selects the rest first.
	s = NewSelection("B").ToggleAllVisible(visible)
	assert.Equal(t, []string{"B", "A"}, s.IDs())

	// Off-page selections survive both directions.
	s = NewSelection("C").ToggleAllVisible(visible)
	assert.Equal(t, []string{"C", "A", "B"}, s.IDs())
	s = s.ToggleAllVisible(visible)
	assert.Equal(t, []string{"C"}, s.IDs())
}

func TestSelectionAllVisibleSelectedEmptyPage(t *testing.T) {
	s := NewSelection("A")
	assert.False(t, s.AllVisibleSelected(nil))
	assert.Equal(t, []string{"A"}, s.ToggleAllVisible(nil).IDs())
}

func TestSelectionPrune(t *testing.T) {
	s := NewSelection("1", "2", "3")
	s = s.Prune(func(id string) bool { return id != "2" })
	assert.Equal(t, []string{"1", "3"}, s.IDs())
	assert.Equal(t, 2, s.Len())
}

func TestNewSelectionIgnoresDuplicatesAndEmpty(t *testing.T) {
	s := NewSelection("1", "", "1", "2")
	assert.Equal(t, []string{"1", "2"}, s.IDs())
}
