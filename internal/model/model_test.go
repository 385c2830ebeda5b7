package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortByDate(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	pages := []*Page{
		{Title: "middle", Date: day(10)},
		{Title: "undated"},
		{Title: "newest", Date: day(20)},
		{Title: "oldest", Date: day(1)},
	}

	SortByDate(pages)

	var titles []string
	for _, p := range pages {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"newest", "middle", "oldest", "undated"}, titles)
}

func TestSortMenu(t *testing.T) {
	items := []MenuItem{
		{Name: "About", Weight: 3},
		{Name: "Home", Weight: 1, Children: []MenuItem{
			{Name: "b", Weight: 2},
			{Name: "a", Weight: 1},
		}},
		{Name: "Posts", Weight: 2},
	}

	SortMenu(items)

	assert.Equal(t, "Home", items[0].Name)
	assert.Equal(t, "Posts", items[1].Name)
	assert.Equal(t, "About", items[2].Name)
	assert.Equal(t, "a", items[0].Children[0].Name)
}
