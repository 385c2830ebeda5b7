package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullRecord(t *testing.T) {
	raw := []byte(`---
title: SQLite Access Layering
date: 2024-03-01
layout: post
summary: Structuring database access in C.
tags:
  - c
  - sqlite
---

## Why layering matters
`)
	p, err := Parse(raw, "/site/content/posts/sqlite.md", "posts/sqlite.md")
	require.NoError(t, err)

	assert.Equal(t, "SQLite Access Layering", p.Title)
	assert.True(t, p.Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), "got date %v", p.Date)
	assert.Equal(t, "post", p.Layout)
	assert.Equal(t, "Structuring database access in C.", p.Summary)
	assert.Equal(t, "posts", p.Section)
	assert.Equal(t, "/posts/sqlite/", p.Permalink)
	assert.Contains(t, string(p.Body), "## Why layering matters")
	assert.Equal(t, []any{"c", "sqlite"}, p.Params["tags"])
	assert.False(t, p.Draft)
}

func TestParseBodyOnly(t *testing.T) {
	raw := []byte("## Just a heading\n\nNo front matter here.\n")
	p, err := Parse(raw, "/site/content/notes.md", "notes.md")
	require.NoError(t, err)

	assert.Equal(t, string(raw), string(p.Body))
	assert.Empty(t, p.Params)
	assert.Equal(t, "Notes", p.Title, "title falls back to the file name")
	assert.Empty(t, p.Section)
	assert.Equal(t, "/notes/", p.Permalink)
}

func TestParseMalformedMetadata(t *testing.T) {
	raw := []byte(`---
title: [unclosed
date 2024-01-01
---

body
`)
	_, err := Parse(raw, "/site/content/bad.md", "bad.md")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedMetadata)
}

func TestParseBadDate(t *testing.T) {
	raw := []byte(`---
title: Post
date: sometime in march
---
`)
	_, err := Parse(raw, "/site/content/bad-date.md", "bad-date.md")
	assert.ErrorIs(t, err, ErrMalformedMetadata)
}

func TestParseDateFormats(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-06-30", time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)},
		{"2024-06-30T08:15:00", time.Date(2024, 6, 30, 8, 15, 0, 0, time.UTC)},
		{"2024-06-30 08:15:00", time.Date(2024, 6, 30, 8, 15, 0, 0, time.UTC)},
		{"2024-06-30T08:15:00Z", time.Date(2024, 6, 30, 8, 15, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(tt.want), "parseDate(%q) = %v, want %v", tt.in, got, tt.want)
	}
}

func TestParseSectionOverride(t *testing.T) {
	raw := []byte(`---
title: Side Project
section: projects
---
`)
	p, err := Parse(raw, "/site/content/posts/side.md", "posts/side.md")
	require.NoError(t, err)
	assert.Equal(t, "projects", p.Section, "front matter section overrides the directory")

	raw = []byte(`---
title: Typed
type: projects
---
`)
	p, err = Parse(raw, "/site/content/posts/typed.md", "posts/typed.md")
	require.NoError(t, err)
	assert.Equal(t, "projects", p.Section, "type is accepted as an alias")
}

func TestParseDraft(t *testing.T) {
	raw := []byte(`---
title: WIP
draft: true
---
`)
	p, err := Parse(raw, "/site/content/wip.md", "wip.md")
	require.NoError(t, err)
	assert.True(t, p.Draft)
}

func TestParseEmptyBody(t *testing.T) {
	raw := []byte(`---
title: Resume
layout: page
---
`)
	p, err := Parse(raw, "/site/content/resume.md", "resume.md")
	require.NoError(t, err)
	assert.Equal(t, "Resume", p.Title)
	assert.Empty(t, string(p.Body))
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"my-first-post.md", "My First Post"},
		{"posts/ci_deploy_howto.md", "Ci Deploy Howto"},
		{"about.md", "About"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, titleFromFilename(tt.rel))
	}
}

func TestPermalinkOf(t *testing.T) {
	assert.Equal(t, "/posts/hello/", permalinkOf("posts/hello.md"))
	assert.Equal(t, "/about/", permalinkOf("about.md"))
	assert.Equal(t, "/legacy/", permalinkOf("legacy.html"))
}
