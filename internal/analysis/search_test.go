package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

var segs = []transcript.Segment{
	{Start: 0, Text: "Hello world"},
	{Start: 65, Text: "The world is big"},
	{Start: 70, Text: "nothing here"},
}

func TestSearchSegments(t *testing.T) {
	got := Search(segs, "", "World")
	assert.Equal(t, []Match{
		{Time: "00:00", Text: "Hello **world**", Timestamp: 0},
		{Time: "01:05", Text: "The **world** is big", Timestamp: 65},
	}, got)
}

func TestSearchHighlightsEveryWord(t *testing.T) {
	got := Search(segs, "", "world is")
	require.Len(t, got, 1)
	assert.Equal(t, "The **world** **is** big", got[0].Text)
}

func TestSearchQuotesMeta(t *testing.T) {
	got := Search([]transcript.Segment{{Start: 3, Text: "I like C++ a lot"}}, "", "c++")
	require.Len(t, got, 1)
	assert.Equal(t, "I like **C++** a lot", got[0].Text)
}

func TestSearchCap(t *testing.T) {
	many := make([]transcript.Segment, 25)
	for i := range many {
		many[i] = transcript.Segment{Start: i, Text: "match me"}
	}
	assert.Len(t, Search(many, "", "match"), MaxMatches)
}

func TestSearchEmptyQuery(t *testing.T) {
	got := Search(segs, "", "   ")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchSentences(t *testing.T) {
	got := Search(nil, "Go is fun. Rust is fast! go go.", "go")
	assert.Equal(t, []Match{
		{Time: NoTime, Text: "**Go** is fun"},
		{Time: NoTime, Text: "**go** **go**"},
	}, got)
}

func TestSearchNoMatch(t *testing.T) {
	assert.Empty(t, Search(segs, "", "absent"))
	assert.Empty(t, Search(nil, strings.Repeat("a. ", 5), "zzz"))
}
