package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vtt(lines ...string) RawCueDocument {
	return RawCueDocument{Format: FormatVTT, Content: strings.Join(lines, "\n")}
}

func TestParseSingleCue(t *testing.T) {
	got := Parse(vtt("00:00:01.000 --> 00:00:03.000", "Hello <b>world</b>"))
	assert.Equal(t, []Segment{{Start: 1, Text: "Hello world"}}, got)
}

func TestParseEmpty(t *testing.T) {
	for _, f := range []Format{FormatVTT, FormatSRT, FormatTTML} {
		got := Parse(RawCueDocument{Format: f})
		assert.NotNil(t, got, f)
		assert.Empty(t, got, f)
	}
}

func TestParseSkipsCueIndex(t *testing.T) {
	doc := RawCueDocument{Format: FormatSRT, Content: strings.Join([]string{
		"1",
		"00:00:01,000 --> 00:00:02,500",
		"First line",
		"",
		"2",
		"00:00:03,000 --> 00:00:04,000",
		"Second line",
		"",
	}, "\r\n")}
	got := Parse(doc)
	assert.Equal(t, []Segment{
		{Start: 1, Text: "First line"},
		{Start: 3, Text: "Second line"},
	}, got)
}

func TestParseWebVTTHeaderAndNotes(t *testing.T) {
	got := Parse(vtt(
		"WEBVTT",
		"Kind: captions",
		"Language: en",
		"",
		"NOTE this is a comment",
		"",
		"00:01:05.120 --> 00:01:07.000 align:start position:0%",
		"<c.colorE5E5E5>so</c><00:01:05.500><c> we</c> begin",
	))
	assert.Equal(t, []Segment{{Start: 65, Text: "so we begin"}}, got)
}

func TestParseMultiLineCueKeepsLines(t *testing.T) {
	got := Parse(vtt(
		"WEBVTT",
		"",
		"00:00:10.000 --> 00:00:12.000",
		"first line",
		"second   line",
		"",
		"00:00:13.000 --> 00:00:14.000",
		"third",
	))
	assert.Equal(t, []Segment{
		{Start: 10, Text: "first line"},
		{Start: 10, Text: "second line"},
		{Start: 13, Text: "third"},
	}, got)
}

func TestParseDropsEmptyAfterCleaning(t *testing.T) {
	got := Parse(vtt(
		"00:00:01.000 --> 00:00:02.000",
		"<i></i>",
		"   ",
		"&amp; more",
	))
	assert.Equal(t, []Segment{{Start: 1, Text: "& more"}}, got)
}

func TestParseNoResidualMarkup(t *testing.T) {
	got := Parse(vtt(
		"00:00:01.000 --> 00:00:02.000",
		`<v Roger Bingham>We are in <i>New York</i></v>`,
		"&lt;b&gt;escaped&lt;/b&gt; tags",
	))
	require.Len(t, got, 2)
	for _, seg := range got {
		assert.NotEmpty(t, seg.Text)
		assert.NotRegexp(t, `<[^>]+>`, seg.Text)
	}
	assert.Equal(t, "We are in New York", got[0].Text)
	assert.Equal(t, "escaped tags", got[1].Text)
}

func TestParseKeepsLiteralAngleBrackets(t *testing.T) {
	got := Parse(vtt(
		"00:00:01.000 --> 00:00:02.000",
		"if x &lt; 3 and y &gt; 2 then",
	))
	assert.Equal(t, []Segment{{Start: 1, Text: "if x < 3 and y > 2 then"}}, got)
}

func TestParseMalformedTimingDegradesToZero(t *testing.T) {
	got := Parse(vtt("garbled --> also garbled", "text"))
	assert.Equal(t, []Segment{{Start: 0, Text: "text"}}, got)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"01:02:03", 3723},
		{"02:03", 123},
		{"garbled", 0},
		{"00:00:01.000", 1},
		{"00:00:01,999", 1},
		{" 00:10:00.5 ", 600},
		{"1:2:3:4", 0},
		{"", 0},
		{"-1:00", 0},
		{"aa:bb", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTimestamp(tt.in))
		})
	}
}

func TestParseTTML(t *testing.T) {
	doc := RawCueDocument{Format: FormatTTML, Content: `<?xml version="1.0" encoding="utf-8" ?>
<tt xml:lang="en" xmlns="http://www.w3.org/ns/ttml" xmlns:tts="http://www.w3.org/ns/ttml#styling">
<head><styling><style xml:id="s1" tts:color="white"/></styling></head>
<body><div>
<p begin="00:00:01.000" end="00:00:03.000" style="s1">Hello <span tts:fontStyle="italic">world</span></p>
<p begin="00:01:02.500" end="00:01:04.000">two<br/>lines &amp; more</p>
<p begin="12.5s" end="13s"></p>
<p begin="90s">offset</p>
</div></body>
</tt>`}
	got := Parse(doc)
	assert.Equal(t, []Segment{
		{Start: 1, Text: "Hello world"},
		{Start: 62, Text: "two"},
		{Start: 62, Text: "lines & more"},
		{Start: 90, Text: "offset"},
	}, got)
}

func TestParseClockValue(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00:05.000", 5},
		{"00:01:00:12", 60},
		{"1500ms", 1},
		{"2m", 120},
		{"1h", 3600},
		{"7.9s", 7},
		{"12t", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseClockValue(tt.in), tt.in)
	}
}

func TestCueStateTransitions(t *testing.T) {
	var st cueState
	st, seg := st.next("Kind: captions")
	assert.Nil(t, seg, "text before a timing line is ignored")
	assert.Equal(t, seeking, st.mode)

	st, seg = st.next("00:00:07.000 --> 00:00:08.000")
	assert.Nil(t, seg)
	assert.Equal(t, cueState{mode: expectingText, offset: 7}, st)

	st, seg = st.next("")
	assert.Nil(t, seg)
	assert.Equal(t, expectingText, st.mode, "blank lines keep state")

	st, seg = st.next("42")
	assert.Nil(t, seg)

	_, seg = st.next("words")
	require.NotNil(t, seg)
	assert.Equal(t, Segment{Start: 7, Text: "words"}, *seg)
}
