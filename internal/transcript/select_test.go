package transcript

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodVTT = "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nhello there\n"

func track(lang string, origin Origin, formats ...Format) CaptionTrack {
	ct := CaptionTrack{Language: lang, Origin: origin}
	for _, f := range formats {
		ct.Encodings = append(ct.Encodings, Encoding{Format: f, URL: "https://captions.test/" + string(origin) + "/" + lang + "." + string(f)})
	}
	return ct
}

// fakeFetcher serves bodies by URL suffix and records the call order.
type fakeFetcher struct {
	bodies map[string]string
	calls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	for suffix, body := range f.bodies {
		if strings.HasSuffix(url, suffix) {
			return body, nil
		}
	}
	return "", errors.New("404 not found")
}

func TestCandidatesOrder(t *testing.T) {
	ts := TrackSet{
		Manual: []CaptionTrack{
			track("fr", OriginManual, FormatTTML, FormatVTT),
			track("en", OriginManual, FormatSRT),
		},
		Automatic: []CaptionTrack{
			track("en", OriginAutomatic, FormatVTT, FormatSRT, FormatTTML),
		},
	}
	var got []string
	for _, c := range Candidates(ts) {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{
		"manual/fr/vtt",
		"manual/fr/ttml",
		"manual/en/srt",
		"automatic/en/vtt",
		"automatic/en/srt",
		"automatic/en/ttml",
	}, got)
}

func TestCandidatesSkipUnusableEncodings(t *testing.T) {
	ts := TrackSet{Manual: []CaptionTrack{{
		Language: "en",
		Origin:   OriginManual,
		Encodings: []Encoding{
			{Format: "json3", URL: "https://captions.test/a"},
			{Format: FormatVTT, URL: ""},
			{Format: FormatVTT, URL: "https://captions.test/b"},
			{Format: FormatVTT, URL: "https://captions.test/c"},
		},
	}}}
	got := Candidates(ts)
	require.Len(t, got, 1)
	assert.Equal(t, "https://captions.test/b", got[0].Encoding.URL)
}

func TestCandidatesDeterministic(t *testing.T) {
	ts := TrackSet{
		Manual:    []CaptionTrack{track("de", OriginManual, FormatVTT), track("en", OriginManual, FormatVTT)},
		Automatic: []CaptionTrack{track("ar", OriginAutomatic, FormatVTT)},
	}
	first := Candidates(ts)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Candidates(ts))
	}
}

func TestSelectAndFetchFirstSuccess(t *testing.T) {
	ts := TrackSet{
		Manual:    []CaptionTrack{track("en", OriginManual, FormatVTT)},
		Automatic: []CaptionTrack{track("en", OriginAutomatic, FormatVTT)},
	}
	f := &fakeFetcher{bodies: map[string]string{"/manual/en.vtt": goodVTT, "/automatic/en.vtt": goodVTT}}
	sel, err := SelectAndFetch(context.Background(), ts, f, nil)
	require.NoError(t, err)
	assert.Equal(t, OriginManual, sel.Candidate.Origin)
	assert.Len(t, f.calls, 1, "stops at the first usable track")
	assert.Equal(t, []Segment{{Start: 1, Text: "hello there"}}, sel.Segments)
}

func TestSelectAndFetchFallsBack(t *testing.T) {
	ts := TrackSet{
		Manual: []CaptionTrack{
			track("en", OriginManual, FormatVTT, FormatSRT),
			track("es", OriginManual, FormatVTT),
		},
		Automatic: []CaptionTrack{track("en", OriginAutomatic, FormatVTT)},
	}
	f := &fakeFetcher{bodies: map[string]string{
		"/manual/en.srt":    "WEBVTT\n\nNOTE nothing here\n",
		"/automatic/en.vtt": goodVTT,
	}}
	sel, err := SelectAndFetch(context.Background(), ts, f, nil)
	require.NoError(t, err)
	assert.Equal(t, OriginAutomatic, sel.Candidate.Origin)
	assert.Equal(t, "en", sel.Candidate.Language)
	assert.Equal(t, []string{
		"https://captions.test/manual/en.vtt",
		"https://captions.test/manual/en.srt",
		"https://captions.test/manual/es.vtt",
		"https://captions.test/automatic/en.vtt",
	}, f.calls)
}

func TestSelectAndFetchAllFail(t *testing.T) {
	ts := TrackSet{Manual: []CaptionTrack{track("en", OriginManual, FormatVTT)}}
	f := &fakeFetcher{bodies: map[string]string{}}
	_, err := SelectAndFetch(context.Background(), ts, f, nil)
	require.ErrorIs(t, err, ErrNoTracks)

	var tfe *TrackFetchError
	require.ErrorAs(t, err, &tfe)
	assert.Equal(t, "en", tfe.Language)
	assert.Equal(t, FormatVTT, tfe.Format)
}

func TestSelectAndFetchEmptyParseIsFailure(t *testing.T) {
	ts := TrackSet{Manual: []CaptionTrack{track("en", OriginManual, FormatVTT)}}
	f := &fakeFetcher{bodies: map[string]string{"/manual/en.vtt": "WEBVTT\n"}}
	_, err := SelectAndFetch(context.Background(), ts, f, nil)
	assert.ErrorIs(t, err, ErrNoTracks)
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestSelectAndFetchNoCandidates(t *testing.T) {
	_, err := SelectAndFetch(context.Background(), TrackSet{}, &fakeFetcher{}, nil)
	assert.ErrorIs(t, err, ErrNoTracks)
}

func TestSelectAndFetchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ts := TrackSet{Manual: []CaptionTrack{track("en", OriginManual, FormatVTT)}}
	f := &fakeFetcher{bodies: map[string]string{"/manual/en.vtt": goodVTT}}
	_, err := SelectAndFetch(ctx, ts, f, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.calls)
}

func TestPrefer(t *testing.T) {
	ts := TrackSet{
		Manual: []CaptionTrack{
			track("de", OriginManual, FormatVTT),
			track("en", OriginManual, FormatVTT),
			track("ar", OriginManual, FormatVTT),
		},
		Automatic: []CaptionTrack{track("en", OriginAutomatic, FormatVTT)},
	}
	got := Prefer(ts, []string{"AR", "en"})
	var langs []string
	for _, tr := range got.Manual {
		langs = append(langs, tr.Language)
	}
	assert.Equal(t, []string{"ar", "en", "de"}, langs)
	assert.Equal(t, ts.Automatic, got.Automatic)
	assert.Equal(t, ts, Prefer(ts, nil))
}
