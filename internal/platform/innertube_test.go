package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

const playerJSON = `{
 "playabilityStatus":{"status":"OK"},
 "videoDetails":{"videoId":"abc","title":"A {braced} \"title\"","author":"Chan","lengthSeconds":"125","viewCount":"9876","shortDescription":"hello"},
 "microformat":{"playerMicroformatRenderer":{"uploadDate":"2021-03-04T05:06:07-08:00"}},
 "captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[
  {"baseUrl":"https://www.youtube.com/api/timedtext?v=abc&lang=en","languageCode":"en"},
  {"baseUrl":"https://www.youtube.com/api/timedtext?v=abc&lang=en&name=dup","languageCode":"en"},
  {"baseUrl":"https://www.youtube.com/api/timedtext?v=abc&lang=de&exp=xpe","languageCode":"de"},
  {"baseUrl":"https://www.youtube.com/api/timedtext?v=abc&lang=en&kind=asr","languageCode":"en","kind":"asr"}
 ]}}}`

func TestInnertubePlayer(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "3", r.Header.Get("X-Youtube-Client-Name"))
		var req innertubeReq
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "abc", req.VideoID)
		assert.Equal(t, "ANDROID", req.Context.Client.ClientName)
		fmt.Fprint(w, playerJSON)
	}))
	defer srv.Close()

	c := &Innertube{Opts: Options{IncludeAutomatic: true}, PlayerURL: srv.URL}

	ts, err := c.Tracks(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, ts.Manual, 1, "duplicate and PoToken tracks are dropped")
	require.Len(t, ts.Automatic, 1)

	en := ts.Manual[0]
	assert.Equal(t, "en", en.Language)
	require.Len(t, en.Encodings, 2)
	assert.Equal(t, transcript.FormatVTT, en.Encodings[0].Format)
	u, err := url.Parse(en.Encodings[0].URL)
	require.NoError(t, err)
	assert.Equal(t, "vtt", u.Query().Get("fmt"))
	assert.Equal(t, "en", u.Query().Get("lang"))
	assert.Equal(t, transcript.FormatTTML, en.Encodings[1].Format)

	meta, err := c.Metadata(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, `A {braced} "title"`, meta.Title)
	assert.Equal(t, "Chan", meta.Uploader)
	assert.Equal(t, 125, meta.DurationSeconds)
	assert.Equal(t, int64(9876), meta.ViewCount)
	assert.Equal(t, "20210304", meta.UploadDate)
	assert.Equal(t, int32(2), hits.Load(), "no cache configured, one request per query")
}

func TestInnertubeWatchPageFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/player", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", r.URL.Query().Get("v"))
		fmt.Fprintf(w, "<html><script>var ytInitialPlayerResponse = %s;var other = {};</script></html>", playerJSON)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := &Innertube{PlayerURL: srv.URL + "/player", WatchURL: srv.URL + "/watch"}
	ts, err := c.Tracks(context.Background(), "abc")
	require.NoError(t, err)
	assert.Len(t, ts.Manual, 1)
	assert.Empty(t, ts.Automatic, "automatic tracks excluded by default")
}

func TestInnertubeBothFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := &Innertube{PlayerURL: srv.URL, WatchURL: srv.URL}
	_, err := c.Tracks(context.Background(), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestInnertubeNoCaptions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/player", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"playabilityStatus":{"status":"LOGIN_REQUIRED","reason":"Sign in to confirm you're not a bot"}}`)
	})
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>consent page</html>")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := &Innertube{PlayerURL: srv.URL + "/player", WatchURL: srv.URL + "/watch"}
	ts, err := c.Tracks(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, ts.Empty())

	_, err = c.Metadata(context.Background(), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a bot")
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1};rest`, `{"a":1}`},
		{`{"a":"}"}tail`, `{"a":"}"}`},
		{`{"a":"\\"}x`, `{"a":"\\"}`},
		{`{"a":"\"}"}x`, `{"a":"\"}"}`},
		{`{"a":{"b":{}}}}`, `{"a":{"b":{}}}`},
		{`[1]`, ``},
		{`{"open":`, ``},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(extractJSON([]byte(tt.in))), tt.in)
	}
}

func TestCompactDate(t *testing.T) {
	assert.Equal(t, "20091024", compactDate("2009-10-24"))
	assert.Equal(t, "20210304", compactDate("2021-03-04T05:06:07-08:00"))
	assert.Empty(t, compactDate("2021"))
}
