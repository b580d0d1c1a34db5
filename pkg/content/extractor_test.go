package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>Transit Plan Approved</title></head>
<body>
<header><nav>Home | News | About</nav></header>
<article>
<h1>Transit Plan Approved</h1>
<p>After months of public hearings the city council voted to approve the transit
expansion plan in a late-night session on Tuesday.</p>
<p>The first new line is expected to open within three years and will connect the
northern districts with the city center, officials said.</p>
<p>Construction contracts are expected to be awarded before the end of the year,
with preparatory work starting next spring.</p>
</article>
<footer>Copyright Example News</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(testPage))
	}))
	defer ts.Close()

	e := NewExtractor(5*time.Second, "")
	result, err := e.Extract(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Contains(t, result.Text, "transit")
	assert.Contains(t, result.Text, "northern districts")
	assert.NotContains(t, result.Text, "Copyright")
}

func TestExtractor_InvalidURL(t *testing.T) {
	e := NewExtractor(time.Second, "")

	_, err := e.Extract(context.Background(), "not-a-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid URL")

	_, err = e.Extract(context.Background(), "://bad")
	require.Error(t, err)
}

func TestExtractor_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	e := NewExtractor(time.Second, "")
	_, err := e.Extract(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code 404")
}

func TestExtractor_SendsUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(testPage))
	}))
	defer ts.Close()

	e := NewExtractor(5*time.Second, "newsbyte-test/1.0")
	_, err := e.Extract(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "newsbyte-test/1.0", gotUA)
}
