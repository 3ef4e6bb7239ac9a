package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/octobees/faculty-hub/api/internal/config"
	"github.com/octobees/faculty-hub/api/internal/entity"
	"github.com/octobees/faculty-hub/api/internal/logger"
)

const linkedinPage = `<html><body>
<img src="/logo.png">
<img class="pv-top-card__Profile-Photo" src="https://cdn.example.com/ada.jpg">
<h2 class="top-card-layout__headline">Fallback heading</h2>
<div class="text-body-medium Headline">
   Professor of   Mathematics
</div>
</body></html>`

const linkedinFallbackPage = `<html><body>
<img src="/logo.png">
<img alt="Ada Lovelace" src="https://cdn.example.com/alt.jpg">
<h2 class="top-card-layout__headline">Analytical Engine enthusiast</h2>
</body></html>`

const scholarPage = `<html><body><table>
<tr class="gsc_a_tr"><td><a class="gsc_a_at">Notes on the Engine</a><div class="gs_gray">A Lovelace</div><div class="gs_gray">Journal</div></td><td><span class="gsc_a_h">1843</span></td></tr>
<tr class="gsc_a_tr"><td><div class="gs_gray">No title here</div></td></tr>
<tr class="gsc_a_tr"><td><a class="gsc_a_at">Second</a></td></tr>
<tr class="gsc_a_tr"><td><a class="gsc_a_at">Third</a></td></tr>
<tr class="gsc_a_tr"><td><a class="gsc_a_at">Fourth</a></td></tr>
<tr class="gsc_a_tr"><td><a class="gsc_a_at">Sixth row is beyond the cap</a></td></tr>
</table></body></html>`

func newServer(t *testing.T, pages map[string]string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("expected user agent header")
		}
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestClient() *PageClient {
	return NewPageClient(2*time.Second, config.RateLimitConfig{})
}

func ptr(value string) *string {
	return &value
}

func TestLinkedInStrategy(t *testing.T) {
	srv, _ := newServer(t, map[string]string{"/in/ada": linkedinPage, "/in/alt": linkedinFallbackPage})
	strategy := NewLinkedInStrategy(newTestClient(), logger.Nop())

	result := strategy.Fetch(context.Background(), srv.URL+"/in/ada")
	if result.ProfilePictureURL == nil || *result.ProfilePictureURL != "https://cdn.example.com/ada.jpg" {
		t.Fatalf("unexpected picture: %v", result.ProfilePictureURL)
	}
	if result.Headline == nil || *result.Headline != "Professor of Mathematics" {
		t.Fatalf("unexpected headline: %v", result.Headline)
	}

	result = strategy.Fetch(context.Background(), srv.URL+"/in/alt")
	if result.ProfilePictureURL == nil || *result.ProfilePictureURL != "https://cdn.example.com/alt.jpg" {
		t.Fatalf("expected alt fallback, got %v", result.ProfilePictureURL)
	}
	if result.Headline == nil || *result.Headline != "Analytical Engine enthusiast" {
		t.Fatalf("expected top-card fallback, got %v", result.Headline)
	}
}

func TestLinkedInStrategy_Failures(t *testing.T) {
	srv, _ := newServer(t, map[string]string{})
	strategy := NewLinkedInStrategy(newTestClient(), logger.Nop())

	for name, url := range map[string]string{
		"not found":    srv.URL + "/missing",
		"bad scheme":   "ftp://example.com/in/ada",
		"unreachable":  "http://127.0.0.1:1/in/ada",
		"not absolute": "linkedin.com/in/ada",
	} {
		t.Run(name, func(t *testing.T) {
			result := strategy.Fetch(context.Background(), url)
			if result.ProfilePictureURL != nil || result.Headline != nil {
				t.Fatalf("expected empty scalars, got %+v", result)
			}
			if result.Experience == nil || result.Publications == nil {
				t.Fatalf("expected initialised lists")
			}
		})
	}
}

func TestScholarStrategy(t *testing.T) {
	srv, _ := newServer(t, map[string]string{"/citations": scholarPage})
	strategy := NewScholarStrategy(newTestClient(), logger.Nop())

	result := strategy.Fetch(context.Background(), srv.URL+"/citations")
	if len(result.Publications) != 4 {
		t.Fatalf("expected 4 titled publications among the first 5 rows, got %d: %+v", len(result.Publications), result.Publications)
	}
	first := result.Publications[0]
	if first.Title != "Notes on the Engine" {
		t.Fatalf("unexpected title: %s", first.Title)
	}
	if first.Authors == nil || *first.Authors != "A Lovelace" {
		t.Fatalf("unexpected authors: %v", first.Authors)
	}
	if first.Year == nil || *first.Year != "1843" {
		t.Fatalf("unexpected year: %v", first.Year)
	}
	if first.Citation != nil {
		t.Fatalf("expected citation to stay empty")
	}
	for _, pub := range result.Publications {
		if pub.Title == "Sixth row is beyond the cap" {
			t.Fatalf("expected rows past the cap to be ignored")
		}
	}
}

type recordingStrategy struct {
	name   string
	result Result
	delay  time.Duration
	mu     sync.Mutex
	urls   []string
	panics bool
}

func (s *recordingStrategy) Name() string { return s.name }

func (s *recordingStrategy) Fetch(ctx context.Context, url string) Result {
	s.mu.Lock()
	s.urls = append(s.urls, url)
	s.mu.Unlock()
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.panics {
		panic(errors.New("selector exploded"))
	}
	return s.result
}

func TestProfileFetcher_NoURLs(t *testing.T) {
	linkedin := &recordingStrategy{name: "linkedin"}
	scholar := &recordingStrategy{name: "scholar"}
	fetcher := NewProfileFetcherWithStrategies(linkedin, scholar, logger.Nop())

	result := fetcher.Fetch(context.Background(), nil, ptr("   "))
	if len(linkedin.urls) != 0 || len(scholar.urls) != 0 {
		t.Fatalf("expected no fetches, got %v %v", linkedin.urls, scholar.urls)
	}
	if result.ProfilePictureURL != nil || result.Headline != nil {
		t.Fatalf("expected nil scalars, got %+v", result)
	}
	if result.Experience == nil || result.Certifications == nil || result.Projects == nil || result.Publications == nil {
		t.Fatalf("expected initialised lists, got %+v", result)
	}
}

func TestProfileFetcher_NoNetworkWithoutURLs(t *testing.T) {
	_, hits := newServer(t, map[string]string{"/": linkedinPage})
	fetcher := NewProfileFetcher(newTestClient(), logger.Nop())

	fetcher.Fetch(context.Background(), nil, nil)
	if atomic.LoadInt32(hits) != 0 {
		t.Fatalf("expected no network calls")
	}
}

func TestProfileFetcher_Combines(t *testing.T) {
	linkedin := &recordingStrategy{name: "linkedin", delay: 50 * time.Millisecond, result: Result{
		ProfilePictureURL: ptr("https://cdn.example.com/ada.jpg"),
		Headline:          ptr("Professor"),
	}}
	scholar := &recordingStrategy{name: "scholar", delay: 50 * time.Millisecond, result: Result{
		Headline:     ptr("ignored"),
		Publications: []entity.Publication{{Title: "Notes"}},
	}}
	fetcher := NewProfileFetcherWithStrategies(linkedin, scholar, logger.Nop())

	start := time.Now()
	result := fetcher.Fetch(context.Background(), ptr(" https://linkedin.example/in/ada "), ptr("https://scholar.example/citations"))
	elapsed := time.Since(start)

	if elapsed >= 100*time.Millisecond {
		t.Fatalf("expected sources fetched concurrently, took %s", elapsed)
	}
	if len(linkedin.urls) != 1 || linkedin.urls[0] != "https://linkedin.example/in/ada" {
		t.Fatalf("unexpected linkedin urls: %v", linkedin.urls)
	}
	if result.Headline == nil || *result.Headline != "Professor" {
		t.Fatalf("unexpected headline: %v", result.Headline)
	}
	if len(result.Publications) != 1 || result.Publications[0].Title != "Notes" {
		t.Fatalf("unexpected publications: %+v", result.Publications)
	}
	if result.Experience == nil {
		t.Fatalf("expected nil lists from strategies to be normalised")
	}
}

func TestProfileFetcher_ContainsPanics(t *testing.T) {
	linkedin := &recordingStrategy{name: "linkedin", panics: true}
	scholar := &recordingStrategy{name: "scholar", result: EmptyResult()}
	fetcher := NewProfileFetcherWithStrategies(linkedin, scholar, logger.Nop())

	result := fetcher.Fetch(context.Background(), ptr("https://linkedin.example/in/ada"), ptr("https://scholar.example/c"))
	if result.Headline != nil || result.Publications == nil {
		t.Fatalf("expected empty result after panic, got %+v", result)
	}
}

func TestPageClient_RateLimitHonoursContext(t *testing.T) {
	srv, hits := newServer(t, map[string]string{"/": linkedinPage})
	client := NewPageClient(time.Second, config.RateLimitConfig{Requests: 1, Interval: time.Hour})

	if _, err := client.Document(context.Background(), srv.URL+"/"); err != nil {
		t.Fatalf("first fetch should pass: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := client.Document(ctx, srv.URL+"/"); err == nil {
		t.Fatalf("expected throttled fetch to fail once the context expires")
	}
	if atomic.LoadInt32(hits) != 1 {
		t.Fatalf("expected exactly one request to reach the server, got %d", *hits)
	}
}

func TestValidateURL(t *testing.T) {
	if _, err := validateURL("https://scholar.google.com/citations?user=abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, raw := range []string{"", "   ", "mailto:ada@example.com", "https://", "://bad"} {
		if _, err := validateURL(raw); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("expected ErrInvalidURL for %q, got %v", raw, err)
		}
	}
	if !strings.HasPrefix(browserUserAgent, "Mozilla/5.0") {
		t.Fatalf("expected browser user agent")
	}
}
