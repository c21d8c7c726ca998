package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cineniche/catalog-service/internal/domain"
	"github.com/cineniche/catalog-service/internal/handler"
	"github.com/cineniche/catalog-service/internal/router"
	"github.com/cineniche/catalog-service/internal/service"
	"github.com/cineniche/catalog-service/internal/session"
)

var testSecret = []byte("test-secret")

type fakeStore struct {
	hybrid map[string]string
	users  map[int64]string
	genres map[int64][]domain.GenreRecommendation
}

func (f *fakeStore) HybridRow(_ context.Context, title string) (string, bool, error) {
	raw, ok := f.hybrid[title]
	return raw, ok, nil
}

func (f *fakeStore) UserRow(_ context.Context, userID int64) (string, bool, error) {
	raw, ok := f.users[userID]
	return raw, ok, nil
}

func (f *fakeStore) GenreRows(_ context.Context, userID int64) ([]domain.GenreRecommendation, error) {
	return f.genres[userID], nil
}

type fakeCatalog struct {
	movies []domain.Movie
}

func (f *fakeCatalog) ListMovies(_ context.Context) ([]domain.Movie, error) {
	return f.movies, nil
}

func (f *fakeCatalog) GetMovie(_ context.Context, showID string) (*domain.Movie, error) {
	for i := range f.movies {
		if f.movies[i].ShowID == showID {
			return &f.movies[i], nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

type fakeRatings struct {
	saved    []domain.Rating
	trending []string
}

func (f *fakeRatings) SaveRating(_ context.Context, rating domain.Rating) error {
	f.saved = append(f.saved, rating)
	return nil
}

func (f *fakeRatings) TrendingShowIDs(_ context.Context, _, _ int) ([]string, error) {
	return f.trending, nil
}

type env struct {
	router   http.Handler
	sessions *session.Memory
	ratings  *fakeRatings
}

func newEnv(store *fakeStore, catalog []domain.Movie, trending []string) *env {
	sessions := session.NewMemory()
	ratings := &fakeRatings{trending: trending}
	h := handler.NewHandler(service.NewService(store), &fakeCatalog{movies: catalog}, ratings, sessions)
	return &env{
		router:   router.Setup(h, testSecret, nil),
		sessions: sessions,
		ratings:  ratings,
	}
}

func token(t *testing.T, sub string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func (e *env) do(t *testing.T, method, target, bearer string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func testCatalog() []domain.Movie {
	return []domain.Movie{
		{ShowID: "s1", Title: "Inception", Director: "Christopher Nolan", ReleaseYear: 2010, Thrillers: 1},
		{ShowID: "s2", Title: "Interstellar", Director: "Christopher Nolan", ReleaseYear: 2014, Dramas: 1},
		{ShowID: "s3", Title: "Memento", Director: "Christopher Nolan", ReleaseYear: 2000, Thrillers: 1},
		{ShowID: "s4", Title: "The Godfather", Director: "Francis Ford Coppola", ReleaseYear: 1972, Dramas: 1},
	}
}

func TestHybridRecommendationsEndpoint(t *testing.T) {
	e := newEnv(&fakeStore{hybrid: map[string]string{
		"Inception": `["Interstellar","Memento"]`,
	}}, testCatalog(), nil)

	w := e.do(t, http.MethodGet, "/recommendations/show?title=Inception", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var recs []string
	if err := json.Unmarshal(w.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(recs) != 2 || recs[0] != "Interstellar" || recs[1] != "Memento" {
		t.Errorf("expected [Interstellar Memento], got %v", recs)
	}
}

func TestHybridRecommendationsMissingTitle(t *testing.T) {
	e := newEnv(&fakeStore{}, nil, nil)
	if w := e.do(t, http.MethodGet, "/recommendations/show?title=%20%20", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank title, got %d", w.Code)
	}
}

func TestHybridRecommendationsNotFound(t *testing.T) {
	e := newEnv(&fakeStore{hybrid: map[string]string{}}, nil, nil)
	if w := e.do(t, http.MethodGet, "/recommendations/show?title=Nothing", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on miss, got %d", w.Code)
	}
}

func TestUserRecommendationsAccessControl(t *testing.T) {
	e := newEnv(&fakeStore{users: map[int64]string{
		5: `["s1","s2"]`,
	}}, testCatalog(), nil)

	if w := e.do(t, http.MethodGet, "/recommendations/user/5", token(t, "5"), nil); w.Code != http.StatusOK {
		t.Errorf("own identity: expected 200, got %d", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/recommendations/user/5", token(t, "6"), nil); w.Code != http.StatusForbidden {
		t.Errorf("other identity: expected 403, got %d", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/recommendations/user/5", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %d", w.Code)
	}
}

func TestUserRecommendationsEmptyIs404(t *testing.T) {
	e := newEnv(&fakeStore{users: map[int64]string{}}, nil, nil)
	if w := e.do(t, http.MethodGet, "/recommendations/user/5", token(t, "5"), nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for user with no entry, got %d", w.Code)
	}
}

func TestUserRecommendationsInvalidID(t *testing.T) {
	e := newEnv(&fakeStore{}, nil, nil)
	if w := e.do(t, http.MethodGet, "/recommendations/user/abc", token(t, "5"), nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestGenreRecommendationsDoubleEncoding(t *testing.T) {
	e := newEnv(&fakeStore{genres: map[int64][]domain.GenreRecommendation{
		5: {{UserID: 5, Genre: "Thriller", Recommendations: `["s1","s3"]`}},
	}}, nil, nil)

	w := e.do(t, http.MethodGet, "/recommendations/genre/5", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var rows []domain.GenreRecommendation
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	// The field arrives as a JSON string needing a second decode.
	ids, err := service.DecodeList(rows[0].Recommendations)
	if err != nil {
		t.Fatalf("second decode failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "s1" || ids[1] != "s3" {
		t.Errorf("expected [s1 s3], got %v", ids)
	}
}

func TestGetMovie(t *testing.T) {
	e := newEnv(&fakeStore{}, testCatalog(), nil)

	if w := e.do(t, http.MethodGet, "/movies/s1", "", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/movies/nope", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestMoviesByGenre(t *testing.T) {
	e := newEnv(&fakeStore{}, testCatalog(), nil)

	w := e.do(t, http.MethodGet, "/movies/genre/Thriller", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var movies []domain.Movie
	if err := json.Unmarshal(w.Body.Bytes(), &movies); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(movies) != 2 {
		t.Errorf("expected 2 thrillers, got %d", len(movies))
	}

	if w := e.do(t, http.MethodGet, "/movies/genre/Westerns", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown genre, got %d", w.Code)
	}
}

func TestRelatedMovies(t *testing.T) {
	e := newEnv(&fakeStore{hybrid: map[string]string{
		"Inception": `["Interstellar","Memento","Not In Catalog"]`,
	}}, testCatalog(), nil)

	w := e.do(t, http.MethodGet, "/movies/s1/related", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var movies []domain.Movie
	if err := json.Unmarshal(w.Body.Bytes(), &movies); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(movies) != 2 || movies[0].ShowID != "s2" || movies[1].ShowID != "s3" {
		t.Errorf("expected resolved [s2 s3] with the unmatched title dropped, got %v", movies)
	}
}

func TestSearchFuzzyFlag(t *testing.T) {
	e := newEnv(&fakeStore{}, testCatalog(), nil)

	w := e.do(t, http.MethodGet, "/search?q=Gotfather", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp handler.SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !resp.Fuzzy {
		t.Error("expected fuzzy flag for typo query")
	}
	found := false
	for _, m := range resp.Results {
		if m.Title == "The Godfather" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected The Godfather among suggestions, got %v", resp.Results)
	}

	w = e.do(t, http.MethodGet, "/search?q=nolan", "", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Fuzzy {
		t.Error("exact matches must not be flagged fuzzy")
	}
	if resp.Total != 3 {
		t.Errorf("expected 3 Nolan films, got %d", resp.Total)
	}
}

func TestSearchMissingQuery(t *testing.T) {
	e := newEnv(&fakeStore{}, nil, nil)
	if w := e.do(t, http.MethodGet, "/search", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without q, got %d", w.Code)
	}
}

func TestBrowseHomeOmitsPersonalizedRowWithoutEntry(t *testing.T) {
	// User 42 has no stored personalized entry and no genre entries: the
	// personalized row is absent entirely while public rows render.
	e := newEnv(&fakeStore{users: map[int64]string{}}, testCatalog(), []string{"s4", "s1"})

	w := e.do(t, http.MethodGet, "/browse/home", token(t, "42"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp handler.BrowseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	titles := make(map[string]domain.BrowseRow)
	for _, row := range resp.Rows {
		titles[row.Title] = row
	}
	if _, ok := titles["Recommended for You"]; ok {
		t.Error("personalized row must be omitted, not rendered empty")
	}
	if _, ok := titles["Trending Now"]; !ok {
		t.Error("expected trending row to render")
	}
	if _, ok := titles["Browse the Catalog"]; !ok {
		t.Error("expected catalog row to render")
	}
}

func TestBrowseHomePersonalizedRowKeepsStoredOrder(t *testing.T) {
	e := newEnv(&fakeStore{users: map[int64]string{
		7: `["s3","s1","s2"]`,
	}}, testCatalog(), nil)

	w := e.do(t, http.MethodGet, "/browse/home", token(t, "7"), nil)
	var resp handler.BrowseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp.Rows) == 0 || resp.Rows[0].Title != "Recommended for You" {
		t.Fatalf("expected personalized row first, got %v", resp.Rows)
	}
	got := resp.Rows[0].Movies
	if len(got) != 3 || got[0].ShowID != "s3" || got[1].ShowID != "s1" || got[2].ShowID != "s2" {
		t.Errorf("personalized row must preserve stored order, got %v", got)
	}
}

func TestBrowseHomeStableAcrossRenders(t *testing.T) {
	e := newEnv(&fakeStore{}, testCatalog(), nil)

	first := e.do(t, http.MethodGet, "/browse/home", "", nil)
	sid := first.Header().Get(handler.HeaderSessionID)
	if sid == "" {
		t.Fatal("expected a minted session id")
	}

	var resp1 handler.BrowseResponse
	if err := json.Unmarshal(first.Body.Bytes(), &resp1); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/browse/home", nil)
	req.Header.Set(handler.HeaderSessionID, sid)
	second := httptest.NewRecorder()
	e.router.ServeHTTP(second, req)

	var resp2 handler.BrowseResponse
	if err := json.Unmarshal(second.Body.Bytes(), &resp2); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if len(resp1.Rows) != len(resp2.Rows) {
		t.Fatalf("row count changed between renders")
	}
	for i := range resp1.Rows {
		a, b := resp1.Rows[i].Movies, resp2.Rows[i].Movies
		if len(a) != len(b) {
			t.Fatalf("row %q length changed", resp1.Rows[i].Title)
		}
		for j := range a {
			if a[j].ShowID != b[j].ShowID {
				t.Errorf("row %q reshuffled between renders at %d", resp1.Rows[i].Title, j)
			}
		}
	}
}

func TestBrowseHomeEmptyCatalog(t *testing.T) {
	e := newEnv(&fakeStore{}, nil, nil)

	w := e.do(t, http.MethodGet, "/browse/home", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("empty catalog must not crash, got %d", w.Code)
	}
	var resp handler.BrowseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp.Rows) != 0 {
		t.Errorf("expected no rows for empty catalog, got %d", len(resp.Rows))
	}
}

func TestPostRating(t *testing.T) {
	e := newEnv(&fakeStore{}, testCatalog(), nil)
	body := []byte(`{"user_id": 7, "show_id": "s1", "rating": 5}`)

	w := e.do(t, http.MethodPost, "/ratings", token(t, "7"), body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(e.ratings.saved) != 1 || e.ratings.saved[0].ShowID != "s1" {
		t.Errorf("expected rating persisted, got %v", e.ratings.saved)
	}

	sid := w.Header().Get(handler.HeaderSessionID)
	recent, err := e.sessions.RecentlyRated(context.Background(), sid)
	if err != nil {
		t.Fatalf("read recently rated: %v", err)
	}
	if len(recent) != 1 || recent[0] != "s1" {
		t.Errorf("expected s1 in session history, got %v", recent)
	}
}

func TestPostRatingAccessControl(t *testing.T) {
	e := newEnv(&fakeStore{}, testCatalog(), nil)
	body := []byte(`{"user_id": 7, "show_id": "s1", "rating": 5}`)

	if w := e.do(t, http.MethodPost, "/ratings", token(t, "8"), body); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 rating as another user, got %d", w.Code)
	}
	if w := e.do(t, http.MethodPost, "/ratings", "", body); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 rating anonymously, got %d", w.Code)
	}
}

func TestPostRatingValidation(t *testing.T) {
	e := newEnv(&fakeStore{}, testCatalog(), nil)

	for _, body := range []string{
		`{"user_id": 7, "show_id": "s1", "rating": 6}`,
		`{"user_id": 7, "show_id": "", "rating": 3}`,
		`{"user_id": 0, "show_id": "s1", "rating": 3}`,
		`not json`,
	} {
		if w := e.do(t, http.MethodPost, "/ratings", token(t, "7"), []byte(body)); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for %s, got %d", body, w.Code)
		}
	}
}
