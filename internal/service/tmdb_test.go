package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/pnmovie/internal/config"
)

func newTestTMDB(t *testing.T, upstream http.HandlerFunc) *TMDBService {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	return NewTMDBService(&config.Config{
		TMDBAPIKey:  "test-key",
		TMDBBaseURL: srv.URL,
	})
}

func TestGetInjectsAPIKey(t *testing.T) {
	var gotKey string
	s := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		w.Write([]byte(`{"ok":true}`))
	})

	body, status, err := s.Get("/movie/popular", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "test-key", gotKey)
}

func TestGetPassesThroughUpstreamStatus(t *testing.T) {
	s := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_message":"not found"}`))
	})

	body, status, err := s.Get("/movie/0", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(body), "not found")
}

func TestDiscoverClampsPageAndTotalPages(t *testing.T) {
	var gotPage string
	s := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"page":          20,
			"total_pages":   500,
			"total_results": 10000,
			"results":       []interface{}{},
		})
	})

	body, status, err := s.Discover(999, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "20", gotPage, "requested page is clamped before the upstream call")

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, float64(MaxDiscoverPages), resp["total_pages"], "returned total_pages is capped")
}

func TestDiscoverDropsEmptyAndSentinelFilters(t *testing.T) {
	var got url.Values
	s := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"total_pages":1}`))
	})

	_, _, err := s.Discover(1, map[string]string{
		"with_genres":            "28",
		"region":                 "",
		"with_origin_country":    "all",
		"with_original_language": "vi",
	})
	require.NoError(t, err)

	assert.Equal(t, "28", got.Get("with_genres"))
	assert.Equal(t, "vi", got.Get("with_original_language"))
	assert.False(t, got.Has("region"), "empty filters are dropped")
	assert.False(t, got.Has("with_origin_country"), `"all" is a sentinel for no filter`)
	assert.Equal(t, "popularity.desc", got.Get("sort_by"), "sort defaults when unset")
	assert.NotEmpty(t, got.Get("release_date.lte"))
}

func TestDiscoverKeepsExplicitSort(t *testing.T) {
	var got url.Values
	s := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"total_pages":1}`))
	})

	_, _, err := s.Discover(1, map[string]string{"sort_by": "vote_average.desc"})
	require.NoError(t, err)
	assert.Equal(t, "vote_average.desc", got.Get("sort_by"))
}

func TestPopularActorsReshapesCards(t *testing.T) {
	s := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[
			{"id":1,"name":"Ngô Thanh Vân","profile_path":"/ntv.jpg"},
			{"id":2,"name":"Trấn Thành","profile_path":null}
		]}`))
	})

	cards, status, err := s.PopularActors("1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, cards, 2)
	assert.Equal(t, ActorCard{ID: 1, Name: "Ngô Thanh Vân", Avatar: imageBaseURL + "/ntv.jpg"}, cards[0])
	assert.Equal(t, placeholderAvatar, cards[1].Avatar, "null profile path falls back to the placeholder")
}

func TestAllActorsMergesAndDedupes(t *testing.T) {
	var calls int32
	s := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		switch r.URL.Query().Get("page") {
		case "1":
			w.Write([]byte(`{"results":[{"id":1,"name":"A","profile_path":null},{"id":2,"name":"B","profile_path":null}]}`))
		case "2":
			w.Write([]byte(`{"results":[{"id":2,"name":"B","profile_path":null},{"id":3,"name":"C","profile_path":null}]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	cards, err := s.AllActors(3)
	require.NoError(t, err)
	require.Len(t, cards, 3, "duplicates across pages are removed, failed pages skipped")
	assert.Equal(t, []int{1, 2, 3}, []int{cards[0].ID, cards[1].ID, cards[2].ID}, "first-seen order is preserved")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestActorDetailJoinsPersonAndCredits(t *testing.T) {
	s := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/person/99":
			w.Write([]byte(`{
				"id":99,"name":"Song Hye-kyo","profile_path":null,"gender":1,
				"biography":"bio","birthday":"1981-11-22",
				"also_known_as":["a","b","c","d","e","f"]
			}`))
		case "/person/99/movie_credits":
			w.Write([]byte(`{"cast":[
				{"id":7,"title":"Phim A","original_title":"A","poster_path":"/a.jpg","release_date":"2019-05-01"},
				{"id":8,"title":"Phim B","original_title":"B","poster_path":null,"release_date":""}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	detail, status, err := s.ActorDetail("99")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, detail)

	assert.Equal(t, "Nữ", detail.Gender)
	assert.Equal(t, placeholderAvatar, detail.Avatar)
	assert.Equal(t, "a, b, c, d", detail.AltNames, "alternate names truncate to four")
	require.NotNil(t, detail.Born)
	assert.Equal(t, "1981-11-22", *detail.Born)

	require.Len(t, detail.Movies, 2)
	assert.Equal(t, ActorMovie{ID: 7, Title: "Phim A", AliasTitle: "A", Poster: imageBaseURL + "/a.jpg", Year: 2019}, detail.Movies[0])
	assert.Equal(t, placeholderPoster, detail.Movies[1].Poster)
	assert.Equal(t, 0, detail.Movies[1].Year, "missing release date yields year zero")
}

func TestActorDetailPropagatesUpstreamStatus(t *testing.T) {
	s := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{}`))
	})

	detail, status, err := s.ActorDetail("0")
	require.NoError(t, err)
	assert.Nil(t, detail)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGenderLabel(t *testing.T) {
	assert.Equal(t, "Nữ", genderLabel(1))
	assert.Equal(t, "Nam", genderLabel(2))
	assert.Equal(t, "Khác", genderLabel(0))
	assert.Equal(t, "Khác", genderLabel(3))
}

func TestGetCachedServesFromCache(t *testing.T) {
	var calls int32
	s := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"genres":[]}`))
	})

	for i := 0; i < 3; i++ {
		_, status, err := s.GetCached("/genre/movie/list", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "repeat calls are served from cache")
}
