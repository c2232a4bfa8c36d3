package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/user/pnmovie/internal/config"
)

// MaxDiscoverPages caps discover pagination regardless of upstream's true
// page count.
const MaxDiscoverPages = 20

const imageBaseURL = "https://image.tmdb.org/t/p/w500"

const (
	placeholderAvatar = "/images/no-avatar.jpg"
	placeholderPoster = "/images/no-poster.jpg"
)

// TMDBService proxies the third-party movie metadata API, injecting the API
// key on every call. Upstream failures propagate to the caller; there is no
// retry and no circuit breaking.
type TMDBService struct {
	config     *config.Config
	httpClient *http.Client
	cache      *cache.Cache
	group      singleflight.Group
}

func NewTMDBService(cfg *config.Config) *TMDBService {
	return &TMDBService{
		config:     cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache.New(5*time.Minute, 10*time.Minute),
	}
}

// Get forwards a GET to the upstream API and returns the raw body together
// with the upstream status code.
func (s *TMDBService) Get(endpoint string, params url.Values) ([]byte, int, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", s.config.TMDBAPIKey)

	resp, err := s.httpClient.Get(s.config.TMDBBaseURL + endpoint + "?" + params.Encode())
	if err != nil {
		return nil, 0, fmt.Errorf("tmdb request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("tmdb read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// GetCached is Get with a short TTL cache, used for the static reference
// endpoints (genres, languages, countries). Only 200 responses are cached.
func (s *TMDBService) GetCached(endpoint string, params url.Values) ([]byte, int, error) {
	key := endpoint
	if params != nil {
		key += "?" + params.Encode()
	}
	if cached, found := s.cache.Get(key); found {
		return cached.([]byte), http.StatusOK, nil
	}

	body, status, err := s.Get(endpoint, params)
	if err == nil && status == http.StatusOK {
		s.cache.Set(key, body, cache.DefaultExpiration)
	}
	return body, status, err
}

// Discover forwards the filtered discover query. Filters with empty or
// "all" values are dropped, sort_by defaults to popularity, and both the
// requested page and the returned total_pages are clamped to
// MaxDiscoverPages.
func (s *TMDBService) Discover(page int, filters map[string]string) ([]byte, int, error) {
	if page < 1 {
		page = 1
	}
	if page > MaxDiscoverPages {
		page = MaxDiscoverPages
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("release_date.lte", time.Now().Format("2006-01-02"))
	for k, v := range filters {
		if v != "" && v != "all" {
			params.Set(k, v)
		}
	}
	if params.Get("sort_by") == "" {
		params.Set("sort_by", "popularity.desc")
	}

	body, status, err := s.Get("/discover/movie", params)
	if err != nil || status != http.StatusOK {
		return body, status, err
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return body, status, nil
	}
	if tp, ok := data["total_pages"].(float64); ok && int(tp) > MaxDiscoverPages {
		data["total_pages"] = MaxDiscoverPages
		if capped, err := json.Marshal(data); err == nil {
			body = capped
		}
	}
	return body, status, nil
}

// ActorCard is the UI card shape for a person record.
type ActorCard struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ActorMovie is one credit entry of an actor.
type ActorMovie struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	AliasTitle string `json:"aliasTitle"`
	Poster     string `json:"poster"`
	Year       int    `json:"year"`
}

// ActorDetail joins person detail and movie credits into one record.
type ActorDetail struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Avatar    string       `json:"avatar"`
	Gender    string       `json:"gender"`
	Biography string       `json:"biography"`
	Born      *string      `json:"born"`
	AltNames  string       `json:"altNames"`
	Movies    []ActorMovie `json:"movies"`
}

type personResult struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path"`
}

type personPopularResponse struct {
	Results []personResult `json:"results"`
}

// PopularActors returns one page of popular people reshaped into cards.
func (s *TMDBService) PopularActors(page string) ([]ActorCard, int, error) {
	params := url.Values{}
	params.Set("language", "vi-VN")
	if page != "" {
		params.Set("page", page)
	}
	body, status, err := s.Get("/person/popular", params)
	if err != nil {
		return nil, status, err
	}
	if status != http.StatusOK {
		return nil, status, nil
	}

	var raw personPopularResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, status, fmt.Errorf("tmdb parse person/popular: %w", err)
	}

	cards := make([]ActorCard, 0, len(raw.Results))
	for _, p := range raw.Results {
		cards = append(cards, ActorCard{
			ID:     p.ID,
			Name:   p.Name,
			Avatar: avatarURL(p.ProfilePath),
		})
	}
	return cards, status, nil
}

// AllActors merges up to `pages` popular pages and dedupes by id,
// preserving first-seen order. Upstream has no "all persons" endpoint.
// Concurrent identical calls collapse into one upstream fetch.
func (s *TMDBService) AllActors(pages int) ([]ActorCard, error) {
	key := "all-actors:" + strconv.Itoa(pages)
	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		seen := make(map[int]bool)
		unique := []ActorCard{}
		for page := 1; page <= pages; page++ {
			cards, status, err := s.PopularActors(strconv.Itoa(page))
			if err != nil || status != http.StatusOK {
				continue
			}
			for _, a := range cards {
				if !seen[a.ID] {
					unique = append(unique, a)
					seen[a.ID] = true
				}
			}
		}
		return unique, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]ActorCard), nil
}

type personDetailResponse struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	ProfilePath string   `json:"profile_path"`
	Gender      int      `json:"gender"`
	Biography   string   `json:"biography"`
	Birthday    *string  `json:"birthday"`
	AlsoKnownAs []string `json:"also_known_as"`
}

type movieCreditsResponse struct {
	Cast []struct {
		ID            int    `json:"id"`
		Title         string `json:"title"`
		OriginalTitle string `json:"original_title"`
		PosterPath    string `json:"poster_path"`
		ReleaseDate   string `json:"release_date"`
	} `json:"cast"`
}

// ActorDetail joins person detail with movie credits. A non-200 person
// response propagates as (nil, status, nil); a failed credits call yields
// an empty movie list.
func (s *TMDBService) ActorDetail(actorID string) (*ActorDetail, int, error) {
	params := url.Values{}
	params.Set("language", "vi-VN")
	body, status, err := s.Get("/person/"+actorID, params)
	if err != nil {
		return nil, status, err
	}
	if status != http.StatusOK {
		return nil, status, nil
	}

	var person personDetailResponse
	if err := json.Unmarshal(body, &person); err != nil {
		return nil, status, fmt.Errorf("tmdb parse person: %w", err)
	}

	movies := []ActorMovie{}
	creditsParams := url.Values{}
	creditsParams.Set("language", "vi-VN")
	creditsBody, creditsStatus, err := s.Get("/person/"+actorID+"/movie_credits", creditsParams)
	if err == nil && creditsStatus == http.StatusOK {
		var credits movieCreditsResponse
		if err := json.Unmarshal(creditsBody, &credits); err == nil {
			for _, m := range credits.Cast {
				year := 0
				if len(m.ReleaseDate) >= 4 {
					year, _ = strconv.Atoi(m.ReleaseDate[:4])
				}
				poster := placeholderPoster
				if m.PosterPath != "" {
					poster = imageBaseURL + m.PosterPath
				}
				movies = append(movies, ActorMovie{
					ID:         m.ID,
					Title:      m.Title,
					AliasTitle: m.OriginalTitle,
					Poster:     poster,
					Year:       year,
				})
			}
		}
	}

	altNames := person.AlsoKnownAs
	if len(altNames) > 4 {
		altNames = altNames[:4]
	}

	return &ActorDetail{
		ID:        person.ID,
		Name:      person.Name,
		Avatar:    avatarURL(person.ProfilePath),
		Gender:    genderLabel(person.Gender),
		Biography: person.Biography,
		Born:      person.Birthday,
		AltNames:  strings.Join(altNames, ", "),
		Movies:    movies,
	}, status, nil
}

func avatarURL(profilePath string) string {
	if profilePath == "" {
		return placeholderAvatar
	}
	return imageBaseURL + profilePath
}

// genderLabel maps the upstream numeric gender to its localized label.
func genderLabel(gender int) string {
	switch gender {
	case 1:
		return "Nữ"
	case 2:
		return "Nam"
	default:
		return "Khác"
	}
}

