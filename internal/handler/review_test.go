package handler

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/user/pnmovie/internal/model"
)

func postReview(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &Handler{}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("current_user", &model.User{Username: "an", Role: "user"})
	})
	r.POST("/api/reviews", h.AddReview)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddReviewValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"not json", "not-json", "Thiếu movie_id hoặc rating"},
		{"missing movie_id", `{"rating": 4}`, "Thiếu movie_id hoặc rating"},
		{"missing rating", `{"movie_id": "100001"}`, "Thiếu movie_id hoặc rating"},
		{"non numeric rating", `{"movie_id": "100001", "rating": "tốt"}`, "Rating không hợp lệ"},
		{"nan rating string", `{"movie_id": "100001", "rating": "NaN"}`, "Rating không hợp lệ"},
		{"inf rating string", `{"movie_id": "100001", "rating": "Inf"}`, "Rating không hợp lệ"},
		{"rating above range", `{"movie_id": "100001", "rating": 5.5}`, "Rating phải từ 0 đến 5"},
		{"rating below range", `{"movie_id": "100001", "rating": -1}`, "Rating phải từ 0 đến 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postReview(t, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
		ok   bool
	}{
		{"json number", 4.5, 4.5, true},
		{"numeric string", "3", 3, true},
		{"float string", "4.5", 4.5, true},
		{"word", "năm", 0, false},
		{"nan string", "NaN", 0, false},
		{"inf string", "Inf", 0, false},
		{"negative inf string", "-Inf", 0, false},
		{"nan number", math.NaN(), 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseRating(tt.in)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCoerceID(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"string stays", "100001", "100001"},
		{"json number loses no digits", float64(100001), "100001"},
		{"tmdb id", float64(550), "550"},
		{"nil is empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceID(tt.in))
		})
	}
}
