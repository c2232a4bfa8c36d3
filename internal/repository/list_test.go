package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/user/pnmovie/internal/model"
)

func TestNormalizeEntries(t *testing.T) {
	tests := []struct {
		name string
		raw  []interface{}
		want []model.ListEntry
	}{
		{
			name: "composite documents pass through",
			raw: []interface{}{
				primitive.D{{Key: "id", Value: "100001"}, {Key: "source", Value: "local"}},
				primitive.D{{Key: "id", Value: "550"}, {Key: "source", Value: "tmdb"}},
			},
			want: []model.ListEntry{
				{ID: "100001", Source: "local"},
				{ID: "550", Source: "tmdb"},
			},
		},
		{
			name: "legacy bare strings imply local source",
			raw:  []interface{}{"100001", "100002"},
			want: []model.ListEntry{
				{ID: "100001", Source: "local"},
				{ID: "100002", Source: "local"},
			},
		},
		{
			name: "mixed legacy and composite keeps order",
			raw: []interface{}{
				"100001",
				primitive.M{"id": "603", "source": "tmdb"},
			},
			want: []model.ListEntry{
				{ID: "100001", Source: "local"},
				{ID: "603", Source: "tmdb"},
			},
		},
		{
			name: "malformed documents are dropped",
			raw: []interface{}{
				primitive.D{{Key: "id", Value: 42}},
				primitive.D{{Key: "source", Value: "local"}},
			},
			want: []model.ListEntry{},
		},
		{
			name: "nil array normalizes to empty",
			raw:  nil,
			want: []model.ListEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeEntries(tt.raw))
		})
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 3.0, Round1(3.0))
	assert.Equal(t, 3.7, Round1(3.666))
	assert.Equal(t, 4.5, Round1(4.45))
	assert.Equal(t, 0.0, Round1(0))
}
