package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/pnmovie/internal/model"
)

func newTestMovieRepo(t *testing.T) *MovieRepository {
	t.Helper()
	return NewMovieRepository(filepath.Join(t.TempDir(), "movies.json"))
}

func TestMovieRepositoryMaterializesEmptyFile(t *testing.T) {
	repo := newTestMovieRepo(t)

	movies, err := repo.ListAll()
	require.NoError(t, err)
	assert.Empty(t, movies)

	data, err := os.ReadFile(repo.path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestMovieRepositoryCreateAssignsIDs(t *testing.T) {
	repo := newTestMovieRepo(t)

	first := &model.Movie{Title: "Mắt Biếc", Year: 2019}
	require.NoError(t, repo.Create(first))
	assert.Equal(t, 100001, first.ID, "empty catalog starts above the id floor")

	second := &model.Movie{Title: "Bố Già", Year: 2021}
	require.NoError(t, repo.Create(second))
	assert.Equal(t, 100002, second.ID)

	movies, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, movies, 2)
}

func TestMovieRepositoryCreateUsesMaxExistingID(t *testing.T) {
	repo := newTestMovieRepo(t)
	require.NoError(t, repo.Create(&model.Movie{Title: "a"}))
	require.NoError(t, repo.Create(&model.Movie{Title: "b"}))
	require.True(t, mustDelete(t, repo, 100001))

	next := &model.Movie{Title: "c"}
	require.NoError(t, repo.Create(next))
	assert.Equal(t, 100003, next.ID, "ids are max+1, never reused from holes below the max")
}

func TestMovieRepositoryGetByID(t *testing.T) {
	repo := newTestMovieRepo(t)
	created := &model.Movie{Title: "Em và Trịnh", Actors: []string{"Avin Lu"}}
	require.NoError(t, repo.Create(created))

	got, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Em và Trịnh", got.Title)

	missing, err := repo.GetByID(999999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMovieRepositoryUpdateMergesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	repo := NewMovieRepository(path)
	created := &model.Movie{Title: "cũ", Year: 2000, Country: "VN"}
	require.NoError(t, repo.Create(created))

	updated, err := repo.Update(created.ID, func(m *model.Movie) {
		m.Title = "mới"
		m.Year = 2024
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "mới", updated.Title)
	assert.Equal(t, 2024, updated.Year)
	assert.Equal(t, "VN", updated.Country, "untouched fields survive the merge")

	// A fresh repository over the same file sees the rewritten collection.
	reopened := NewMovieRepository(path)
	got, err := reopened.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "mới", got.Title)
}

func TestMovieRepositoryUpdateMissing(t *testing.T) {
	repo := newTestMovieRepo(t)
	updated, err := repo.Update(123, func(m *model.Movie) { m.Title = "x" })
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestMovieRepositoryDelete(t *testing.T) {
	repo := newTestMovieRepo(t)
	created := &model.Movie{Title: "sắp xoá"}
	require.NoError(t, repo.Create(created))

	deleted, err := repo.Delete(created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(created.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "deleting a missing id reports no removal")
}

func mustDelete(t *testing.T, repo *MovieRepository, id int) bool {
	t.Helper()
	deleted, err := repo.Delete(id)
	require.NoError(t, err)
	return deleted
}
