package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/user/pnmovie/internal/model"
)

// MovieRepository persists the curated catalog as one JSON array file. The
// whole file is read before every operation and rewritten after every
// mutation; a mutex serializes writers so concurrent admin edits cannot
// lose updates.
type MovieRepository struct {
	path string
	mu   sync.Mutex
}

func NewMovieRepository(path string) *MovieRepository {
	return &MovieRepository{path: path}
}

// load reads the full catalog, materializing an empty file when missing.
func (r *MovieRepository) load() ([]model.Movie, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		if err := os.WriteFile(r.path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("create movies file: %w", err)
		}
		return []model.Movie{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read movies file: %w", err)
	}

	var movies []model.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("parse movies file: %w", err)
	}
	return movies, nil
}

// save overwrites the catalog file with the full collection.
func (r *MovieRepository) save(movies []model.Movie) error {
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write movies file: %w", err)
	}
	return nil
}

// ListAll returns the full catalog.
func (r *MovieRepository) ListAll() ([]model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// GetByID returns the first movie with the given id, or nil when absent.
func (r *MovieRepository) GetByID(id int) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	movies, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range movies {
		if movies[i].ID == id {
			return &movies[i], nil
		}
	}
	return nil, nil
}

// Create appends the movie, assigning id = max(existing ids, 100000) + 1.
func (r *MovieRepository) Create(movie *model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	movies, err := r.load()
	if err != nil {
		return err
	}

	maxID := 100000
	for _, m := range movies {
		if m.ID > maxID {
			maxID = m.ID
		}
	}
	movie.ID = maxID + 1

	movies = append(movies, *movie)
	return r.save(movies)
}

// Update applies a partial merge to the movie with the given id and
// rewrites the file. Returns the updated movie, or nil when absent.
func (r *MovieRepository) Update(id int, apply func(*model.Movie)) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	movies, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range movies {
		if movies[i].ID == id {
			apply(&movies[i])
			if err := r.save(movies); err != nil {
				return nil, err
			}
			return &movies[i], nil
		}
	}
	return nil, nil
}

// Delete removes the first movie with the given id. Reports whether a
// movie was removed.
func (r *MovieRepository) Delete(id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	movies, err := r.load()
	if err != nil {
		return false, err
	}
	for i := range movies {
		if movies[i].ID == id {
			movies = append(movies[:i], movies[i+1:]...)
			if err := r.save(movies); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
