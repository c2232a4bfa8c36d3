package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/pnmovie/internal/middleware"
	"github.com/user/pnmovie/internal/model"
	"github.com/user/pnmovie/internal/utils"
)

// ListMovies returns the whole curated catalog.
func (h *Handler) ListMovies(c *gin.Context) {
	movies, err := h.Repos.Movie.ListAll()
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Không đọc được danh sách phim!")
		return
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	utils.Success(c, http.StatusOK, gin.H{"movies": movies})
}

// GetMovie returns one movie by id.
func (h *Handler) GetMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Không tìm thấy phim!")
		return
	}
	movie, err := h.Repos.Movie.GetByID(id)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Không đọc được danh sách phim!")
		return
	}
	if movie == nil {
		utils.Fail(c, http.StatusNotFound, "Không tìm thấy phim!")
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"movie": movie})
}

// CreateMovie adds a catalog entry with optional media uploads. Admin only.
func (h *Handler) CreateMovie(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	movieType := c.DefaultPostForm("type", "single")
	yearStr := c.PostForm("year")
	country := c.PostForm("country")
	genre := c.PostForm("genre")
	actors := c.PostForm("actors")
	trailerLink := c.PostForm("trailer")

	if title == "" || description == "" || yearStr == "" || country == "" || genre == "" {
		utils.Fail(c, http.StatusBadRequest, "Thiếu thông tin phim!")
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Thiếu thông tin phim!")
		return
	}

	// Each file field is validated and saved independently; a failure aborts
	// the request but files already saved for earlier fields stay on disk.
	posterPath := ""
	if file, err := c.FormFile("poster"); err == nil {
		if !utils.AllowedImage(file.Filename) {
			utils.Fail(c, http.StatusBadRequest, "File poster không hợp lệ!")
			return
		}
		if posterPath, err = utils.SaveUpload(c, file, h.Config.UploadDir, "posters"); err != nil {
			utils.Fail(c, http.StatusInternalServerError, "Không lưu được file poster!")
			return
		}
	}

	trailerFilePath := ""
	if file, err := c.FormFile("trailer_file"); err == nil {
		if !utils.AllowedVideo(file.Filename) {
			utils.Fail(c, http.StatusBadRequest, "File trailer không hợp lệ!")
			return
		}
		if trailerFilePath, err = utils.SaveUpload(c, file, h.Config.UploadDir, "trailers"); err != nil {
			utils.Fail(c, http.StatusInternalServerError, "Không lưu được file trailer!")
			return
		}
	}

	videoPath := ""
	if file, err := c.FormFile("video"); err == nil {
		if !utils.AllowedVideo(file.Filename) {
			utils.Fail(c, http.StatusBadRequest, "File video không hợp lệ!")
			return
		}
		if videoPath, err = utils.SaveUpload(c, file, h.Config.UploadDir, "videos"); err != nil {
			utils.Fail(c, http.StatusInternalServerError, "Không lưu được file video!")
			return
		}
	}

	// Invalid gallery entries are skipped, not rejected.
	galleryPaths := []string{}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["gallery"]
		if len(files) == 0 {
			files = form.File["gallery[]"]
		}
		for _, file := range files {
			if !utils.AllowedImage(file.Filename) {
				continue
			}
			if p, err := utils.SaveUpload(c, file, h.Config.UploadDir, "posters"); err == nil {
				galleryPaths = append(galleryPaths, p)
			}
		}
	}

	trailer := trailerFilePath
	if trailer == "" {
		trailer = trailerLink
	}

	movie := &model.Movie{
		Title:       title,
		Description: description,
		Year:        year,
		Country:     country,
		Genre:       genre,
		Actors:      splitActors(actors),
		Poster:      posterPath,
		Trailer:     trailer,
		Video:       videoPath,
		Gallery:     galleryPaths,
		Type:        movieType,
		CreatedBy:   middleware.CurrentUser(c).Username,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Repos.Movie.Create(movie); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Không lưu được phim!")
		return
	}

	utils.Success(c, http.StatusCreated, gin.H{"movie": movie, "message": "Thêm phim thành công!"})
}

// UpdateMovie merges submitted scalar fields and replaces media files when
// new uploads are present. Admin only.
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Không tìm thấy phim!")
		return
	}
	existing, err := h.Repos.Movie.GetByID(id)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Không đọc được danh sách phim!")
		return
	}
	if existing == nil {
		utils.Fail(c, http.StatusNotFound, "Không tìm thấy phim!")
		return
	}

	posterPath := ""
	if file, err := c.FormFile("poster"); err == nil {
		if !utils.AllowedImage(file.Filename) {
			utils.Fail(c, http.StatusBadRequest, "File poster không hợp lệ!")
			return
		}
		if posterPath, err = utils.SaveUpload(c, file, h.Config.UploadDir, "posters"); err != nil {
			utils.Fail(c, http.StatusInternalServerError, "Không lưu được file poster!")
			return
		}
	}
	trailerFilePath := ""
	if file, err := c.FormFile("trailer_file"); err == nil {
		if !utils.AllowedVideo(file.Filename) {
			utils.Fail(c, http.StatusBadRequest, "File trailer không hợp lệ!")
			return
		}
		if trailerFilePath, err = utils.SaveUpload(c, file, h.Config.UploadDir, "trailers"); err != nil {
			utils.Fail(c, http.StatusInternalServerError, "Không lưu được file trailer!")
			return
		}
	}
	videoPath := ""
	if file, err := c.FormFile("video"); err == nil {
		if !utils.AllowedVideo(file.Filename) {
			utils.Fail(c, http.StatusBadRequest, "File video không hợp lệ!")
			return
		}
		if videoPath, err = utils.SaveUpload(c, file, h.Config.UploadDir, "videos"); err != nil {
			utils.Fail(c, http.StatusInternalServerError, "Không lưu được file video!")
			return
		}
	}

	updated, err := h.Repos.Movie.Update(id, func(m *model.Movie) {
		if v, ok := c.GetPostForm("title"); ok {
			m.Title = v
		}
		if v, ok := c.GetPostForm("description"); ok {
			m.Description = v
		}
		if v, ok := c.GetPostForm("year"); ok {
			if year, err := strconv.Atoi(v); err == nil {
				m.Year = year
			}
		}
		if v, ok := c.GetPostForm("country"); ok {
			m.Country = v
		}
		if v, ok := c.GetPostForm("genre"); ok {
			m.Genre = v
		}
		if v, ok := c.GetPostForm("actors"); ok {
			m.Actors = splitActors(v)
		}
		if v, ok := c.GetPostForm("type"); ok {
			m.Type = v
		}
		if posterPath != "" {
			m.Poster = posterPath
		}
		if trailerFilePath != "" {
			m.Trailer = trailerFilePath
		}
		if videoPath != "" {
			m.Video = videoPath
		}
	})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Không lưu được phim!")
		return
	}
	if updated == nil {
		utils.Fail(c, http.StatusNotFound, "Không tìm thấy phim!")
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"movie": updated, "message": "Sửa phim thành công!"})
}

// DeleteMovie removes the first id match. Admin only.
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Không tìm thấy phim!")
		return
	}
	deleted, err := h.Repos.Movie.Delete(id)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Không xoá được phim!")
		return
	}
	if !deleted {
		utils.Fail(c, http.StatusNotFound, "Không tìm thấy phim!")
		return
	}
	utils.SuccessMessage(c, "Xóa phim thành công!")
}

// splitActors turns the comma-separated form value into a trimmed list.
func splitActors(actors string) []string {
	if actors == "" {
		return []string{}
	}
	parts := strings.Split(actors, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
