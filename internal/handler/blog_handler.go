package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"inkwell/internal/auth"
	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/service"
)

// BlogHandler handles post endpoints.
type BlogHandler struct {
	blogService service.BlogService
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// CreatePostRequest represents a post creation request. Content defaults to
// the empty string and published to false when absent.
type CreatePostRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// UpdatePostRequest represents a full post replacement.
type UpdatePostRequest struct {
	ID        string `json:"id" validate:"required,uuid4"`
	Title     string `json:"title" validate:"required,max=255"`
	Content   string `json:"content" validate:"required"`
	Published bool   `json:"published"`
}

// PublishPostRequest identifies the post to publish.
type PublishPostRequest struct {
	ID string `json:"id" validate:"required,uuid4"`
}

// AuthorInfo exposes only the author's display name.
type AuthorInfo struct {
	Name string `json:"name"`
}

// PostResponse is the wire shape of a post.
type PostResponse struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Published bool        `json:"published"`
	AuthorID  uuid.UUID   `json:"authorId"`
	CreatedAt time.Time   `json:"createdAt"`
	Author    *AuthorInfo `json:"author,omitempty"`
}

// CreatePostResponse returns the new post id.
type CreatePostResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
}

// SinglePostResponse wraps one post.
type SinglePostResponse struct {
	Success bool         `json:"success"`
	Post    PostResponse `json:"post"`
}

// PostListResponse is one page of published posts.
type PostListResponse struct {
	Success    bool               `json:"success"`
	Pagination service.Pagination `json:"pagination"`
	Posts      []PostResponse     `json:"posts"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func toPostResponse(post *model.Post) PostResponse {
	resp := PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
	}
	if post.Author.Name != "" {
		resp.Author = &AuthorInfo{Name: post.Author.Name}
	}
	return resp
}

// subjectID pulls the authenticated user id bound by the JWT middleware.
func subjectID(c echo.Context) (uuid.UUID, error) {
	raw, err := auth.UserIDFromContext(c)
	if err != nil {
		return uuid.Nil, unauthorized()
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, unauthorized()
	}
	return id, nil
}

// ListPublished godoc
// @Summary List published posts, newest first
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size, 1-50"
// @Success 200 {object} PostListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog/bulk [get]
func (h *BlogHandler) ListPublished(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		limit = 0 // service applies the default
	}

	posts, pagination, err := h.blogService.ListPublished(c.Request().Context(), page, limit)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toPostResponse(&posts[i]))
	}
	return c.JSON(http.StatusOK, PostListResponse{
		Success:    true,
		Pagination: pagination,
		Posts:      out,
	})
}

// GetPost godoc
// @Summary Fetch a single post by id
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} SinglePostResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog/{id} [get]
func (h *BlogHandler) GetPost(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return postNotFound()
	}

	post, err := h.blogService.GetPost(c.Request().Context(), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, SinglePostResponse{Success: true, Post: toPostResponse(post)})
}

// CreatePost godoc
// @Summary Create a post owned by the authenticated user
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 200 {object} CreatePostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog [post]
func (h *BlogHandler) CreatePost(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidInput())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidInput())
	}

	post, err := h.blogService.CreatePost(c.Request().Context(), userID, req.Title, req.Content, req.Published)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, CreatePostResponse{Success: true, ID: post.ID})
}

// UpdatePost godoc
// @Summary Replace title, content and published state of an owned post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdatePostRequest true "Updated post"
// @Success 200 {object} SinglePostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog [put]
func (h *BlogHandler) UpdatePost(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidInput())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidInput())
	}
	postID, err := uuid.Parse(req.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidInput())
	}

	post, err := h.blogService.UpdatePost(c.Request().Context(), postID, userID, req.Title, req.Content, req.Published)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, SinglePostResponse{Success: true, Post: toPostResponse(post)})
}

// PublishPost godoc
// @Summary Publish an owned post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PublishPostRequest true "Post id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog/publish [patch]
func (h *BlogHandler) PublishPost(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	var req PublishPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidInput())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidInput())
	}
	postID, err := uuid.Parse(req.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidInput())
	}

	if err := h.blogService.PublishPost(c.Request().Context(), postID, userID); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "post published successfully"})
}

// DeletePost godoc
// @Summary Delete an owned post
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog/{id} [delete]
func (h *BlogHandler) DeletePost(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return postNotFound()
	}

	if err := h.blogService.DeletePost(c.Request().Context(), id, userID); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "post deleted successfully"})
}

// postNotFound is the shared 404 for missing and foreign posts alike; the
// response never reveals which of the two it was.
func postNotFound() error {
	httpErr := apperrors.MapErrorToHTTP(apperrors.ErrPostNotFound)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
