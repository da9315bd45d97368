package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/service"
)

// ProfileHandler handles author profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// OwnPost is a post as seen on the owner's profile, drafts included.
type OwnPost struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicPost is a post as seen on a public profile; only published posts
// appear so the flag is omitted.
type PublicPost struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// OwnProfile is the authenticated user's own view.
type OwnProfile struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Posts []OwnPost `json:"posts"`
}

// PublicProfile is anyone's view of an author.
type PublicProfile struct {
	ID    uuid.UUID    `json:"id"`
	Name  string       `json:"name"`
	Posts []PublicPost `json:"posts"`
}

// OwnProfileResponse wraps the owner view.
type OwnProfileResponse struct {
	Success bool       `json:"success"`
	Profile OwnProfile `json:"profile"`
}

// PublicProfileResponse wraps the public view.
type PublicProfileResponse struct {
	Success bool          `json:"success"`
	Profile PublicProfile `json:"profile"`
}

// GetOwnProfile godoc
// @Summary Get the authenticated user's profile with all posts
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} OwnProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetOwnProfile(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	user, err := h.profileService.GetOwnProfile(c.Request().Context(), userID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, OwnProfileResponse{
		Success: true,
		Profile: toOwnProfile(user),
	})
}

// GetPublicProfile godoc
// @Summary Get an author's public profile with published posts
// @Tags profile
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} PublicProfileResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile/{id} [get]
func (h *ProfileHandler) GetPublicProfile(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUserNotFound)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	user, err := h.profileService.GetPublicProfile(c.Request().Context(), userID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, PublicProfileResponse{
		Success: true,
		Profile: toPublicProfile(user),
	})
}

func toOwnProfile(user *model.User) OwnProfile {
	posts := make([]OwnPost, 0, len(user.Posts))
	for _, p := range user.Posts {
		posts = append(posts, OwnPost{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Published: p.Published,
			CreatedAt: p.CreatedAt,
		})
	}
	return OwnProfile{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Posts: posts,
	}
}

func toPublicProfile(user *model.User) PublicProfile {
	posts := make([]PublicPost, 0, len(user.Posts))
	for _, p := range user.Posts {
		posts = append(posts, PublicPost{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
		})
	}
	return PublicProfile{
		ID:    user.ID,
		Name:  user.Name,
		Posts: posts,
	}
}
