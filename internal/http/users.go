package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/entities"
)

// UsersStore defines the user operations the preferences controller needs.
type UsersStore interface {
	GetByID(id uint) (*entities.User, error)
	UpdatePreferences(userID uint, theme entities.Theme, fontSize int) error
}

type UsersController struct {
	store UsersStore
}

func NewUsersController(store UsersStore) *UsersController {
	return &UsersController{store: store}
}

type updatePreferencesRequest struct {
	Theme    *entities.Theme `json:"theme"`
	FontSize *int            `json:"fontSize"`
}

// GetPreferences returns the user's display preferences.
// GET /api/users/preferences
func (uc *UsersController) GetPreferences(c *gin.Context) {
	user, err := uc.store.GetByID(GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get preferences")
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": user.Theme, "fontSize": user.FontSize})
}

// UpdatePreferences changes the theme and/or font size. Omitted fields
// keep their current value.
// PUT /api/users/preferences
func (uc *UsersController) UpdatePreferences(c *gin.Context) {
	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Theme == nil && req.FontSize == nil {
		respondBadRequest(c, "theme or fontSize is required")
		return
	}

	user, err := uc.store.GetByID(GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get preferences")
		return
	}

	theme := user.Theme
	if req.Theme != nil {
		if *req.Theme != entities.ThemeLight && *req.Theme != entities.ThemeDark {
			respondBadRequest(c, "theme must be light or dark")
			return
		}
		theme = *req.Theme
	}

	fontSize := user.FontSize
	if req.FontSize != nil {
		if *req.FontSize < entities.MinFontSize || *req.FontSize > entities.MaxFontSize {
			respondBadRequest(c, "fontSize must be between 12 and 24")
			return
		}
		fontSize = *req.FontSize
	}

	if err := uc.store.UpdatePreferences(user.ID, theme, fontSize); err != nil {
		respondInternalError(c, err, "update preferences")
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": theme, "fontSize": fontSize})
}
