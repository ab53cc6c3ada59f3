package shopserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	userapp "github.com/Apurer/go-shop-api/internal/domains/users/application"
	userports "github.com/Apurer/go-shop-api/internal/domains/users/ports"
)

// UserAPI implements the user account endpoints.
type UserAPI struct {
	service userports.Service
}

// NewUserAPI wires dependencies.
func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

// RegisterRequest is the inbound payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the inbound payload for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the outbound account shape. Password hashes never leave the service.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Post /v2/user/register
// Create a new account
func (api *UserAPI) RegisterUser(c *gin.Context) {
	var payload RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := api.service.Register(c.Request.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusCreated, UserResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

// Post /v2/user/login
// Logs user into the system
func (api *UserAPI) LoginUser(c *gin.Context) {
	var payload LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.Header("Set-Cookie", "api_key="+session.Token)
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "userId": session.UserID, "token": session.Token})
}

// Post /v2/user/logout
// Logs out current logged in user session
func (api *UserAPI) LogoutUser(c *gin.Context) {
	email := c.Query("email")
	if email != "" {
		api.service.Logout(c.Request.Context(), email)
	}
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

// Get /v2/user/:userId
// Get user by id
func (api *UserAPI) GetUserById(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	user, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

// Delete /v2/user/:userId
// Delete user
func (api *UserAPI) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondUserError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}

func respondUserError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, userports.ErrNotFound) {
		respondError(c, http.StatusNotFound, err)
		return
	}
	if errors.Is(err, userports.ErrEmailTaken) {
		respondError(c, http.StatusConflict, err)
		return
	}
	if errors.Is(err, userapp.ErrAuthentication) {
		respondError(c, http.StatusUnauthorized, err)
		return
	}
	if errors.Is(err, userapp.ErrInvalidInput) {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	respondError(c, http.StatusInternalServerError, err)
}
