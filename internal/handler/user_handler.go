package handler

import (
	"net/http"
	"pitchside/backend/internal/database"
	"pitchside/backend/internal/models"
	"pitchside/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Name     string `json:"name" binding:"required" example:"Andrei Popescu"`
	Email    string `json:"email" binding:"required,email" example:"andrei@example.com"`
	Username string `json:"username" binding:"required" example:"andrei"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
	Location string `json:"location" example:"Craiova"`
	Language string `json:"language" example:"ro"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email" example:"andrei@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UserResponse defines the structure for a user profile.
type UserResponse struct {
	ID       uint   `json:"id" example:"1"`
	Name     string `json:"name" example:"Andrei Popescu"`
	Email    string `json:"email" example:"andrei@example.com"`
	Username string `json:"username" example:"andrei"`
	Location string `json:"location" example:"Craiova"`
	Admin    bool   `json:"admin"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Username: user.Username,
		Location: user.Location,
		Admin:    user.IsAdmin(),
	}
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user account.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"message": "User registered"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	language := input.Language
	if language == "" {
		language = "ro"
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		Location:     input.Location,
		Language:     language,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered"})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]interface{} "{"token": "...", "user": {...}}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := jwt.GenerateToken(user.ID, user.IsAdmin())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": newUserResponse(user)})
}

// endregion

// region --- User Handlers ---

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// GetMyGames godoc
// @Summary      Get the caller's games
// @Description  Retrieves every game the authenticated user holds a roster slot in.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   GameResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/games [get]
func GetMyGames(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var games []models.Game
	err := database.DB.
		Joins("JOIN game_players ON game_players.game_id = games.id").
		Where("game_players.user_id = ?", viewerID.(uint)).
		Group("games.id").
		Preload("Players", playersInOrder).
		Preload("Players.User").
		Preload("Venue").
		Preload("CreatedBy").
		Find(&games).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	c.JSON(http.StatusOK, response)
}

// endregion
