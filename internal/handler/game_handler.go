package handler

import (
	"errors"
	"log"
	"net/http"
	"pitchside/backend/internal/database"
	"pitchside/backend/internal/models"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type GameInput struct {
	Date             string `json:"date" binding:"required"`
	StartTime        string `json:"startTime" binding:"required"`
	EndTime          string `json:"endTime" binding:"required"`
	Venue            *uint  `json:"venue"`
	MaxPlayers       int    `json:"maxPlayers" binding:"required,min=1"`
	SkillLevel       string `json:"skillLevel"`
	Location         string `json:"location"`
	Notes            string `json:"notes"`
	PreFilledPlayers int    `json:"preFilledPlayers"`
}

// UpdateGameInput allows partial edits; nil fields keep their current value.
type UpdateGameInput struct {
	Date             *string `json:"date"`
	StartTime        *string `json:"startTime"`
	EndTime          *string `json:"endTime"`
	Venue            *uint   `json:"venue"`
	MaxPlayers       *int    `json:"maxPlayers"`
	SkillLevel       *string `json:"skillLevel"`
	Location         *string `json:"location"`
	Notes            *string `json:"notes"`
	PreFilledPlayers *int    `json:"preFilledPlayers"`
}

// PlayerResponse is one roster slot: a resolved user or an opaque placeholder.
type PlayerResponse struct {
	ID          *uint  `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

type GameResponse struct {
	ID                uint             `json:"id"`
	Date              string           `json:"date"`
	StartTime         string           `json:"startTime"`
	EndTime           string           `json:"endTime"`
	MaxPlayers        int              `json:"maxPlayers"`
	SkillLevel        string           `json:"skillLevel"`
	Location          string           `json:"location"`
	Notes             string           `json:"notes"`
	CreatedBy         uint             `json:"createdBy"`
	CreatorName       string           `json:"creatorName,omitempty"`
	Venue             *VenueResponse   `json:"venue,omitempty"`
	Players           []PlayerResponse `json:"players"`
	TotalPlayersCount int              `json:"totalPlayersCount"`
}

func newGameResponse(game models.Game) GameResponse {
	players := make([]PlayerResponse, 0, len(game.Players))
	for i := range game.Players {
		p := &game.Players[i]
		if p.IsReal() {
			entry := PlayerResponse{ID: p.UserID}
			if p.User != nil {
				entry.Name = p.User.Name
			}
			players = append(players, entry)
		} else {
			players = append(players, PlayerResponse{Placeholder: p.PlaceholderTag})
		}
	}

	resp := GameResponse{
		ID:                game.ID,
		Date:              game.Date,
		StartTime:         game.StartTime,
		EndTime:           game.EndTime,
		MaxPlayers:        game.MaxPlayers,
		SkillLevel:        game.SkillLevel,
		Location:          game.Location,
		Notes:             game.Notes,
		CreatedBy:         game.CreatedByID,
		Players:           players,
		TotalPlayersCount: game.TotalPlayers(),
	}
	if game.CreatedBy != nil {
		resp.CreatorName = game.CreatedBy.Name
	}
	if game.Venue != nil {
		venue := newVenueResponse(*game.Venue)
		resp.Venue = &venue
	}
	return resp
}

// endregion

// playersInOrder preloads roster slots in their stored order.
func playersInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("game_players.position ASC")
}

// loadGame fetches a game with its full roster, venue and creator.
func loadGame(gameID int) (*models.Game, error) {
	var game models.Game
	err := database.DB.
		Preload("Players", playersInOrder).
		Preload("Players.User").
		Preload("Venue").
		Preload("CreatedBy").
		First(&game, gameID).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// GetGames godoc
// @Summary      List games
// @Description  Paginated list of games, optionally filtered by date, skill level and location.
// @Tags         games
// @Produce      json
// @Param        date       query string false "Filter by date (YYYY-MM-DD)"
// @Param        skillLevel query string false "Filter by skill level"
// @Param        location   query string false "Filter by venue city or game location"
// @Param        page       query int    false "Page number" default(1)
// @Param        limit      query int    false "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[GameResponse]
// @Router       /games [get]
func GetGames(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}

	query := database.DB.Model(&models.Game{}).
		Preload("Players", playersInOrder).
		Preload("Players.User").
		Preload("Venue").
		Preload("CreatedBy")

	if date := c.Query("date"); date != "" {
		query = query.Where("games.date = ?", date)
	}
	if skillLevel := c.Query("skillLevel"); skillLevel != "" {
		query = query.Where("games.skill_level = ?", skillLevel)
	}
	if location := c.Query("location"); location != "" {
		query = query.
			Joins("LEFT JOIN venues ON venues.id = games.venue_id").
			Where("venues.location = ? OR games.location = ?", location, location)
	}

	paginated, err := Paginate[models.Game](query.Order("games.date ASC, games.start_time ASC"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	response := make([]GameResponse, 0, len(paginated.Data))
	for _, game := range paginated.Data {
		response = append(response, newGameResponse(game))
	}

	c.JSON(http.StatusOK, PaginatedResponse[GameResponse]{Data: response, Meta: paginated.Meta})
}

// GetGameByID godoc
// @Summary      Get a single game
// @Description  Retrieves a game with its processed roster and total player count.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func GetGameByID(c *gin.Context) {
	gameID, _ := strconv.Atoi(c.Param("id"))

	game, err := loadGame(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	c.JSON(http.StatusOK, newGameResponse(*game))
}

// CreateGame godoc
// @Summary      Create a game
// @Description  Creates a pickup game. The creator takes the first roster slot, followed by the requested pre-filled placeholders. When a venue is given, a linked booking is added to it best-effort.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201 {object} GameResponse
// @Failure      400 {object} ErrorResponse "Invalid input or pre-filled count"
// @Failure      401 {object} ErrorResponse
// @Router       /games [post]
func CreateGame(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	players, err := models.NewRoster(userID.(uint), input.PreFilledPlayers, input.MaxPlayers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pre-filled players must be between 0 and maxPlayers-1"})
		return
	}

	game := models.Game{
		VenueID:     input.Venue,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		MaxPlayers:  input.MaxPlayers,
		SkillLevel:  input.SkillLevel,
		Location:    input.Location,
		Notes:       input.Notes,
		CreatedByID: userID.(uint),
		Players:     players,
	}

	if err := database.DB.Create(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	// Best effort: a missing venue or a slot conflict never fails game creation.
	if game.VenueID != nil {
		linkVenueBooking(&game)
	}

	created, err := loadGame(int(game.ID))
	if err != nil {
		c.JSON(http.StatusCreated, newGameResponse(game))
		return
	}
	c.JSON(http.StatusCreated, newGameResponse(*created))
}

// linkVenueBooking reserves the game's slot on its venue with a booking that
// points back at the game.
func linkVenueBooking(game *models.Game) {
	var venue models.Venue
	if err := database.DB.Preload("Bookings").First(&venue, *game.VenueID).Error; err != nil {
		log.Printf("Venue %d not found for game %d, created without a linked booking", *game.VenueID, game.ID)
		return
	}

	bookedBy := game.CreatedByID
	gameID := game.ID
	booking := models.Booking{
		VenueID:    venue.ID,
		Date:       game.Date,
		StartTime:  game.StartTime,
		EndTime:    game.EndTime,
		External:   false,
		BookedByID: &bookedBy,
		GameID:     &gameID,
	}

	if conflict := models.FindConflict(venue.Bookings, &booking, 0); conflict != nil {
		log.Printf("Slot conflict on venue %d, game %d created without a linked booking", venue.ID, game.ID)
		return
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		log.Printf("Error creating linked booking for game %d: %v", game.ID, err)
		return
	}
	StatsCache.Invalidate(nil, venue.ID)
}

// JoinGame godoc
// @Summary      Join a game
// @Description  Takes a roster slot if the game isn't full and the caller hasn't joined yet.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      409 {object} ErrorResponse "Game is full or already joined"
// @Router       /games/{id}/join [post]
func JoinGame(c *gin.Context) {
	userID, _ := c.Get("userID")
	gameID, _ := strconv.Atoi(c.Param("id"))

	game, err := loadGame(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	if err := game.AddPlayer(userID.(uint)); err != nil {
		switch {
		case errors.Is(err, models.ErrGameFull):
			c.JSON(http.StatusConflict, gin.H{"error": "Game is full"})
		case errors.Is(err, models.ErrAlreadyJoined):
			c.JSON(http.StatusConflict, gin.H{"error": "Already joined"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join game"})
		}
		return
	}

	newSlot := &game.Players[len(game.Players)-1]
	if err := database.DB.Create(newSlot).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join game"})
		return
	}

	updated, err := loadGame(gameID)
	if err != nil {
		c.JSON(http.StatusOK, newGameResponse(*game))
		return
	}
	c.JSON(http.StatusOK, newGameResponse(*updated))
}

// LeaveGame godoc
// @Summary      Leave a game
// @Description  Releases the caller's roster slot.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      409 {object} ErrorResponse "Caller is not in the game"
// @Router       /games/{id}/leave [post]
func LeaveGame(c *gin.Context) {
	userID, _ := c.Get("userID")
	gameID, _ := strconv.Atoi(c.Param("id"))

	game, err := loadGame(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	if err := game.RemovePlayer(userID.(uint)); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You are not in this game"})
		return
	}

	if err := database.DB.Where("game_id = ? AND user_id = ?", game.ID, userID.(uint)).Delete(&models.GamePlayer{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave game"})
		return
	}

	updated, err := loadGame(gameID)
	if err != nil {
		c.JSON(http.StatusOK, newGameResponse(*game))
		return
	}
	c.JSON(http.StatusOK, newGameResponse(*updated))
}

// UpdateGame godoc
// @Summary      Edit a game (creator only)
// @Description  Partially updates a game. Changing preFilledPlayers resizes the placeholder part of the roster while keeping every real player.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int             true "Game ID"
// @Param        input body UpdateGameInput true "Fields to change"
// @Success      200 {object} GameResponse
// @Failure      400 {object} ErrorResponse "Invalid pre-filled players count"
// @Failure      403 {object} ErrorResponse "Only the creator can edit the game"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [put]
func UpdateGame(c *gin.Context) {
	userID, _ := c.Get("userID")
	gameID, _ := strconv.Atoi(c.Param("id"))

	game, err := loadGame(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if game.CreatedByID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	var input UpdateGameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Date != nil {
		game.Date = *input.Date
	}
	if input.StartTime != nil {
		game.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		game.EndTime = *input.EndTime
	}
	if input.Venue != nil {
		game.VenueID = input.Venue
	}
	if input.MaxPlayers != nil {
		game.MaxPlayers = *input.MaxPlayers
	}
	if input.SkillLevel != nil {
		game.SkillLevel = *input.SkillLevel
	}
	if input.Location != nil {
		game.Location = *input.Location
	}
	if input.Notes != nil {
		game.Notes = *input.Notes
	}

	if input.PreFilledPlayers != nil {
		if err := game.SetPlaceholders(*input.PreFilledPlayers); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pre-filled players count"})
			return
		}
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Players").Save(game).Error; err != nil {
			return err
		}
		if input.PreFilledPlayers == nil {
			return nil
		}
		// The roster was rebuilt; replace the stored slots wholesale.
		if err := tx.Where("game_id = ?", game.ID).Delete(&models.GamePlayer{}).Error; err != nil {
			return err
		}
		for i := range game.Players {
			game.Players[i].ID = 0
			game.Players[i].GameID = game.ID
		}
		if len(game.Players) > 0 {
			if err := tx.Create(&game.Players).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	updated, err := loadGame(gameID)
	if err != nil {
		c.JSON(http.StatusOK, newGameResponse(*game))
		return
	}
	c.JSON(http.StatusOK, newGameResponse(*updated))
}

// DeleteGame godoc
// @Summary      Delete a game (creator only)
// @Description  Deletes a game and removes its linked venue booking. A booking that can't be found is logged and ignored.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} map[string]bool "{"success": true}"
// @Failure      403 {object} ErrorResponse "Only the creator can delete the game"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [delete]
func DeleteGame(c *gin.Context) {
	userID, _ := c.Get("userID")
	gameID, _ := strconv.Atoi(c.Param("id"))

	game, err := loadGame(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if game.CreatedByID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	unlinkVenueBooking(game)

	if err := database.DB.Select("Players").Delete(game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete game"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// unlinkVenueBooking removes the booking the game reserved on its venue.
// Prefers the explicit GameID link; falls back to structural matching for
// bookings created before the link existed. A miss is logged, never fatal.
func unlinkVenueBooking(game *models.Game) {
	result := database.DB.Where("game_id = ?", game.ID).Delete(&models.Booking{})
	if result.Error == nil && result.RowsAffected > 0 {
		if game.VenueID != nil {
			StatsCache.Invalidate(nil, *game.VenueID)
		}
		return
	}

	if game.VenueID == nil {
		return
	}

	var venue models.Venue
	if err := database.DB.Preload("Bookings").First(&venue, *game.VenueID).Error; err != nil {
		log.Printf("Venue %d not found while deleting game %d", *game.VenueID, game.ID)
		return
	}

	for i := range venue.Bookings {
		if venue.Bookings[i].MatchesGame(game) {
			if err := database.DB.Delete(&venue.Bookings[i]).Error; err != nil {
				log.Printf("Error removing booking for game %d from venue %d: %v", game.ID, venue.ID, err)
				return
			}
			StatsCache.Invalidate(nil, venue.ID)
			return
		}
	}
	log.Printf("Could not find booking for game %d in venue %d", game.ID, venue.ID)
}
