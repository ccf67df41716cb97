package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"elevator-game/internal/services"
)

type SessionHandler struct {
	jwtService *services.JWTService
}

func NewSessionHandler(jwtService *services.JWTService) *SessionHandler {
	return &SessionHandler{jwtService: jwtService}
}

// CreateSession issues a bearer token. Players can reconnect with their own
// id to keep a wallet across sessions; without one a guest id is minted.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req struct {
		PlayerID string `json:"playerId"`
	}
	// body is optional
	_ = c.ShouldBindJSON(&req)

	playerID := req.PlayerID
	if playerID == "" {
		playerID = "guest_" + uuid.New().String()
	}

	token, err := h.jwtService.IssueToken(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to issue token",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"playerId": playerID,
	})
}
