package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"elevator-game/internal/models"
	"elevator-game/internal/services"
)

type GameHandler struct {
	svc *services.GameService
}

func NewGameHandler(svc *services.GameService) *GameHandler {
	return &GameHandler{svc: svc}
}

// Authenticate starts a fairness epoch: fresh server seed commitment, nonce
// reset to 1, and the session parameters the client needs to place bets.
func (h *GameHandler) Authenticate(c *gin.Context) {
	playerID := c.GetString("player_id")

	resp, err := h.svc.Authenticate(playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) Play(c *gin.Context) {
	playerID := c.GetString("player_id")

	var req models.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.svc.Play(playerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) RotateServerSeed(c *gin.Context) {
	playerID := c.GetString("player_id")

	resp, err := h.svc.RotateServerSeed(playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) GetHistory(c *gin.Context) {
	playerID := c.GetString("player_id")

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	rounds, err := h.svc.GetRounds(playerID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get round history",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rounds": rounds,
		"count":  len(rounds),
	})
}

// Verify replays the outcome derivation for a revealed seed pair so anyone
// can check a settled round without trusting the server.
func (h *GameHandler) Verify(c *gin.Context) {
	var req struct {
		ServerSeed string `json:"serverSeed" binding:"required"`
		ClientSeed string `json:"clientSeed" binding:"required"`
		Nonce      int64  `json:"nonce" binding:"required,gte=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	multiplier, digest, err := h.svc.VerifyRound(req.ServerSeed, req.ClientSeed, req.Nonce)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"multiplier": multiplier,
		"digest":     digest,
		"serverSeed": req.ServerSeed,
		"clientSeed": req.ClientSeed,
		"nonce":      req.Nonce,
	})
}

// respondError maps validation failures to 400 and everything else to 500,
// in the {error, details} shape the client parses.
func respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": verr.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal error",
		"details": err.Error(),
	})
}
