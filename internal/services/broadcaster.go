package services

import "elevator-game/internal/models"

type Broadcaster interface {
	BroadcastRound(round *models.Round)
}
