// Package tasks defines the asynq task types and payloads.
package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names. The price refresh tasks keep catalog prices in line
// with the cheapest current eBay listing.
const (
	TypePriceRefresh    = "price:refresh"     // one game
	TypePriceRefreshAll = "price:refresh_all" // whole catalog, scheduled
)

// PriceRefreshPayload identifies the game whose price should be refreshed.
type PriceRefreshPayload struct {
	GameID uint `json:"game_id"`
}

// NewPriceRefreshTask builds a single-game refresh task.
func NewPriceRefreshTask(gameID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(PriceRefreshPayload{GameID: gameID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePriceRefresh, payload), nil
}

// NewPriceRefreshAllTask builds the periodic full-catalog refresh task.
func NewPriceRefreshAllTask() *asynq.Task {
	return asynq.NewTask(TypePriceRefreshAll, nil)
}
