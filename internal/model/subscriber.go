package model

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is a newsletter subscription.
type Subscriber struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
