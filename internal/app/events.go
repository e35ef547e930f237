package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

// HotelReader resolves a catalog hotel. Both the catalog and the cached
// QueryService satisfy it.
type HotelReader interface {
	GetHotel(ctx context.Context, id string) (domain.Hotel, error)
}

// publish hands an event to the broker. A failed publish is logged and never
// fails the action that produced it.
func publish(ctx context.Context, pub domain.EventPublisher, topic, key string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, topic, key, payload); err != nil {
		log.Warn().Err(err).Str("topic", topic).Str("key", key).Msg("event publish failed")
	}
}

// currentName refreshes p.Name from the stored profile so a rename shows up
// before the caller's token is reissued. The token's name is kept when the
// profile cannot be read.
func currentName(ctx context.Context, store domain.DocumentStore, p domain.Principal) domain.Principal {
	var u domain.User
	if err := store.Get(ctx, domain.CollectionUsers, p.UserID, &u); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Debug().Err(err).Str("user_id", p.UserID).Msg("profile lookup failed, using token name")
		}
		return p
	}
	if u.Name != "" {
		p.Name = u.Name
	}
	return p
}
