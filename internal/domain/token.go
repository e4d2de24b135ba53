package domain

import "github.com/google/uuid"

// SubscriptionToken is the opaque credential a subscriber redeems to confirm
// their subscription. The value is system-generated, so no validating
// constructor exists; uniqueness is enforced by the storage layer's primary
// key, not by construction.
type SubscriptionToken struct {
	value        string
	subscriberID uuid.UUID
}

// NewSubscriptionToken issues a fresh time-ordered token bound to the given
// subscriber.
func NewSubscriptionToken(subscriberID uuid.UUID) SubscriptionToken {
	return SubscriptionToken{
		value:        uuid.Must(uuid.NewV7()).String(),
		subscriberID: subscriberID,
	}
}

// RehydrateSubscriptionToken rebuilds a token from a persisted row.
func RehydrateSubscriptionToken(value string, subscriberID uuid.UUID) SubscriptionToken {
	return SubscriptionToken{value: value, subscriberID: subscriberID}
}

func (t SubscriptionToken) Value() string           { return t.value }
func (t SubscriptionToken) SubscriberID() uuid.UUID { return t.subscriberID }
