package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status enumerates the states a subscriber can be in.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"

	// StatusUnexpected is never produced by domain logic. It exists so that
	// deserializing a corrupted persisted status is total instead of a panic.
	StatusUnexpected Status = "unexpected"
)

// ParseStatus maps a persisted status string back to a Status. Unrecognized
// values yield StatusUnexpected together with ErrInvalidAttribute.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	default:
		return StatusUnexpected, fmt.Errorf("%w: unknown subscriber status %q", ErrInvalidAttribute, raw)
	}
}

const forbiddenNameCharacters = `/()"<>\{}?%`

// Name is a validated subscriber name.
type Name struct {
	value string
}

// ParseName validates a raw name: trimmed non-empty, shorter than 256 bytes,
// and free of characters that could break out of HTML or SQL contexts.
func ParseName(raw string) (Name, error) {
	if strings.TrimSpace(raw) == "" {
		return Name{}, fmt.Errorf("%w: name is empty", ErrInvalidAttribute)
	}
	if len(raw) >= 256 {
		return Name{}, fmt.Errorf("%w: name exceeds 255 characters", ErrInvalidAttribute)
	}
	if strings.ContainsAny(raw, forbiddenNameCharacters) {
		return Name{}, fmt.Errorf("%w: name contains a forbidden character", ErrInvalidAttribute)
	}
	return Name{value: raw}, nil
}

// RehydrateName wraps a name loaded from storage without validating it.
// Callers must guarantee the value passed validation when it was persisted.
// Never reachable from request-handling code.
func RehydrateName(raw string) Name {
	return Name{value: raw}
}

func (n Name) String() string { return n.value }

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// Email is a validated email address.
type Email struct {
	value string
}

// ParseEmail validates a raw address against an RFC-5322-style
// local@domain grammar.
func ParseEmail(raw string) (Email, error) {
	if len(raw) < 5 || !emailRegex.MatchString(raw) {
		return Email{}, fmt.Errorf("%w: malformed email address", ErrInvalidAttribute)
	}
	return Email{value: raw}, nil
}

// RehydrateEmail wraps an address loaded from storage without validating it.
// Same contract as RehydrateName.
func RehydrateEmail(raw string) Email {
	return Email{value: raw}
}

func (e Email) String() string { return e.value }

// Subscriber is the aggregate root. Its status only ever transitions
// pending -> confirmed, once, and never reverses.
type Subscriber struct {
	id           uuid.UUID
	name         Name
	email        Email
	subscribedAt time.Time
	status       Status
}

// NewSubscriber validates both attributes, short-circuiting on the first
// failure, and starts the subscriber in StatusPending with a fresh
// time-ordered id and the current UTC timestamp.
func NewSubscriber(name, email string) (Subscriber, error) {
	n, err := ParseName(name)
	if err != nil {
		return Subscriber{}, err
	}
	e, err := ParseEmail(email)
	if err != nil {
		return Subscriber{}, err
	}
	return Subscriber{
		id:           uuid.Must(uuid.NewV7()),
		name:         n,
		email:        e,
		subscribedAt: time.Now().UTC(),
		status:       StatusPending,
	}, nil
}

// RehydrateSubscriber rebuilds an aggregate from a persisted row. Name and
// email are trusted (they were validated before the row was written); the
// status string is parsed so corrupted rows surface as ErrInvalidAttribute
// instead of an impossible state.
func RehydrateSubscriber(id uuid.UUID, name, email string, subscribedAt time.Time, status string) (Subscriber, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return Subscriber{}, err
	}
	return Subscriber{
		id:           id,
		name:         RehydrateName(name),
		email:        RehydrateEmail(email),
		subscribedAt: subscribedAt.UTC(),
		status:       st,
	}, nil
}

// Confirm transitions the subscriber to StatusConfirmed. Calling it on an
// already-confirmed subscriber is a harmless no-op in effect.
func (s *Subscriber) Confirm() {
	s.status = StatusConfirmed
}

func (s Subscriber) ID() uuid.UUID           { return s.id }
func (s Subscriber) Name() string            { return s.name.String() }
func (s Subscriber) Email() string           { return s.email.String() }
func (s Subscriber) SubscribedAt() time.Time { return s.subscribedAt }
func (s Subscriber) Status() Status          { return s.status }
