package subscription

// Command is one of the closed set of subscriber intents. The set is sealed
// by the unexported marker method: new kinds can only be added here, next to
// the executor's type switch that must learn to dispatch them.
type Command interface {
	isCommand()
}

// Subscribe registers a new subscriber and issues their confirmation token.
type Subscribe struct {
	Name  string
	Email string
}

// ConfirmSubscription redeems a confirmation token, transitioning the
// subscriber it references from pending to confirmed.
type ConfirmSubscription struct {
	Token string
}

func (Subscribe) isCommand()           {}
func (ConfirmSubscription) isCommand() {}
