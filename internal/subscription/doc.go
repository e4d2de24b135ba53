// Package subscription implements the subscriber command-execution engine.
//
// The package owns the closed command set (Subscribe, ConfirmSubscription),
// the executor that dispatches commands to their handlers, and the contracts
// the handlers drive: subscriber/token repositories and the email notifier.
// It depends on repository interfaces defined in this package and should
// never import from api/ or repository/.
//
// Repository implementations live in repository/postgres/; the notifier
// implementation lives in email/.
package subscription
