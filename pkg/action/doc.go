/*
Package action provides the remote-action controller.

A Controller wraps named asynchronous operations (health check, fetch list,
add/toggle/delete item, compute, fetch random value) and publishes three pieces
of state: the key of the action in flight, the message of the last failure, and
the last successful payload of every action.

	ctrl := action.NewController()
	err := ctrl.Run(ctx, domain.KeyHealth, func(ctx context.Context) (any, error) {
		return client.Health(ctx)
	})
	health, ok := action.ResultAs[domain.Health](ctrl, domain.KeyHealth)

The busy key is an indicator, not a lock: two Run calls may overlap and the one
that settles first clears the indicator for both. Triggers are expected to be
disabled by the caller while IsBusy reports true.
*/
package action
