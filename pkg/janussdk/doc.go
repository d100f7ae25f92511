/*
Package janussdk provides a client SDK for the Janus out-of-band approval service.

# Overview

Janus keeps a ledger of authentication requests. A relying party raises a
request for a user, the user's device discovers it by polling, and the device
approves or rejects it. Every request is resolved at most once.

	client := janussdk.NewSDKClient("https://janus.example.com")

	// Relying party
	ar, err := client.CreateRequest(ctx, janussdk.CreateAuthRequestRequest{
		UserID: userID,
		Kind:   "login",
	})

	// ...later, learn the outcome
	ar, err = client.GetRequest(ctx, ar.ID)

# Devices

A device polls for the newest pending request and answers it. Polls are
level-triggered: the same request is returned until it is resolved, so a lost
response costs nothing but latency.

	poller := &janussdk.Poller{Client: client, UserID: userID, Wait: 25 * time.Second}
	err := poller.Run(ctx, func(ctx context.Context, ar *janussdk.AuthRequest) error {
		_, err := client.Approve(ctx, ar.ID)
		return err
	})

# Errors

Non-2xx responses are returned as *APIError. Use IsStaleState to detect a
request that was already resolved by another decision, and IsNotFound,
IsConflict or IsValidation for the other service errors.
*/
package janussdk
