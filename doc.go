// Package clientkit is the session and API core of the AgentForge
// dashboard client. It owns the three credentialed HTTP channels
// (public, user, admin), the user and admin session layers with their
// forced-logout interceptors, the strategy payload normalizer, and the
// route guards the UI renders from.
//
// Basic usage:
//
//	cfg, err := clientkit.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := clientkit.New(cfg,
//		clientkit.WithNavigator(router.Push),
//		clientkit.WithCurrentPath(router.Path),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Restore persisted sessions before first render.
//	if err := client.Hydrate(ctx); err != nil {
//		log.Printf("hydrate: %v", err)
//	}
//
//	principal, err := client.Session().Login(ctx, email, password)
//	record, err := client.Strategies().Generate(ctx, input)
//
// A 401 on the user channel, or a 401/403 on the admin channel, clears
// the affected session, notifies its listeners and navigates to the
// matching login route; the failed call still returns its error to the
// caller. Route guards snapshot session state into a Loading /
// Authorized / Unauthorized decision without triggering any I/O.
//
// The subpackages are usable on their own: pkg/httpclient (channels),
// pkg/authsession and pkg/adminsession (session layers), pkg/strategy
// (payload normalizer), pkg/routeguard (guards) and pkg/credstore
// (credential storage backends).
package clientkit
