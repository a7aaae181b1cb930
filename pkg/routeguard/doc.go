// Package routeguard implements route-level access decisions for the two
// session domains. A Guard turns the owning session's status into one of
// three states: Loading while persisted-session hydration is unresolved,
// Authorized when the route may render, and Unauthorized with a redirect
// to the domain's login route that preserves the attempted path for
// post-login return.
//
// Guards are pure readers of session state. Re-evaluation is driven by the
// session managers' OnChange notifications, which is how a mounted
// Authorized route observes a forced clear and flips to Unauthorized.
package routeguard
