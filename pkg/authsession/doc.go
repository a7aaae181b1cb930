// Package authsession manages the user-domain session: a bearer token
// paired with the authenticated principal, persisted across restarts and
// wired into the user channel's interceptors.
//
// The invariant the package exists to protect: credential and principal
// are set and cleared together, in memory and in the store. There is no
// partial state — a half-present persisted pair found during hydration is
// dropped, not surfaced.
//
// A Manager installs exactly one request interceptor on the user channel
// (attaching "Authorization: Bearer <token>" when a credential is present,
// read at send time) and exactly one response interceptor (a 401 forces an
// idempotent session clear and a single navigation to the login route,
// while the in-flight caller still receives its own error so it can avoid
// acting on stale data).
//
// The manager is the sole writer of its persisted keys; interceptors and
// route guards only read session state.
package authsession
