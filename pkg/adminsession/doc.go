// Package adminsession manages the admin-domain session: a bare shared
// secret attached to the admin channel as an "x-admin-secret" header.
//
// The admin credential is deliberately shorter-lived than the user
// session. It belongs in process-lifetime storage (credstore.MemoryStore)
// so a high-privilege secret never outlives the session that entered it.
//
// A Controller is the explicit, constructed-once replacement for a
// module-level interceptor singleton: it installs the admin channel's
// request and response interceptors exactly once, and exposes a single
// mutable logout-callback slot that the active UI surface fills in.
// Constructing more than one controller per channel would stack duplicate
// interceptors and fire the logout callback multiple times per rejection.
//
// Both 401 and 403 force a logout: a rejected secret and an insufficiently
// privileged one are indistinguishable from the client's point of view.
package adminsession
