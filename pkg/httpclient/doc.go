// Package httpclient provides the outbound HTTP channels used by the
// dashboard client. A Factory constructs three independent channels from one
// base URL:
//
//   - public: no credential, used for login and signup
//   - user: bearer-token credential on every request
//   - admin: shared-secret header on every request
//
// Each channel owns its own *http.Client, its own timeout and its own
// interceptor chains; channels never share interceptor state. Request
// interceptors run before the request is sent and attach credentials at
// send time, so a request already in flight keeps the credential it was
// sent with even if the session is cleared concurrently. Response
// interceptors observe every completed exchange and may replace the error
// surfaced to the caller, which lets session stores translate a 401 into a
// forced logout while the caller still receives its own rejection.
//
// Non-2xx responses surface as *HTTPError carrying the status code and the
// server's detail message. Timeouts and transport failures are generic
// errors, never auth failures.
package httpclient
