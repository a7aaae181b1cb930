// Package credstore provides pluggable key-value storage for session
// credentials. It is the single shared mutable resource of the session
// layer: each session domain owns its keys and is the only writer, while
// interceptors and guards only read.
//
// Three implementations ship out of the box:
//
//   - MemoryStore: process-lifetime storage. Credentials die with the
//     process, which is the desired scope for high-privilege secrets.
//   - FileStore: survives restarts. Values are encrypted at rest with
//     AES-256-GCM under an HKDF-derived key.
//   - RedisStore: shared storage for server-side deployments that host
//     dashboard sessions for many processes.
//
// Multi-key writes and deletes are atomic within a store so that paired
// credentials (token + principal) are never observed half-present.
package credstore
