// Package session implements Echo's session verification path.
//
// A presented credential is digested (see security/token) and the digest is
// checked against an external session store. The raw credential never leaves
// the process; only its SHA-256 digest is sent to the store.
//
// Stores are capability-sized: one method answering "is this digest currently
// valid?". Postgres (stored function), Redis (TTL keys), a PostgREST-style RPC
// endpoint, and an in-memory store for development are provided.
//
// Session creation and authorization policy are out of scope here.
package session
