// Package token provides credential digest primitives for Echo.
//
// It is the single source of truth for how a presented session credential is
// turned into a session-store lookup key.
//
// Properties:
//   - SHA-256 over the UTF-8 bytes of the credential.
//   - Stable 64-char lowercase hex output.
//   - No failure mode: empty input is a valid input. Callers reject empty
//     credentials before hashing.
package token
