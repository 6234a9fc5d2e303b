// Package login verifies credentials against stored password hashes and
// produces the authenticated principal used by the token layer. It only sees
// users through the read-only IdentityLookup shape, never the full entity.
package login
