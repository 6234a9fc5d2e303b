// Package role manages the fixed set of roles users can be assigned to.
// Roles are seeded once at startup and are read-only afterward; the user
// management path only ever references them.
package role
