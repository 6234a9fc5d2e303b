// Package user implements the user management core: validation, role
// resolution, password hashing and persistence of application users. All
// mutations go through UserService; stores are never written to directly.
package user
