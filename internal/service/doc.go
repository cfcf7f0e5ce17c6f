// Package service implements the external collaborators the desktop core
// depends on: the authentication service, the broadcast service, and the
// admin user/log management API. All clients speak the simulation API's
// REST contract and are transport-level best-effort; the core never lets
// their failures corrupt in-memory state.
package service
