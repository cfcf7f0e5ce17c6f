// Package types defines the shared domain types for the desktop core:
// users, window records, broadcasts, notifications, and the wire shapes
// exchanged with the simulation API.
//
// These types are plain data. Ownership and mutation rules live in the
// domain managers; renderers only ever receive copies.
package types
