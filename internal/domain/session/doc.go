// Package session owns the locked/identity pair that gates the desktop.
// No other component may flip locked or replace the identity; everything
// goes through Login and Logout.
package session
