// Package secret resolves secret material referenced from connection
// targets: strict ${VAR} environment expansion for endpoints and env:NAME
// references for credentials.
//
// Nothing in this package ever logs a resolved value.
package secret
