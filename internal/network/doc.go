// Package network contains abstractions for exchanging datagrams with other machines. It provides
// the dialer used to open short-lived, deadline-bounded UDP sockets towards a metrics daemon, and a
// small UDP server used to inspect the datagrams a client emits.
package network
