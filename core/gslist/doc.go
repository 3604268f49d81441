// Package gslist runs the gslist query tool as a subprocess to list servers
// from GameSpy master servers and to query single servers for their status.
//
// The tool is treated as opaque: it is invoked with game and project
// parameters taken from the games table and its standard output is parsed
// as one server per line, "host:port" optionally followed by a GameSpy
// \key\value block. A missing binary, a non-zero exit, a timeout or output
// without a single parsable server line are reported as failures wrapping
// reconcile.ErrDiscovery or reconcile.ErrProbe.
package gslist
