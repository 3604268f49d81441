// Package persist encodes the server list of a game as a JSON document and
// stores it through a backend.
//
// # Document
//
//	{"version":1,"game":"bf2","updatedAt":"...","servers":[...]}
//
// Servers are sorted by address so unchanged lists produce identical files.
// Decode also accepts a bare JSON array of records.
//
// # Backends
//
//   - FileBackend writes <dir>/<game>-servers.json through a temporary file
//     in the same directory followed by a rename, so readers never see a
//     partial list and a crash leaves the previous file in place.
//   - ObjectBackend keeps the same document in an S3/MinIO bucket.
package persist
