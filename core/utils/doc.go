// Package utils provides loose type conversion helpers used when mapping
// untyped key/value data returned by game server queries onto typed fields.
package utils
