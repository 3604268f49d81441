// Package games holds the static table of supported titles and the
// master-server projects that list servers for each of them.
//
// # Table
//
// The Table is an immutable value: Default returns the built-in table and
// callers inject it into the reconcile engine. Each Game carries the
// GameSpy parameters gslist needs (game name, game key, encryption type)
// and an ordered list of Projects.
//
// # Project selection
//
// ResolveProject applies a simple precedence rule: an explicitly requested
// project wins when it is valid for the game, otherwise the first declared
// project is used.
//
//	game, ok := games.Default().Lookup("bf2")
//	project, err := game.ResolveProject("") // bf2hub
package games
