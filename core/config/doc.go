// Package config loads the lister settings.
//
// Values come from a .env file in the given directory, then the process
// environment, then the `default` struct tags. Keys map to environment
// variables by section, e.g. lister.game is LISTER_GAME and
// gslist.binary is GSLIST_BINARY. Command line flags are applied on top by
// the cmd package.
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	spec := cfg.Lister.Spec()
package config
