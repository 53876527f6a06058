// Package config handles host configuration and the on-disk directory
// layout for cellar-ctl.
//
// Configuration is read from /etc/cellar/config.toml. A missing file is
// fine; built-in defaults apply:
//
//	state_dir       = "/var/lib/cellar"
//	store_dir       = "/var/lib/cellar/store"
//	profiles_dir    = "/var/lib/cellar/profiles"
//	default_profile = "default"
//
// The derived Paths value names the store, metadata db, and profiles
// directories that the rest of the program works against.
package config
