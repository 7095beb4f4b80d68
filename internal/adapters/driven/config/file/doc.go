// Package file keeps the sitecms settings in a TOML file, by default
// ~/.sitecms/config.toml. Keys are flat ("cache.driver") in memory and
// nested tables on disk:
//
//	[api]
//	base_url = "http://localhost:5000"
//
//	[cache]
//	driver = "sqlite"
package file
