// Package config loads YAML configuration files into typed structs.
//
// Configuration stays explicit: callers define a struct with yaml tags,
// point [Load] at a file, and get a typed value or an error. Nothing reads
// environment variables or ambient globals.
//
//	type appConfig struct {
//		Addr     string          `yaml:"addr"`
//		Database sqlite.Config   `yaml:"database"`
//	}
//
//	cfg, err := config.Load[appConfig]("config.yaml")
//
// Types that implement [Validator] are validated after decoding. To apply a
// file on top of programmatic defaults, fill the struct first and use
// [LoadInto], which only overwrites fields the file mentions.
package config
