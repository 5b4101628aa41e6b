// Package config loads environment-driven configuration structs.
//
// Configuration structs declare their environment bindings with `env` struct
// tags (see github.com/caarlos0/env). Each struct type is parsed once per
// process and cached, so independent components can load the same config
// type without coordinating.
//
//	type MongoConfig struct {
//		URL string `env:"MONGODB_URL,required"`
//	}
//
//	var cfg MongoConfig
//	config.MustLoad(&cfg)
package config
