// Package config loads typed configuration structs from environment
// variables, with optional .env file support for development.
//
// Each configuration type is parsed at most once per process; later calls
// for the same type return the cached value, so configuration is immutable
// after startup.
//
//	type MailConfig struct {
//	    SenderEmail string `env:"SENDER_EMAIL,required"`
//	}
//
//	var cfg MailConfig
//	config.MustLoad(&cfg)
package config
