// Package config loads service configuration from config.yml, .env files
// and environment variables using Viper.
//
// Files are discovered under cmd/<service>/ and config/ relative to the
// working directory. Environment variables override file values: the key
// DEMO_CLIENT_BASE_URL fills client.base_url, client.base.url and the other
// nestings of the same name.
//
// # Usage
//
//	var cfg Config
//	if err := config.LoadConfig("demo-client", &cfg); err != nil {
//	    return err
//	}
package config
