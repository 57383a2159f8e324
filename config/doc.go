// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Provider credentials can be overridden from the environment so they stay
// out of the checked-in file.
package config
