// Package config provides configuration management for hostq.
//
// The package uses a Provider interface to abstract configuration loading,
// with the primary implementation being filesystem-based configuration via
// YAML files.
//
// # Configuration Structure
//
// Configuration is structured as follows:
//
//	resolver:
//	  addresses:              # DNS servers, picked at random per query
//	    - 1.1.1.1:53
//	  timeout: 5s             # per-query timeout
//	history:
//	  path: ""                # history file; empty = ~/.hostq/history.yaml
//	  limit: 100              # retained entries, oldest evicted
//
// # Basic Usage
//
// Load configuration using the default path (~/.hostq/config.yaml):
//
//	cfg, err := config.New().Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Load configuration from a specific path:
//
//	provider := config.NewWithPath(filesys.OS(), "/etc/hostq/config.yaml")
//	cfg, err := provider.Load()
//
// # Configuration Validation
//
// The package performs validation of loaded configuration:
//   - At least one resolver address, each in host:port form
//   - Query timeout must be at least 1 second
//   - History limit must be at least 1
//
// # Default Configuration
//
// If no configuration file exists, the following defaults are used:
//   - Resolvers: 1.1.1.1:53
//   - Query timeout: 5 seconds
//   - History: ~/.hostq/history.yaml, 100 entries
//
// # Error Handling
//
// The package defines several error types:
//   - ErrInvalidConfig: Configuration validation failed
//   - ErrNoConfig: Configuration file not found (returns defaults)
//
// Once loaded, the Config struct should be treated as immutable. The
// package is designed to be extensible: additional configuration providers
// (environment variables, remote sources) can be added by implementing the
// Provider interface.
package config
