// Package config provides configuration parsing for the patterns server
// and CLI.
//
// Configuration is layered: built-in defaults, then an optional
// patterns.json file, then PATTERNS_* environment variables.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 8080,
//	    "renderTimeout": "200ms",
//	    "heartbeat": "30s",
//	    "shutdownTimeout": "10s",
//	    "live": true
//	  },
//	  "catalog": {
//	    "file": "./patterns.yaml",
//	    "latency": "300ms"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  },
//	  "tracing": {
//	    "endpoint": "localhost:4318",
//	    "insecure": true,
//	    "serviceName": "patterns"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// # Environment
//
// Every field has an override named after its path, for example
// PATTERNS_SERVER_PORT, PATTERNS_CATALOG_LATENCY or PATTERNS_LOG_LEVEL.
//
// # Usage
//
//	cfg, err := config.Resolve("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Address())
package config
