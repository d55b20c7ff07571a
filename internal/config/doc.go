// Package config loads and validates draglist configuration.
//
// The configuration lives in draglist.json (or draglist.toml) in the
// working directory. Missing fields take the defaults from New, and
// DRAGLIST_PORT and DRAGLIST_LOG_LEVEL override the file through ApplyEnv.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "port": 8080,
//	    "readTimeout": "60s",
//	    "checkOrigin": "same"
//	  },
//	  "list": {
//	    "id": "fruit",
//	    "items": ["Apples", "Bananas", "Cherries"]
//	  },
//	  "snapshot": {
//	    "backend": "redis",
//	    "redisAddr": "localhost:6379"
//	  },
//	  "metrics": {"enabled": true},
//	  "log": {"level": "debug", "format": "json"}
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg.ServerConfig(), order)
package config
