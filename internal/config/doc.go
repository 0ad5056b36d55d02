// Package config provides configuration parsing for folio.
//
// The configuration is stored in folio.json at the site root.
// This package handles loading, saving, and validating configuration.
// Every field is optional; missing fields take the defaults from New.
//
// # Configuration File Structure
//
//	{
//	  "name": "folio",
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "shutdownTimeout": "10s"
//	  },
//	  "router": {
//	    "history": "path",
//	    "base": "/"
//	  },
//	  "profile": "profile.yaml",
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "folio"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
