// Package config provides configuration parsing for svgmirror.
//
// The configuration is stored in svgmirror.json, next to the markup being
// mirrored or in any parent directory. This package handles loading, saving,
// and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "host": "svg-html",
//	  "viewBox": "0 0 100 100",
//	  "width": 200,
//	  "height": 200,
//	  "cascade": true,
//	  "positionalInsert": true,
//	  "logLevel": "info",
//	  "render": {
//	    "pretty": true,
//	    "indent": "  "
//	  },
//	  "metrics": {
//	    "namespace": "svgmirror"
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
//	fmt.Println("Host:", cfg.Host)
package config
