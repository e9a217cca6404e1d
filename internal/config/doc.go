// Package config loads tooltip project configuration.
//
// The configuration lives in tooltip.json or tooltip.yaml at the project
// root. Both formats share one schema:
//
//	tooltip:
//	  placement: bottom-start
//	  offset: 8
//	  hoverDelay: 100ms
//	  showArrow: true
//	server:
//	  host: localhost
//	  port: 8080
//	log:
//	  level: info
//	  format: text
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    errors.Print(os.Stderr, err)
//	    os.Exit(1)
//	}
//	c := tooltip.New(host, tooltip.WithConfig(cfg.TooltipConfig()))
package config
