// Package config loads the server configuration from YAML.
//
//	listen: ":8080"
//	store:
//	  backend: badger   # memory | badger | bolt
//	  path: ./data
//	log:
//	  level: info
//	  format: text      # text | json
package config
