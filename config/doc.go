// Package config loads service configuration for skry applications.
//
// Configuration comes from three layers, later layers overriding earlier
// ones: a YAML config file, a .env file, and process environment variables.
// Services embed ServiceConfig in their own config struct and pass it to
// Load.
package config
