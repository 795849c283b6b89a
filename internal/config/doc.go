// Package config manages application configuration loaded from environment
// variables and optional config files, validated at startup so that the rest
// of the application can rely on well-formed settings.
package config
