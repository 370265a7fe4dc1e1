// Package config loads the publish settings from multiple sources (base and
// publish YAML profiles, environment variables, CLI flags) with precedence:
// CLI flags > publish YAML > base YAML > Environment variables > Defaults.
// The publish profile only overrides the keys it sets; absent keys inherit
// the base profile. It exposes strongly typed, validated settings to the
// rest of the application.
package config
