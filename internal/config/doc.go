// Package config loads and merges diffreview configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (DIFFREVIEW_PROVIDER, DIFFREVIEW_PRO, DIFFREVIEW_FORMAT, etc.)
//  3. Config file ($XDG_CONFIG_HOME/diffreview/config.json)
//  4. Built-in defaults
//
// API keys are deliberately absent from [Config]. [LookupAPIKey] reads the
// vendor's environment variable at the moment a review is requested, and
// [SetField] refuses to write a key to disk.
package config
