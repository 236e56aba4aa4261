// Package config defines the generator settings and provides helpers to load,
// validate and save them in YAML format.
//
// The file is optional: without it every field takes its default and the
// command-line flags supply the rest.
package config
