// Package config loads thinkstream settings from files and the environment.
//
// Files may be YAML (.yaml, .yml), TOML (.toml) or JSON (.json):
//
//	# thinkstream.yaml
//	chunk_prefix: "data: "
//	end_marker: "[DONE]"
//	open_tag: "<think>"
//	close_tag: "</think>"
//	events:
//	  enabled: true
//	  line_prefix: "data: "
//	  done_line: "[DONE]"
//
// Environment variables with the THINKSTREAM_ prefix override file values.
// See Config.LoadFromEnv for the list.
package config
