// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the plutus
// command.
//
// Configuration is loaded from a single file specified by either the
// PLUTUS_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search. When neither is given the command runs on [Default].
//
// A configuration file looks like:
//
//	format: canonical        # or node
//	color: auto              # auto, always, never
//	schemas:
//	  - ${CONFIG_DIR}/contracts/escrow.yaml
//	  - common.jsonc         # relative to the config file
//	input:
//	  max_bytes: 1048576
//
// Variable expansion is performed on schema paths after loading:
// ${HOME}, ${CONFIG_DIR} and ${VAR:-default} patterns are expanded.
// Command-line flags override file values; environment variables other
// than those referenced by paths do not.
//
// Key exports:
//
//   - [Config] -- format, schema files, color mode, input limits
//   - [Default] -- the configuration used without a file
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
