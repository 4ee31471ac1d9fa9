// Package configs embeds the starter files the installer writes into the
// runtime directory.
package configs

import "embed"

//go:embed dataset.json
var FS embed.FS
