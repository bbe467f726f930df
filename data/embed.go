package data

import (
	_ "embed"
)

// Lookups holds the reference rows seeded into the lookup tables
//
//go:embed lookups.json
var Lookups []byte
