package embedded

import (
	_ "embed"
)

// Embed instrument catalog data files
//
//go:embed data/instrument_presets.yaml
var InstrumentPresetsYAML []byte
