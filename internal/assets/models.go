package assets

import _ "embed"

// ModelsData holds the raw JSON catalog of supported LLM providers.
//
//go:embed models.json
var ModelsData []byte
