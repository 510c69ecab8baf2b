// Package romantable loads the embedded ideograph-to-romanization table
// consumed by internal/identbimap. The table is an external, out-of-scope
// collaborator: this package only knows how to get a JSON asset off disk
// (or, here, out of the binary) and into a map[string]string; it has no
// opinion on how the registry uses that map.
package romantable

import (
	_ "embed"
	"fmt"

	"github.com/tidwall/gjson"
)

//go:embed table.json
var embedded []byte

// Load parses the embedded asset into the uppercase-hex-codepoint ->
// romanization map the identifier registry expects. Values may contain
// several space-separated alternatives; picking the first one is the
// registry's job, not this package's (§4.3).
func Load() (map[string]string, error) {
	return parse(embedded)
}

// parse walks a flat JSON object of the shape {"hexCodepoint": "roman ..."}
// with gjson.ForEach rather than unmarshaling into a struct, since the
// asset's key set is an open-ended, will-grow-over-time collection of hex
// strings rather than a fixed schema.
func parse(data []byte) (map[string]string, error) {
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, fmt.Errorf("romantable: asset is not a JSON object")
	}

	table := make(map[string]string)
	var walkErr error
	result.ForEach(func(key, value gjson.Result) bool {
		if !value.IsString() {
			walkErr = fmt.Errorf("romantable: value for key %q is not a string", key.String())
			return false
		}
		table[key.String()] = value.String()
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return table, nil
}
