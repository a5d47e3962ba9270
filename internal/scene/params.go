package scene

import (
	"github.com/mitchellh/mapstructure"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

// DecodeParams copies raw scene parameters onto dst, a pointer to the
// scene's params struct pre-filled with defaults. Unknown keys are errors.
func DecodeParams(scene string, raw map[string]any, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return diagnostics.Configf("params", scene, "%v", err)
	}
	if err := dec.Decode(raw); err != nil {
		return &diagnostics.Error{
			Kind:    diagnostics.Configuration,
			Op:      "params",
			Subject: scene,
			Detail:  "cannot decode scene parameters",
			Err:     err,
		}
	}
	return nil
}
