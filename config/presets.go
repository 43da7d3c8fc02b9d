/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

//go:embed preset.schema.json
var presetSchema []byte

// PresetPack is a named collection of tracing profiles shipped as a
// JSON document.
type PresetPack struct {
	PackVersion int                `json:"pack_version"`
	Presets     map[string]Tracing `json:"presets"`
}

// LoadPresets reads and validates a preset pack. Documents that do not
// conform to the pack schema are rejected before unmarshaling.
func LoadPresets(path string) (PresetPack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PresetPack{}, err
	}
	return ParsePresets(data)
}

// ParsePresets validates raw pack bytes against the embedded schema
// and decodes them.
func ParsePresets(data []byte) (PresetPack, error) {
	schemaLoader := gojsonschema.NewBytesLoader(presetSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return PresetPack{}, fmt.Errorf("validate preset pack: %w", err)
	}
	if !result.Valid() {
		return PresetPack{}, fmt.Errorf("preset pack invalid: %s", result.Errors()[0])
	}

	var pack PresetPack
	if err := json.Unmarshal(data, &pack); err != nil {
		return PresetPack{}, err
	}
	return pack, nil
}

// Names lists the presets in the pack, sorted.
func (p PresetPack) Names() []string {
	out := make([]string, 0, len(p.Presets))
	for name := range p.Presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Resolve returns the named preset layered over the defaults, so a
// preset only has to name the knobs it changes.
func (p PresetPack) Resolve(name string) (Tracing, bool) {
	preset, ok := p.Presets[name]
	if !ok {
		return Tracing{}, false
	}
	out := Defaults().Tracing
	mergeTracing(&out, &preset)
	return out, true
}
