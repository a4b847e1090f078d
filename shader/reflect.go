package shader

import (
	"regexp"
	"strings"

	"github.com/gogpu/fisheye/host"
)

var (
	entryRe   = regexp.MustCompile(`@(vertex|fragment)\s+fn\s+([A-Za-z_][A-Za-z0-9_]*)`)
	uniformRe = regexp.MustCompile(`var<uniform>\s+[A-Za-z_][A-Za-z0-9_]*\s*:\s*([A-Za-z_][A-Za-z0-9_]*)`)
	textureRe = regexp.MustCompile(`var\s+([A-Za-z_][A-Za-z0-9_]*)\s*:\s*texture_`)
	structRe  = regexp.MustCompile(`(?s)struct\s+([A-Za-z_][A-Za-z0-9_]*)\s*\{(.*?)\}`)
	memberRe  = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	commentRe = regexp.MustCompile(`//[^\n]*`)
)

// Reflection is the binding surface of a WGSL module.
type Reflection struct {
	// EntryPoints maps entry point names to their stage.
	EntryPoints map[string]host.Stage
	// Uniforms lists uniform block members in declaration order.
	// Members starting with an underscore are padding and omitted.
	Uniforms []string
	// Textures lists texture bindings.
	Textures []string
}

// HasEntry reports whether name is declared for the stage.
func (r Reflection) HasEntry(name string, stage host.Stage) bool {
	s, ok := r.EntryPoints[name]
	return ok && s == stage
}

// Names returns the uniforms followed by the textures.
func (r Reflection) Names() []string {
	names := make([]string, 0, len(r.Uniforms)+len(r.Textures))
	names = append(names, r.Uniforms...)
	return append(names, r.Textures...)
}

// Reflect extracts entry points and bindings from WGSL source. It is a
// lexical scan for the declarations this package relies on, not a parser;
// compile with ToSPIRV for full validation.
func Reflect(source string) Reflection {
	src := commentRe.ReplaceAllString(source, "")
	r := Reflection{EntryPoints: map[string]host.Stage{}}

	for _, m := range entryRe.FindAllStringSubmatch(src, -1) {
		stage := host.StageVertex
		if m[1] == "fragment" {
			stage = host.StageFragment
		}
		r.EntryPoints[m[2]] = stage
	}

	structs := map[string]string{}
	for _, m := range structRe.FindAllStringSubmatch(src, -1) {
		structs[m[1]] = m[2]
	}
	for _, m := range uniformRe.FindAllStringSubmatch(src, -1) {
		body, ok := structs[m[1]]
		if !ok {
			continue
		}
		for _, mm := range memberRe.FindAllStringSubmatch(body, -1) {
			if strings.HasPrefix(mm[1], "_") {
				continue
			}
			r.Uniforms = append(r.Uniforms, mm[1])
		}
	}

	for _, m := range textureRe.FindAllStringSubmatch(src, -1) {
		r.Textures = append(r.Textures, m[1])
	}
	return r
}
