package scenario

import (
	"bytes"
	"embed"
	"path"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFiles embed.FS

// Builtin returns the scenarios shipped with the simulator, sorted by file
// name.
func Builtin() []*Scenario {
	entries, err := builtinFiles.ReadDir("builtin")
	if err != nil {
		panic(err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	sort.Strings(names)

	out := make([]*Scenario, 0, len(names))
	for _, name := range names {
		data, err := builtinFiles.ReadFile(path.Join("builtin", name))
		if err != nil {
			panic(err)
		}

		s, err := Parse(bytes.NewReader(data))
		if err != nil {
			panic(err)
		}

		out = append(out, s)
	}

	return out
}
