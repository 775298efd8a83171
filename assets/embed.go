package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// Sample drawings bundled with sketchpad.
//
//go:embed samples/*.json
var embeddedSamples embed.FS

var (
	loadSamplesOnce sync.Once
	loadSamplesErr  error

	sampleData = map[string][]byte{}
)

func loadSamples() {
	entries, err := fs.ReadDir(embeddedSamples, "samples")
	if err != nil {
		loadSamplesErr = err
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := embeddedSamples.ReadFile(path.Join("samples", name))
		if err != nil {
			loadSamplesErr = err
			return
		}
		sampleData[strings.TrimSuffix(name, ".json")] = data
	}
}

func ensureSamples() error {
	loadSamplesOnce.Do(loadSamples)
	return loadSamplesErr
}

// SampleNames lists the embedded sample drawings.
func SampleNames() []string {
	if err := ensureSamples(); err != nil {
		return nil
	}
	names := make([]string, 0, len(sampleData))
	for name := range sampleData {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sample returns a copy of the JSON document for the named sample.
func Sample(name string) ([]byte, error) {
	if err := ensureSamples(); err != nil {
		return nil, err
	}
	data, ok := sampleData[strings.TrimSuffix(name, ".json")]
	if !ok {
		return nil, fmt.Errorf("sample %q not embedded", name)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
