// Package export renders report data into downloadable document formats.
//
// Exporters form a fixed, statically registered set behind a stable
// Export(data) -> bytes contract. No external code is ever loaded.
package export

import "sort"

type Exporter interface {
	Name() string
	Export(data string) ([]byte, error)
}

type Registry struct {
	exporters map[string]Exporter
}

func NewRegistry(exporters ...Exporter) *Registry {
	r := &Registry{exporters: make(map[string]Exporter, len(exporters))}
	for _, e := range exporters {
		r.exporters[e.Name()] = e
	}
	return r
}

// Default returns the built-in exporter set.
func Default() *Registry {
	return NewRegistry(HTMLExporter{}, PDFExporter{}, XLSXExporter{})
}

func (r *Registry) Get(name string) (Exporter, bool) {
	e, ok := r.exporters[name]
	return e, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.exporters))
	for name := range r.exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
