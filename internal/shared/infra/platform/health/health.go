// Package health agrupa las comprobaciones de dependencias que exponen
// tanto /health como el servicio de salud gRPC.
package health

import (
	"context"
	"sort"
)

// Check comprueba una dependencia (base de datos, broker...).
type Check func(ctx context.Context) error

// Checks indexa las comprobaciones por nombre.
type Checks map[string]Check

// Result es el resultado de una comprobación.
type Result struct {
	Name string
	Err  error
}

// Run ejecuta todas las comprobaciones en orden de nombre.
func (cs Checks) Run(ctx context.Context) (healthy bool, results []Result) {
	names := make([]string, 0, len(cs))
	for name := range cs {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy = true
	for _, name := range names {
		err := cs[name](ctx)
		if err != nil {
			healthy = false
		}
		results = append(results, Result{Name: name, Err: err})
	}
	return healthy, results
}
