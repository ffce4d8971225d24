/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically declaring
how configurations are built into nodes.

It lets hosts describe their screens with a fluent builder instead of hand-writing a
ports.RoutingResolver. This is particularly useful for headless runs, unit testing and
the CLI player.

Example usage:

	package main

	import (
		"github.com/aretw0/ribs/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Route("Home").View("content").Headless("analytics")
		b.Route("Dialog").View("card")

		// Anything else gets a single view named after the configuration.
		b.Default()

		// The resulting registry can be used as a ports.RoutingResolver
		resolver, _ := b.Build()
		// ... pass resolver to ribs.New(...)
	}
*/
package dsl
