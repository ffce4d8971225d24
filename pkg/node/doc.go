// Package node provides an in-memory node tree for hosts that have no real view
// system: headless runs, the CLI player and tests.
package node
