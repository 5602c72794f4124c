// ABOUTME: Root g1sim package providing version information and package documentation
// ABOUTME: The collector lives in gc; heap, region, heapdump, and report support it

// Package g1sim simulates one collection cycle of a region-based
// mark-sweep-compact garbage collector modeled on G1. A synthetic heap is
// split into 16 equal regions, objects reachable from the roots are marked,
// the rest are swept, and survivors are compacted into regions the sweep
// emptied.
package g1sim

// Version is the semantic version of the g1sim tool
const Version = "0.1.0-dev"
