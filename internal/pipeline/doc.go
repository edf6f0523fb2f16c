// internal/pipeline/doc.go

// Package pipeline wires the genome analysis steps together: fetch taxonomy
// and proteins for an assembly, fragment proteins into peptides, classify
// peptides by LCA lookup, and aggregate statistics. Every substantive step
// runs an external tool; this package only moves bytes between them, caches
// step outputs in the assembly workspace, and regenerates downstream
// artifacts when an upstream one was rebuilt.
package pipeline
