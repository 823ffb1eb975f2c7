// Package treemendous holds project-wide metadata shared by the CLI and
// build tooling.
package treemendous

// Version is the released version of the treemendous module.
const Version = "v0.1.0"
