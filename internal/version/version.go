// internal/version/version.go
package version

// Version is the toolkit release string.
const Version = "0.2.0"
