// Package version holds build metadata stamped in via -ldflags.
package version

// Version is the release version of the rolenav binary.
var Version = "dev"

// Commit is the Git hash of the rolenav binary file which is executing.
var Commit = "<unknown>"

// Date is the build timestamp.
var Date = "<unknown>"
