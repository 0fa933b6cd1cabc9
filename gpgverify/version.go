// Package gpgverify provides project-wide constants
package gpgverify

// Version of the tool, overridden at link time for releases
var Version = "unknown"
