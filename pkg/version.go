package pkg

import "fmt"

var (
	// Set with -ldflags at build time.
	Version         = "devel"
	GitRevision     = "devel"
	VersionRevision = fmt.Sprintf("%s-%s", Version, GitRevision)
)
