// Package buildinfo carries the version stamped by the release build:
//
//	go build -ldflags "-X rotozoom/internal/buildinfo.Version=v1.2.0"
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short is the most specific of Version and Commit that was set.
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}

// String is Short plus the build date, when known.
func String() string {
	if Date == "" || Date == "unknown" {
		return Short()
	}
	return Short() + " (" + Date + ")"
}
