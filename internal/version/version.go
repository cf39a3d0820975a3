package version

// Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

// UserAgent returns the user agent sent to upstream APIs.
func UserAgent() string {
	return "teenfaith/" + Version
}
