package global

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// Version is set at build time
var Version = "dev"
