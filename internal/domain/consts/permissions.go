package consts

// Recommended permissions for different types of files and directories Harvester might create.
const (
	// ** World Readable **
	PermsGenericDir  = 0o755
	PermsListFile    = 0o644
	PermsLogFile     = 0o644

	// ** Private **
	PermsHomeProgDir = 0o700
	PermsCookieFile  = 0o600 // Exported browser cookies
)
