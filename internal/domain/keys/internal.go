package keys

// Internal Viper keys, set by verification rather than the user.
const (
	Concurrency string = "internal-concurrency"
)
