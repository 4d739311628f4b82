package version

const (
	AppName        = "Companion"
	AppDescription = "A synthetic living companion: moods, autonomous behaviors, and a progression ledger."
	AppVersion     = "0.1.0"
)
