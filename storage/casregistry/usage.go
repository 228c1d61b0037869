package casregistry

// Usage restricts which programs should accept a given backend.
//
// Backends are linked at build time: a backend registers itself via init()
// and is enabled in a binary by importing its package.
type Usage uint8

const (
	// UsageCLI marks backends available to the catid CLI.
	UsageCLI Usage = 1 << iota
	// UsageDaemon marks backends available to catid-casd.
	UsageDaemon
)

func (u Usage) allows(want Usage) bool { return u&want != 0 }
