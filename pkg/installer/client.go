package installer

import "strings"

// ClientKind tells a browser visit apart from a scripted install.
type ClientKind int

const (
	Browser ClientKind = iota
	CommandLineClient
)

func (k ClientKind) String() string {
	switch k {
	case CommandLineClient:
		return "cli"
	default:
		return "browser"
	}
}

// Classify reports CommandLineClient when userAgent contains any of agents.
// Matching is case-sensitive; an empty userAgent is a Browser.
func Classify(userAgent string, agents []string) ClientKind {
	for _, agent := range agents {
		if agent != "" && strings.Contains(userAgent, agent) {
			return CommandLineClient
		}
	}
	return Browser
}
