package core

const (
	WayfarerName    = "Wayfarer"
	WayfarerVersion = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatOptions controls sampling for a single completion call.
// Zero values mean "leave it to the provider default".
type ChatOptions struct {
	Temperature float64
	MaxTokens   int
}

func ValidRole(role string) bool {
	switch role {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}
