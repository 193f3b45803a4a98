package models

type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one turn of the companion transcript. The transcript is
// append-only; restoring a search history entry replaces it wholesale.
type ChatMessage struct {
	Role      ChatRole `json:"role"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp" doc:"Unix milliseconds"`
}
