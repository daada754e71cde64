package ws

// clientMessage is anything a debug client sends. Type selects the variant.
type clientMessage struct {
	Type    string `json:"type"`
	MobID   string `json:"mobId,omitempty"`
	Enabled bool   `json:"enabled,omitempty"`
}

// overlayMessage pushes one mob's overlay text to subscribed clients.
type overlayMessage struct {
	Type  string `json:"type"`
	Tick  uint64 `json:"tick"`
	MobID string `json:"mobId"`
	Text  string `json:"text"`
}

// ackMessage confirms a toggle request.
type ackMessage struct {
	Type    string `json:"type"`
	MobID   string `json:"mobId"`
	Enabled bool   `json:"enabled"`
	Known   bool   `json:"known"`
}
