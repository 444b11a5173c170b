package notify

// MessageType is the only message type the embedding host listens for.
const MessageType = "BLOCK_COMPLETION"

// Message is the completion notification sent to the embedding host.
// Score and Data are present only once the game is over.
type Message struct {
	Type      string          `json:"type"`
	BlockID   string          `json:"blockId"`
	Completed bool            `json:"completed"`
	Score     *int            `json:"score,omitempty"`
	Data      *CompletionData `json:"data,omitempty"`

	// RunID ties a start message to its game-over message in local logs.
	// It is not part of the host payload.
	RunID string `json:"-"`
}

type CompletionData struct {
	FinalScore int    `json:"finalScore"`
	GameType   string `json:"gameType"`
}

// Started builds the kick-off notification.
func Started(blockID, runID string) Message {
	return Message{
		Type:    MessageType,
		BlockID: blockID,
		RunID:   runID,
	}
}

// Finished builds the game-over notification carrying the final score.
func Finished(blockID, gameType, runID string, score int) Message {
	s := score
	return Message{
		Type:      MessageType,
		BlockID:   blockID,
		Completed: true,
		Score:     &s,
		Data:      &CompletionData{FinalScore: score, GameType: gameType},
		RunID:     runID,
	}
}

// Fields flattens the message for script hosts.
func (m Message) Fields() map[string]any {
	out := map[string]any{
		"type":      m.Type,
		"blockId":   m.BlockID,
		"completed": m.Completed,
	}
	if m.Score != nil {
		out["score"] = *m.Score
	}
	if m.Data != nil {
		out["data"] = map[string]any{
			"finalScore": m.Data.FinalScore,
			"gameType":   m.Data.GameType,
		}
	}
	return out
}
