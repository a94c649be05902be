package chat

import "credable/internal/model"

// BuildHistory pairs the conversation log into completed turns. Messages are
// read two at a time from the start; a pair counts only when it is a user
// message followed by an assistant message, so a trailing unanswered user
// message never reaches the chatbot.
func BuildHistory(messages []model.ChatMessage) []model.Turn {
	history := []model.Turn{}
	for i := 0; i+1 < len(messages); i += 2 {
		q, a := messages[i], messages[i+1]
		if q.Role == model.RoleUser && a.Role == model.RoleAssistant {
			history = append(history, model.Turn{q.Content, a.Content})
		}
	}
	return history
}
