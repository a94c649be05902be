package chat

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// replyFields lists the answer fields chatbot builds have used, in priority order
var replyFields = []string{"response", "reply", "answer", "message"}

// ExtractReply pulls the answer text out of a chatbot response body. A bare
// JSON string is the answer itself; otherwise the first non-empty string among
// replyFields wins. It returns "" with a nil error when the body is valid JSON
// but carries none of them, and an error when the body is not JSON at all.
func ExtractReply(body []byte) (string, error) {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return "", eris.Wrap(err, "decode chatbot response")
	}

	switch v := data.(type) {
	case string:
		return v, nil
	case map[string]any:
		for _, field := range replyFields {
			if s, ok := v[field].(string); ok && s != "" {
				return s, nil
			}
		}
	}
	return "", nil
}
