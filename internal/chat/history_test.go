package chat

import (
	"credable/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func msg(role model.ChatRole, content string) model.ChatMessage {
	return model.ChatMessage{Role: role, Content: content}
}

func TestBuildHistory(t *testing.T) {
	tests := []struct {
		name string
		log  []model.ChatMessage
		want []model.Turn
	}{
		{
			name: "empty log",
			log:  nil,
			want: []model.Turn{},
		},
		{
			name: "trailing question dropped",
			log: []model.ChatMessage{
				msg(model.RoleUser, "a"),
				msg(model.RoleAssistant, "b"),
				msg(model.RoleUser, "c"),
			},
			want: []model.Turn{{"a", "b"}},
		},
		{
			name: "two complete turns",
			log: []model.ChatMessage{
				msg(model.RoleUser, "a"),
				msg(model.RoleAssistant, "b"),
				msg(model.RoleUser, "c"),
				msg(model.RoleAssistant, "d"),
			},
			want: []model.Turn{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "only an unanswered question",
			log:  []model.ChatMessage{msg(model.RoleUser, "a")},
			want: []model.Turn{},
		},
		{
			name: "misaligned pair skipped",
			log: []model.ChatMessage{
				msg(model.RoleUser, "a"),
				msg(model.RoleUser, "b"),
				msg(model.RoleUser, "c"),
				msg(model.RoleAssistant, "d"),
			},
			want: []model.Turn{{"c", "d"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildHistory(tt.log))
		})
	}
}

func TestExtractReply_InvalidJSON(t *testing.T) {
	_, err := ExtractReply([]byte("not json"))
	assert.Error(t, err)

	got, err := ExtractReply([]byte(`null`))
	assert.NoError(t, err)
	assert.Equal(t, "", got)
}
