package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taskmind/go-task-client/api"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in a conversation. Server-assigned ids are positive;
// optimistic local entries carry negative ids until reconciled.
type Message struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SendResponse is the assistant endpoint's reply to one user message.
type SendResponse struct {
	ConversationID     int64  `json:"conversation_id"`
	UserMessageID      int64  `json:"user_message_id"`
	AssistantMessageID int64  `json:"assistant_message_id"`
	AssistantResponse  string `json:"assistant_response"`
}

// ConversationSummary is one row of the conversation listing.
type ConversationSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title,omitempty"`
}

type sendRequest struct {
	Content        string `json:"content"`
	ConversationID *int64 `json:"conversation_id,omitempty"`
}

// Service wraps the request pipeline with the assistant endpoints.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Send posts one user message. A zero conversationID starts a new
// conversation; the server assigns and returns the id.
func (s *Service) Send(ctx context.Context, userID int64, content string, conversationID int64) (*SendResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("message content is required")
	}

	req := sendRequest{Content: content}
	if conversationID != 0 {
		req.ConversationID = &conversationID
	}

	var resp SendResponse
	if err := s.client.Post(ctx, fmt.Sprintf("/api/%d/chat", userID), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Conversations lists the user's conversations.
func (s *Service) Conversations(ctx context.Context) ([]ConversationSummary, error) {
	var conversations []ConversationSummary
	if err := s.client.Get(ctx, "/conversations", &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// Messages fetches one conversation's messages.
func (s *Service) Messages(ctx context.Context, conversationID int64) ([]Message, error) {
	var resp struct {
		Messages []Message `json:"messages"`
	}
	if err := s.client.Get(ctx, fmt.Sprintf("/conversations/%d/with-messages", conversationID), &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}
