package chat

import (
	"context"
	"sync"
	"time"
)

// Conversation tracks one assistant thread: the ordered message collection,
// loading and error state, and the conversation id once the server assigns
// one. The user's message is echoed optimistically and reconciled against
// the server's reply; a failed send rolls the optimistic entry back.
type Conversation struct {
	service *Service
	userID  int64

	lock     sync.RWMutex
	id       int64
	messages []Message
	loading  bool
	err      string
	tempSeq  int64
}

// NewConversation starts an empty thread for userID. The conversation id is
// fixed by the first successful send, or by Load.
func NewConversation(service *Service, userID int64) *Conversation {
	return &Conversation{service: service, userID: userID}
}

// ID returns the server-assigned conversation id, zero until the first
// successful send.
func (c *Conversation) ID() int64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.id
}

// nextTempID returns a client-assigned id for an optimistic entry. Server
// ids are positive, so negative ids can never collide.
func (c *Conversation) nextTempID() int64 {
	c.tempSeq--
	return c.tempSeq
}

// Load replaces the local collection with the server's messages for an
// existing conversation id.
func (c *Conversation) Load(ctx context.Context, conversationID int64) error {
	c.setLoading(true)
	messages, err := c.service.Messages(ctx, conversationID)

	c.lock.Lock()
	defer c.lock.Unlock()
	c.loading = false
	if err != nil {
		c.err = err.Error()
		return err
	}
	c.id = conversationID
	c.messages = messages
	c.err = ""
	return nil
}

// Send appends the user's message optimistically, posts it, and reconciles
// the reply: the temporary entry is replaced by the two server-confirmed
// messages (the echoed user message and the assistant's) in one update.
func (c *Conversation) Send(ctx context.Context, content string) (*SendResponse, error) {
	c.lock.Lock()
	temp := Message{
		ID:        c.nextTempID(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
	c.messages = append(c.messages, temp)
	c.loading = true
	conversationID := c.id
	c.lock.Unlock()

	resp, err := c.service.Send(ctx, c.userID, content, conversationID)

	c.lock.Lock()
	defer c.lock.Unlock()
	c.loading = false
	if err != nil {
		c.messages = Rollback(c.messages, temp.ID)
		c.err = err.Error()
		return nil, err
	}

	c.id = resp.ConversationID
	confirmed := []Message{
		{ID: resp.UserMessageID, Role: RoleUser, Content: content, CreatedAt: time.Now()},
		{ID: resp.AssistantMessageID, Role: RoleAssistant, Content: resp.AssistantResponse, CreatedAt: time.Now()},
	}
	c.messages = Reconcile(c.messages, temp.ID, confirmed)
	c.err = ""
	return resp, nil
}

// Messages returns a copy of the collection in order.
func (c *Conversation) Messages() []Message {
	c.lock.RLock()
	defer c.lock.RUnlock()
	messages := make([]Message, len(c.messages))
	copy(messages, c.messages)
	return messages
}

// Err returns the last recorded error message.
func (c *Conversation) Err() string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.err
}

// Loading reports whether a send or load is in flight.
func (c *Conversation) Loading() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.loading
}

func (c *Conversation) setLoading(loading bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.loading = loading
	c.err = ""
}
