package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskmind/go-task-client/chat"
)

func newChatCmd(a *app) *cobra.Command {
	var conversationID int64

	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Send a message to the assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			userID, err := a.session.CurrentUserID()
			if err != nil {
				return err
			}

			conversation := chat.NewConversation(a.chat, userID)
			if conversationID != 0 {
				if err := conversation.Load(cmd.Context(), conversationID); err != nil {
					return err
				}
			}

			resp, err := conversation.Send(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(resp.AssistantResponse)
			fmt.Printf("\n(conversation %d)\n", resp.ConversationID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&conversationID, "conversation", 0, "continue an existing conversation")
	cmd.AddCommand(newChatHistoryCmd(a))
	return cmd
}

func newChatHistoryCmd(a *app) *cobra.Command {
	var conversationID int64

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show conversations, or one conversation's messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}

			if conversationID == 0 {
				conversations, err := a.chat.Conversations(cmd.Context())
				if err != nil {
					return err
				}
				if len(conversations) == 0 {
					fmt.Println("No conversations yet")
					return nil
				}
				for _, c := range conversations {
					title := c.Title
					if title == "" {
						title = "(untitled)"
					}
					fmt.Printf("%4d  %s\n", c.ID, title)
				}
				return nil
			}

			messages, err := a.chat.Messages(cmd.Context(), conversationID)
			if err != nil {
				return err
			}
			for _, m := range messages {
				fmt.Printf("%s: %s\n", m.Role, m.Content)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&conversationID, "conversation", 0, "conversation to show")
	return cmd
}
