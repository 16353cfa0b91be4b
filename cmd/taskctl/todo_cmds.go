package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskmind/go-task-client/internal/utils"
	"github.com/taskmind/go-task-client/todos"
)

func newTodoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the todo list",
	}
	cmd.AddCommand(newTodoListCmd(a))
	cmd.AddCommand(newTodoAddCmd(a))
	cmd.AddCommand(newTodoEditCmd(a))
	cmd.AddCommand(newTodoDoneCmd(a))
	cmd.AddCommand(newTodoRmCmd(a))
	return cmd
}

func newTodoListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			list := todos.NewList(a.todos)
			if err := list.Fetch(cmd.Context()); err != nil {
				return fmt.Errorf("%s", list.Err())
			}
			items := list.Items()
			if len(items) == 0 {
				fmt.Println("No todos yet")
				return nil
			}
			for _, item := range items {
				printTodo(item)
			}
			return nil
		},
	}
}

func newTodoAddCmd(a *app) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			created, err := a.todos.Create(cmd.Context(), todos.CreateRequest{
				Title:       args[0],
				Description: description,
			})
			if err != nil {
				return err
			}
			printTodo(*created)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "optional description")
	return cmd
}

func newTodoEditCmd(a *app) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a todo's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var req todos.UpdateRequest
			if cmd.Flags().Changed("title") {
				req.Title = utils.Ptr(title)
			}
			if cmd.Flags().Changed("desc") {
				req.Description = utils.Ptr(description)
			}
			if req.Title == nil && req.Description == nil {
				return fmt.Errorf("nothing to update: pass --title and/or --desc")
			}

			updated, err := a.todos.Update(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			printTodo(*updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "desc", "", "new description")
	return cmd
}

func newTodoDoneCmd(a *app) *cobra.Command {
	var reopen bool

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a todo completed (or not, with --reopen)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			updated, err := a.todos.Toggle(cmd.Context(), id, !reopen)
			if err != nil {
				return err
			}
			printTodo(*updated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reopen, "reopen", false, "mark as not completed instead")
	return cmd
}

func newTodoRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.todos.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted todo %d\n", id)
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q", arg)
	}
	return id, nil
}

func printTodo(item todos.Todo) {
	mark := " "
	if item.Completed {
		mark = "x"
	}
	fmt.Printf("[%s] %4d  %s", mark, item.ID, item.Title)
	if item.Description != "" {
		fmt.Printf("  - %s", item.Description)
	}
	fmt.Println()
}
