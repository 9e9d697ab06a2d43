package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bizkit/internal/domain/todo"
)

// TodoStoreForOrchestrator defines the store interface needed by todo
// orchestrators.
type TodoStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (todo.Todo, error)
	Save(ctx context.Context, t todo.Todo) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]todo.Todo, error)
}

// TodoDeps holds dependencies for todo orchestrators.
type TodoDeps struct {
	TodoStore  TodoStoreForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// CreateTodoInput carries input for the create todo orchestrator.
type CreateTodoInput struct {
	UserID      string
	Tag         string
	TagColor    string
	Title       string
	Assignee    string
	AssigneeOrg string
	CreatorName string
	CreatorOrg  string
	DueDate     time.Time
}

// UpdateTodoInput carries input for the update todo orchestrator.
type UpdateTodoInput struct {
	TodoID      string
	Tag         string
	TagColor    string
	Title       string
	Assignee    string
	AssigneeOrg string
	DueDate     time.Time
	Done        bool
}

func refetchTodos(ctx context.Context, deps TodoDeps, userID string, opErr error) ([]todo.Todo, error) {
	items, err := deps.TodoStore.ListByUser(ctx, userID)
	if opErr != nil {
		return items, opErr
	}
	return items, err
}

// ExecuteCreateTodo creates a todo and returns the refreshed list.
// PRE: input.UserID is non-empty
// POST: the refreshed list is returned even when the write fails
func ExecuteCreateTodo(ctx context.Context, input CreateTodoInput, deps TodoDeps) ([]todo.Todo, error) {
	if input.UserID == "" {
		return nil, invalid(errors.New("user ID is required"))
	}

	t := todo.Todo{
		ID:          deps.GenerateID(),
		UserID:      input.UserID,
		Tag:         input.Tag,
		TagColor:    input.TagColor,
		Title:       input.Title,
		Assignee:    input.Assignee,
		AssigneeOrg: input.AssigneeOrg,
		CreatorName: input.CreatorName,
		CreatorOrg:  input.CreatorOrg,
		DueDate:     input.DueDate,
		CreatedAt:   deps.Now(),
	}

	if err := t.Validate(); err != nil {
		return refetchTodos(ctx, deps, input.UserID, invalid(err))
	}
	if err := deps.TodoStore.Save(ctx, t); err != nil {
		slog.Error("todo_event", "event", "create_failed", "todo_id", t.ID, "error", err)
		return refetchTodos(ctx, deps, input.UserID, err)
	}

	slog.Info("todo_event", "event", "todo_created", "todo_id", t.ID, "user_id", input.UserID)
	return refetchTodos(ctx, deps, input.UserID, nil)
}

// ExecuteUpdateTodo updates a todo and returns the refreshed list. A
// no-op edit skips the write entirely.
// PRE: input.TodoID names an existing todo
// POST: at most one write is issued; unchanged records issue none
func ExecuteUpdateTodo(ctx context.Context, input UpdateTodoInput, deps TodoDeps) ([]todo.Todo, error) {
	if input.TodoID == "" {
		return nil, invalid(errors.New("todo ID is required"))
	}

	existing, err := deps.TodoStore.GetByID(ctx, input.TodoID)
	if err != nil {
		return nil, err
	}

	updated := existing
	updated.Tag = input.Tag
	updated.TagColor = input.TagColor
	updated.Title = input.Title
	updated.Assignee = input.Assignee
	updated.AssigneeOrg = input.AssigneeOrg
	updated.DueDate = input.DueDate
	updated.Done = input.Done

	if err := updated.Validate(); err != nil {
		return refetchTodos(ctx, deps, existing.UserID, invalid(err))
	}

	if todosEqual(updated, existing) {
		return refetchTodos(ctx, deps, existing.UserID, nil)
	}

	if err := deps.TodoStore.Save(ctx, updated); err != nil {
		slog.Error("todo_event", "event", "update_failed", "todo_id", updated.ID, "error", err)
		return refetchTodos(ctx, deps, existing.UserID, err)
	}

	slog.Info("todo_event", "event", "todo_updated", "todo_id", updated.ID)
	return refetchTodos(ctx, deps, existing.UserID, nil)
}

// ExecuteSetTodoDone toggles only the done flag and returns the refreshed
// list. Setting the current value again is a no-op.
// PRE: todoID names an existing todo
// POST: no field other than Done changes
func ExecuteSetTodoDone(ctx context.Context, todoID string, done bool, deps TodoDeps) ([]todo.Todo, error) {
	if todoID == "" {
		return nil, invalid(errors.New("todo ID is required"))
	}

	existing, err := deps.TodoStore.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}

	if existing.Done == done {
		return refetchTodos(ctx, deps, existing.UserID, nil)
	}

	existing.Done = done
	if err := deps.TodoStore.Save(ctx, existing); err != nil {
		slog.Error("todo_event", "event", "set_done_failed", "todo_id", todoID, "error", err)
		return refetchTodos(ctx, deps, existing.UserID, err)
	}

	slog.Info("todo_event", "event", "todo_done_set", "todo_id", todoID, "done", done)
	return refetchTodos(ctx, deps, existing.UserID, nil)
}

// ExecuteDeleteTodo removes a todo and returns the refreshed list.
// PRE: todoID names an existing todo
// POST: the refreshed list is returned even when the delete fails
func ExecuteDeleteTodo(ctx context.Context, todoID string, deps TodoDeps) ([]todo.Todo, error) {
	if todoID == "" {
		return nil, invalid(errors.New("todo ID is required"))
	}

	existing, err := deps.TodoStore.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}

	if err := deps.TodoStore.Delete(ctx, todoID); err != nil {
		slog.Error("todo_event", "event", "delete_failed", "todo_id", todoID, "error", err)
		return refetchTodos(ctx, deps, existing.UserID, err)
	}

	slog.Info("todo_event", "event", "todo_deleted", "todo_id", todoID)
	return refetchTodos(ctx, deps, existing.UserID, nil)
}

func todosEqual(a, b todo.Todo) bool {
	return a.Tag == b.Tag &&
		a.TagColor == b.TagColor &&
		a.Title == b.Title &&
		a.Assignee == b.Assignee &&
		a.AssigneeOrg == b.AssigneeOrg &&
		a.DueDate.Equal(b.DueDate) &&
		a.Done == b.Done
}
