package web

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"bizkit/internal/application/orchestrators"
	"bizkit/internal/domain/todo"
)

type todoView struct {
	ID          string    `json:"id"`
	Tag         string    `json:"tag"`
	TagColor    string    `json:"tag_color"`
	Title       string    `json:"title"`
	Assignee    string    `json:"assignee"`
	AssigneeOrg string    `json:"assignee_org"`
	CreatorName string    `json:"creator_name"`
	CreatorOrg  string    `json:"creator_org"`
	DueDate     time.Time `json:"due_date"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"created_at"`
}

func todoListResponse(items []todo.Todo) map[string]any {
	views := make([]todoView, 0, len(items))
	for _, t := range items {
		views = append(views, todoView{
			ID:          t.ID,
			Tag:         t.Tag,
			TagColor:    t.TagColor,
			Title:       t.Title,
			Assignee:    t.Assignee,
			AssigneeOrg: t.AssigneeOrg,
			CreatorName: t.CreatorName,
			CreatorOrg:  t.CreatorOrg,
			DueDate:     t.DueDate,
			Done:        t.Done,
			CreatedAt:   t.CreatedAt,
		})
	}
	return map[string]any{"items": views}
}

// handleTodos handles GET/POST/PUT/DELETE for /api/todos.
// A PUT carrying only {id, done} toggles completion; a full body updates
// the record.
func handleTodos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	deps := orchestrators.TodoDeps{
		TodoStore:  stores.TodoStore,
		GenerateID: generateID,
		Now:        timeNow,
	}

	switch r.Method {
	case "GET":
		items, err := stores.TodoStore.ListByUser(ctx, sess.AccountID)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, todoListResponse(items))

	case "POST":
		release, ok := acquireView(w, "todos")
		if !ok {
			return
		}
		defer release()

		var input struct {
			Tag         string `json:"tag"`
			TagColor    string `json:"tag_color"`
			Title       string `json:"title"`
			Assignee    string `json:"assignee"`
			AssigneeOrg string `json:"assignee_org"`
			DueDate     string `json:"due_date"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		dueDate, err := parseDateParam(input.DueDate)
		if err != nil {
			http.Error(w, "due_date must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		items, err := orchestrators.ExecuteCreateTodo(ctx, orchestrators.CreateTodoInput{
			UserID:      sess.AccountID,
			Tag:         input.Tag,
			TagColor:    input.TagColor,
			Title:       input.Title,
			Assignee:    input.Assignee,
			AssigneeOrg: input.AssigneeOrg,
			CreatorName: sess.Name,
			DueDate:     dueDate,
		}, deps)
		if err != nil {
			writeMutationError(w, err, todoListResponse(items))
			return
		}
		writeJSON(w, http.StatusCreated, todoListResponse(items))

	case "PUT":
		release, ok := acquireView(w, "todos")
		if !ok {
			return
		}
		defer release()

		var input struct {
			ID          string  `json:"id"`
			Tag         *string `json:"tag,omitempty"`
			TagColor    *string `json:"tag_color,omitempty"`
			Title       *string `json:"title,omitempty"`
			Assignee    *string `json:"assignee,omitempty"`
			AssigneeOrg *string `json:"assignee_org,omitempty"`
			DueDate     *string `json:"due_date,omitempty"`
			Done        *bool   `json:"done,omitempty"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		// A body with only id and done is the checkbox toggle
		if input.Done != nil && input.Tag == nil && input.Title == nil &&
			input.Assignee == nil && input.DueDate == nil {
			items, err := orchestrators.ExecuteSetTodoDone(ctx, input.ID, *input.Done, deps)
			if err != nil {
				writeMutationError(w, err, todoListResponse(items))
				return
			}
			writeJSON(w, http.StatusOK, todoListResponse(items))
			return
		}

		existing, err := stores.TodoStore.GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			internalError(w, err)
			return
		}

		upd := orchestrators.UpdateTodoInput{
			TodoID:      input.ID,
			Tag:         existing.Tag,
			TagColor:    existing.TagColor,
			Title:       existing.Title,
			Assignee:    existing.Assignee,
			AssigneeOrg: existing.AssigneeOrg,
			DueDate:     existing.DueDate,
			Done:        existing.Done,
		}
		if input.Tag != nil {
			upd.Tag = *input.Tag
		}
		if input.TagColor != nil {
			upd.TagColor = *input.TagColor
		}
		if input.Title != nil {
			upd.Title = *input.Title
		}
		if input.Assignee != nil {
			upd.Assignee = *input.Assignee
		}
		if input.AssigneeOrg != nil {
			upd.AssigneeOrg = *input.AssigneeOrg
		}
		if input.DueDate != nil {
			dueDate, err := parseDateParam(*input.DueDate)
			if err != nil {
				http.Error(w, "due_date must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			upd.DueDate = dueDate
		}
		if input.Done != nil {
			upd.Done = *input.Done
		}

		items, err := orchestrators.ExecuteUpdateTodo(ctx, upd, deps)
		if err != nil {
			writeMutationError(w, err, todoListResponse(items))
			return
		}
		writeJSON(w, http.StatusOK, todoListResponse(items))

	case "DELETE":
		release, ok := acquireView(w, "todos")
		if !ok {
			return
		}
		defer release()

		var input struct {
			ID string `json:"id"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		items, err := orchestrators.ExecuteDeleteTodo(ctx, input.ID, deps)
		if err != nil {
			writeMutationError(w, err, todoListResponse(items))
			return
		}
		writeJSON(w, http.StatusOK, todoListResponse(items))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
