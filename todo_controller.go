package todoapp

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// TodoController serves the per-user to-do endpoints. Every route runs
// behind the Bearer middleware; the owner is always the token's user
// id, whatever the request body says.
type TodoController struct {
	Logger   Logger
	Repo     RepositoryManager
	Settings Config
}

func NewTodoController(repo RepositoryManager, cfg Config, logger Logger) *TodoController {
	if logger == nil {
		logger = defLogger{}
	}
	return &TodoController{
		Logger:   logger,
		Repo:     repo,
		Settings: cfg,
	}
}

func (c *TodoController) RegisterRoutes(r RouteRegistrar, protected router.MiddlewareFunc) {
	r.Get("/api/todoitems/todos", c.List, protected).SetName("todos.list")
	r.Post("/api/todoitems/todos", c.Create, protected).SetName("todos.create")
	r.Delete("/api/todoitems/todos/:id", c.Delete, protected).SetName("todos.delete")
}

// TodoItemResponse is the wire shape of a to-do item.
type TodoItemResponse struct {
	ID         int64  `json:"id"`
	Todo       string `json:"todo"`
	IsComplete bool   `json:"isComplete"`
}

// TodoCreatePayload carries the item text and completion flag. There
// is no owner field on purpose.
type TodoCreatePayload struct {
	Todo       string `json:"todo" form:"todo"`
	IsComplete bool   `json:"isComplete" form:"isComplete"`
}

func (p TodoCreatePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Todo, validation.Required, validation.Length(1, 500)),
	)
}

// List returns the caller's items, oldest first.
func (c *TodoController) List(ctx router.Context) error {
	owner, ok := c.ownerFromContext(ctx)
	if !ok {
		return ctx.JSON(router.StatusUnauthorized, map[string]any{"error": "invalid or expired token"})
	}

	items, err := c.Repo.Todos().ListByOwner(ctx.Context(), owner)
	if err != nil {
		return writeError(ctx, c.Logger, err)
	}

	out := make([]TodoItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, TodoItemResponse{
			ID:         item.ID,
			Todo:       item.Todo,
			IsComplete: item.IsComplete,
		})
	}

	return ctx.JSON(router.StatusOK, out)
}

// Create stores a new item for the caller and returns its id.
func (c *TodoController) Create(ctx router.Context) error {
	owner, ok := c.ownerFromContext(ctx)
	if !ok {
		return ctx.JSON(router.StatusUnauthorized, map[string]any{"error": "invalid or expired token"})
	}

	payload := TodoCreatePayload{}
	if err := ctx.Bind(&payload); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{"error": "invalid request body"})
	}

	if err := payload.Validate(); err != nil {
		if fields, ok := FormatValidationErrorToMap(err); ok {
			return ctx.JSON(router.StatusBadRequest, map[string]any{"errors": fields})
		}
		return ctx.JSON(router.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	item := &TodoItem{
		Todo:       payload.Todo,
		IsComplete: payload.IsComplete,
		UserID:     owner,
	}

	created, err := c.Repo.Todos().Create(ctx.Context(), item)
	if err != nil {
		return writeError(ctx, c.Logger, err)
	}

	return ctx.JSON(router.StatusOK, created.ID)
}

// Delete removes one of the caller's items by id. A missing id, or an
// id that belongs to someone else, is a 404.
func (c *TodoController) Delete(ctx router.Context) error {
	owner, ok := c.ownerFromContext(ctx)
	if !ok {
		return ctx.JSON(router.StatusUnauthorized, map[string]any{"error": "invalid or expired token"})
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{"error": "invalid todo id"})
	}

	deleted, err := c.Repo.Todos().DeleteByIDForOwner(ctx.Context(), id, owner)
	if err != nil {
		return writeError(ctx, c.Logger, err)
	}

	return ctx.JSON(router.StatusOK, deleted.ID)
}

func (c *TodoController) ownerFromContext(ctx router.Context) (uuid.UUID, bool) {
	claims, ok := GetRouterClaims(ctx, c.Settings.GetContextKey())
	if !ok {
		return uuid.Nil, false
	}
	owner, err := uuid.Parse(claims.UserID())
	if err != nil {
		return uuid.Nil, false
	}
	return owner, true
}
