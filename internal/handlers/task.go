package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"taskmanager/internal/auth"
	dom "taskmanager/internal/domain"
	"taskmanager/internal/dto"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

const msgTaskNotFound = "Tarefa não encontrada"

type TaskHandler struct {
	svc    *service.TaskService
	logger *slog.Logger
}

func NewTaskHandler(svc *service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, logger: logger}
}

// List godoc
// @Summary      List the caller's tasks, newest first
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Pendente, Concluída or Todas"
// @Success      200     {array}   dto.TaskResponse
// @Failure      401     {object}  dto.MessageResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c), c.Query("status"))
	if err != nil {
		writeInternal(c, h.logger, "list tasks", err)
		return
	}
	c.JSON(http.StatusOK, tasksToResponses(list))
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskEnvelope
// @Failure      400   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.MessageResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindBody(c, h.logger, &req) {
		return
	}
	in, err := req.NewTask()
	if err != nil {
		h.writeTaskError(c, "create task", err)
		return
	}

	t, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), in)
	if err != nil {
		h.writeTaskError(c, "create task", err)
		return
	}
	c.JSON(http.StatusCreated, dto.TaskEnvelope{Message: "Tarefa criada com sucesso", Task: taskToResponse(t)})
}

// Update godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200   {object}  dto.TaskEnvelope
// @Failure      400   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if !bindBody(c, h.logger, &req) {
		return
	}
	patch, err := req.Patch()
	if err != nil {
		h.writeTaskError(c, "update task", err)
		return
	}

	t, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, patch)
	if err != nil {
		h.writeTaskError(c, "update task", err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskEnvelope{Message: "Tarefa atualizada com sucesso", Task: taskToResponse(t)})
}

// Complete godoc
// @Summary      Mark a task as completed
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskEnvelope
// @Failure      401  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Complete(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		h.writeTaskError(c, "complete task", err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskEnvelope{Message: "Tarefa concluída", Task: taskToResponse(t)})
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		h.writeTaskError(c, "delete task", err)
		return
	}
	writeMessage(c, http.StatusOK, "Tarefa excluída com sucesso")
}

func (h *TaskHandler) writeTaskError(c *gin.Context, op string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeMessage(c, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, service.ErrLimitExceeded):
		writeMessage(c, http.StatusBadRequest, "Limite máximo de tarefas ativas atingido")
	case errors.Is(err, service.ErrNotFound):
		writeMessage(c, http.StatusNotFound, msgTaskNotFound)
	default:
		writeInternal(c, h.logger, op, err)
	}
}

// parseID reads a numeric path parameter. Anything else can't name a task,
// so it is reported as not found.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 0 {
		writeMessage(c, http.StatusNotFound, msgTaskNotFound)
		return 0, false
	}
	return id, true
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}
}

func tasksToResponses(list []dom.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}
