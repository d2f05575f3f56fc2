package handler

import (
	"net/http"
	"strconv"

	"achiever/internal/model"
	"achiever/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// GET /api/tasks?date=YYYY-MM-DD
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), ownerID(c), c.Query("date"))
	if err != nil {
		fail(c, err, "failed to fetch tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req model.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), ownerID(c), req)
	if err != nil {
		fail(c, err, "failed to create task")
		return
	}
	c.JSON(http.StatusCreated, task)
}

// PATCH /api/tasks/:id/toggle
func (h *TaskHandler) Toggle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	task, err := h.tasks.Toggle(c.Request.Context(), ownerID(c), id)
	if err != nil {
		fail(c, err, "failed to toggle task")
		return
	}
	c.JSON(http.StatusOK, task)
}

// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), ownerID(c), id); err != nil {
		fail(c, err, "failed to delete task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
