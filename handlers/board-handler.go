package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"kanban-project/microservices/board-service/dragdrop"
	"kanban-project/microservices/board-service/models"
	"kanban-project/microservices/board-service/services"
	"kanban-project/microservices/board-service/timetracker"

	"github.com/gorilla/mux"
)

type BoardHandler struct {
	service *services.BoardService
	drags   *services.DragService
	cache   *services.ElapsedCache
}

func NewBoardHandler(service *services.BoardService, drags *services.DragService, cache *services.ElapsedCache) *BoardHandler {
	return &BoardHandler{service: service, drags: drags, cache: cache}
}

func checkRole(r *http.Request, allowedRoles []string) error {
	userRole := r.Header.Get("Role")
	if userRole == "" {
		return fmt.Errorf("role is missing in request header")
	}

	for _, role := range allowedRoles {
		if role == userRole {
			return nil
		}
	}
	return fmt.Errorf("access forbidden: user does not have the required role")
}

func callerIdentity(r *http.Request) (string, models.Role) {
	return r.Header.Get("User-ID"), models.Role(r.Header.Get("Role"))
}

// writeError maps the service error kinds to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrPermissionDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrRemoteFailure):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type taskView struct {
	models.Task
	Elapsed string `json:"elapsed"`
}

type columnView struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Order int        `json:"order"`
	Tasks []taskView `json:"tasks"`
}

type boardView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Columns     []columnView    `json:"columns"`
	Members     []models.Member `json:"members"`
	DragState   dragdrop.State  `json:"dragState"`
}

func (h *BoardHandler) buildBoardView(project *models.Project, userID string) boardView {
	projectID := project.ID.Hex()
	now := time.Now()

	columns := make([]columnView, 0, len(project.Columns))
	for _, col := range project.Columns {
		tasks := make([]taskView, 0, len(col.Tasks))
		for _, task := range col.Tasks {
			elapsed, ok := h.cache.Elapsed(projectID, task.ID)
			if !ok {
				elapsed = timetracker.ForTask(task, now)
			}
			tasks = append(tasks, taskView{Task: task, Elapsed: elapsed})
		}
		columns = append(columns, columnView{ID: col.ID, Title: col.Title, Order: col.Order, Tasks: tasks})
	}

	return boardView{
		ID:          projectID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		Columns:     columns,
		Members:     project.Members,
		DragState:   h.drags.State(projectID, userID),
	}
}

func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{"manager"}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	var request struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Members     []models.Member `json:"members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	project, err := h.service.CreateBoard(r.Context(), request.Name, request.Description, request.Members)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(project)
}

func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{"manager", "member", "observer"}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}
	projectID := mux.Vars(r)["projectId"]
	userID, _ := callerIdentity(r)

	project, err := h.service.GetBoard(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	// Opening the board registers it with the 1-second refresh cycle.
	h.cache.Open(project)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.buildBoardView(project, userID))
}

// CloseBoard unregisters the board from the 1-second elapsed refresh cycle;
// clients call it when leaving the board view so the open set stays bounded.
func (h *BoardHandler) CloseBoard(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{"manager", "member", "observer"}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	h.cache.Close(mux.Vars(r)["projectId"])
	w.WriteHeader(http.StatusNoContent)
}

func (h *BoardHandler) AddColumn(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{"manager"}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}
	projectID := mux.Vars(r)["projectId"]
	_, role := callerIdentity(r)

	var request struct {
		Title string `json:"title"`
		Order int    `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	project, err := h.service.AddColumn(r.Context(), projectID, request.Title, request.Order, role)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cache.Open(project)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(project)
}

func (h *BoardHandler) ReorderColumns(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{"manager"}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}
	projectID := mux.Vars(r)["projectId"]
	_, role := callerIdentity(r)

	var request struct {
		ColumnIDs []string `json:"columnIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	project, err := h.service.ReorderColumns(r.Context(), projectID, request.ColumnIDs, role)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cache.Open(project)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(project)
}

func (h *BoardHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{"manager", "member"}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}
	projectID := mux.Vars(r)["projectId"]
	userID, role := callerIdentity(r)

	var request struct {
		ColumnID string `json:"columnId"`
		services.TaskInput
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.service.CreateTask(r.Context(), projectID, request.ColumnID, request.TaskInput, userID, role)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(task)
}

func (h *BoardHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{"manager", "member"}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}
	projectID := mux.Vars(r)["projectId"]
	userID, role := callerIdentity(r)

	var request struct {
		TaskID         string `json:"taskId"`
		SourceColumnID string `json:"sourceColumnId"`
		TargetColumnID string `json:"targetColumnId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	project, err := h.service.MoveTask(r.Context(), projectID, request.TaskID, request.SourceColumnID, request.TargetColumnID, userID, role)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cache.Open(project)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.buildBoardView(project, userID))
}

func (h *BoardHandler) StartTimer(w http.ResponseWriter, r *http.Request) {
	h.updateTimer(w, r, h.service.StartTimer)
}

func (h *BoardHandler) StopTimer(w http.ResponseWriter, r *http.Request) {
	h.updateTimer(w, r, h.service.StopTimer)
}

func (h *BoardHandler) updateTimer(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, projectID, taskID, userID string, role models.Role) (*models.Task, error)) {
	if err := checkRole(r, []string{"manager", "member"}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}
	vars := mux.Vars(r)
	userID, role := callerIdentity(r)

	task, err := op(r.Context(), vars["projectId"], vars["taskId"], userID, role)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

func (h *BoardHandler) BeginDrag(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{"manager", "member"}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}
	projectID := mux.Vars(r)["projectId"]
	userID, role := callerIdentity(r)

	var request struct {
		ItemID         string        `json:"itemId"`
		Kind           dragdrop.Kind `json:"kind"`
		SourceColumnID string        `json:"sourceColumnId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.drags.Begin(r.Context(), projectID, userID, role, request.ItemID, request.Kind, request.SourceColumnID); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.drags.State(projectID, userID))
}

func (h *BoardHandler) HoverDrag(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{"manager", "member"}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}
	projectID := mux.Vars(r)["projectId"]
	userID, _ := callerIdentity(r)

	var request struct {
		TargetID string `json:"targetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	h.drags.Hover(projectID, userID, request.TargetID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.drags.State(projectID, userID))
}

func (h *BoardHandler) DropDrag(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{"manager", "member"}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}
	projectID := mux.Vars(r)["projectId"]
	userID, role := callerIdentity(r)

	var request struct {
		TargetID string `json:"targetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	project, err := h.drags.Drop(r.Context(), projectID, userID, role, request.TargetID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cache.Open(project)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.buildBoardView(project, userID))
}

func (h *BoardHandler) CancelDrag(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{"manager", "member"}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}
	projectID := mux.Vars(r)["projectId"]
	userID, _ := callerIdentity(r)

	h.drags.Cancel(projectID, userID)
	w.WriteHeader(http.StatusNoContent)
}
