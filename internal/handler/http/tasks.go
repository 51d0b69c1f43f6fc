package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-keeper/internal/app"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoIdentity)
		return
	}

	list, err := h.services.TaskService.List(r.Context(), identity.UserID, r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, list, http.StatusOK)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoIdentity)
		return
	}

	var in models.TaskInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.Create(r.Context(), identity.UserID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.TaskResponse{Message: app.MsgTaskCreated, Data: task}, http.StatusCreated)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoIdentity)
		return
	}

	task, err := h.services.TaskService.Get(r.Context(), identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.TaskResponse{Data: task}, http.StatusOK)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoIdentity)
		return
	}

	var in models.TaskInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.Update(r.Context(), identity.UserID, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.TaskResponse{Message: app.MsgTaskUpdated, Data: task}, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoIdentity)
		return
	}

	id, err := h.services.TaskService.Delete(r.Context(), identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.DeleteTaskResponse{Message: app.MsgTaskDeleted, Data: models.DeletedTask{ID: id}}, http.StatusOK)
}
