package entry

import (
	"encoding/json"
	"net/http"

	"github.com/budgetboi/budgetboi/internal/utils"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Handler serves the CRUD and instance-query endpoints for one entry kind.
// The same implementation is mounted twice, once per collection.
type Handler struct {
	service Service
	kind    Kind
}

func NewHandler(service Service, kind Kind) *Handler {
	return &Handler{service: service, kind: kind}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	entries, err := h.service.List(r.Context(), h.kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debugf("Creating new %s entry", h.kind)
	w.Header().Set("Content-Type", "application/json")

	var e Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Add(r.Context(), h.kind, e)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["id"]

	var e Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if e.ID == "" || e.ID != id {
		http.Error(w, "Invalid entry id in request body", http.StatusBadRequest)
		return
	}
	ok, err := h.service.Update(r.Context(), h.kind, e)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}
	if err := json.NewEncoder(w).Encode(e); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ok, err := h.service.Delete(r.Context(), h.kind, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Instances(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	from, err := utils.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "Invalid 'from' date", http.StatusBadRequest)
		return
	}
	to, err := utils.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "Invalid 'to' date", http.StatusBadRequest)
		return
	}
	instances, err := h.service.InstancesInRange(r.Context(), h.kind, from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if r.URL.Query().Has("grouped") {
		if err := json.NewEncoder(w).Encode(GroupInstances(instances)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	if instances == nil {
		instances = []Instance{}
	}
	if err := json.NewEncoder(w).Encode(instances); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
