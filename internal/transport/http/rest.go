package http

import (
	"encoding/json"
	"log"
	"net/http"

	"assessment-service/internal/app"
	"assessment-service/internal/domain"
)

// RESTHandler serves the read-back endpoints the portal's dashboard and
// results pages consume.
type RESTHandler struct {
	service *app.AttemptService
}

func NewRESTHandler(service *app.AttemptService) *RESTHandler {
	return &RESTHandler{service: service}
}

// ServeResults handles GET /results?userId=&sectionId=. Results come back
// in insertion order; presentation ordering is the client's concern.
func (h *RESTHandler) ServeResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	filter := domain.ResultFilter{
		UserID:    r.URL.Query().Get("userId"),
		SectionID: r.URL.Query().Get("sectionId"),
	}
	results, err := h.service.Results(r.Context(), filter)
	if err != nil {
		http.Error(w, "failed to read results", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"results": results})
}

// ServeSections handles GET /sections.
func (h *RESTHandler) ServeSections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sections, err := h.service.Sections(r.Context())
	if err != nil {
		http.Error(w, "failed to read sections", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"sections": sections})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}
