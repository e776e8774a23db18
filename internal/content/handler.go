package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shivraj416/egram/internal/content/model"
	"github.com/shivraj416/egram/internal/content/service"
	"github.com/shivraj416/egram/pkg/logger"
)

// Mailer sends the contact notification. Delivery is off the critical path;
// a nil Mailer disables it entirely.
type Mailer interface {
	Send(subject, body string) error
}

type Handler struct {
	Service        *service.Service
	Mailer         Mailer
	MaxUploadBytes int64
}

func NewHandler(svc *service.Service, mailer Mailer, maxUploadBytes int64) *Handler {
	return &Handler{Service: svc, Mailer: mailer, MaxUploadBytes: maxUploadBytes}
}

// --- public reads ---

func (h *Handler) GetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.Service.Info()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.InfoResponse{Info: info})
}

func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Service.Members()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MembersResponse{Members: members})
}

func (h *Handler) GetSchemes(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") != ""
	schemes, err := h.Service.Schemes(activeOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SchemesResponse{Schemes: schemes})
}

func (h *Handler) GetGallery(w http.ResponseWriter, r *http.Request) {
	images, err := h.Service.Gallery()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.GalleryResponse{Images: images})
}

// --- admin creates ---

func (h *Handler) CreateNotice(w http.ResponseWriter, r *http.Request) {
	var req model.CreateNoticeRequest
	if isForm(r) {
		r.ParseForm()
		req = model.CreateNoticeRequest{
			Title:       strings.TrimSpace(r.PostFormValue("title")),
			Description: strings.TrimSpace(r.PostFormValue("description")),
			Category:    strings.TrimSpace(r.PostFormValue("type")),
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	notice, err := h.Service.CreateNotice(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Status: "success", Info: notice})
}

func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMemberRequest
	if isForm(r) {
		r.ParseForm()
		req = model.CreateMemberRequest{
			Name:    strings.TrimSpace(r.PostFormValue("name")),
			Role:    strings.TrimSpace(r.PostFormValue("role")),
			Contact: strings.TrimSpace(r.PostFormValue("contact")),
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.Service.CreateMember(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Status: "success", Member: member})
}

func (h *Handler) CreateScheme(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSchemeRequest
	if isForm(r) {
		r.ParseForm()
		req = model.CreateSchemeRequest{
			Title:       strings.TrimSpace(r.PostFormValue("title")),
			Description: strings.TrimSpace(r.PostFormValue("description")),
			Start:       strings.TrimSpace(r.PostFormValue("start")),
			End:         strings.TrimSpace(r.PostFormValue("end")),
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	scheme, err := h.Service.CreateScheme(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Status: "success", Scheme: scheme})
}

// UploadImage accepts a multipart form with a single "image" file and stores
// it inline as a data URI.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		writeStatus(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Sugar.Errorf("Failed to read uploaded file: %v", err)
		writeStatus(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	image, err := h.Service.AddImage(data, imageMimeType(header, data))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Status: "success", Image: image})
}

// --- admin deletes ---

func (h *Handler) DeleteNotice(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteNotice(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Status: "success"})
}

func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteMember(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Status: "success"})
}

func (h *Handler) DeleteScheme(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteScheme(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Status: "success"})
}

func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteImage(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Status: "success"})
}

// --- public contact ---

// SubmitContact always answers HTTP 200; its callers expect a success flag
// in the body rather than a status code.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req model.ContactRequest
	if isForm(r) {
		r.ParseForm()
		req = model.ContactRequest{
			Name:    strings.TrimSpace(r.PostFormValue("name")),
			Email:   strings.TrimSpace(r.PostFormValue("email")),
			Message: strings.TrimSpace(r.PostFormValue("message")),
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusOK, model.ContactResponse{Success: false, Message: "Invalid request body"})
		return
	}

	msg, err := h.Service.SubmitMessage(req)
	if err != nil {
		writeJSON(w, http.StatusOK, model.ContactResponse{Success: false, Message: err.Error()})
		return
	}

	if h.Mailer != nil {
		// Fire and forget: mail failure must not affect the submission.
		go func() {
			subject := fmt.Sprintf("New contact message from %s", msg.Name)
			body := fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message)
			if err := h.Mailer.Send(subject, body); err != nil {
				logger.Sugar.Errorf("Failed to send contact notification: %v", err)
			}
		}()
	}

	writeJSON(w, http.StatusOK, model.ContactResponse{Success: true, Message: "Message received"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- helpers ---

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.Contains(ct, "application/x-www-form-urlencoded")
}

// imageMimeType prefers the declared content type and falls back to sniffing
// the bytes when the browser sent none.
func imageMimeType(header *multipart.FileHeader, data []byte) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.StatusResponse{Status: "error", Message: message})
}

func writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeStatus(w, http.StatusBadRequest, verr.Error())
		return
	}
	logger.Sugar.Errorf("Request failed: %v", err)
	writeStatus(w, http.StatusInternalServerError, "Internal server error")
}
