package rest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/internal/domain"
	"github.com/docuchain/docuchain-backend/internal/service/document"
)

// documentService defines the minimal interface needed by DocumentHandler.
type documentService interface {
	Upload(ctx context.Context, input document.UploadInput) (*domain.Document, error)
	Get(ctx context.Context, documentID uuid.UUID) (*domain.Document, error)
	Download(ctx context.Context, documentID uuid.UUID) (*document.DownloadResult, error)
	List(ctx context.Context) (*document.Listing, error)
	Share(ctx context.Context, input document.ShareInput) (*domain.AccessGrant, error)
	Revoke(ctx context.Context, input document.RevokeInput) error
	Delete(ctx context.Context, documentID uuid.UUID) error
	Logs(ctx context.Context, input document.LogsInput) ([]domain.ActivityEntry, error)
	UserActivity(ctx context.Context, input document.ActivityInput) ([]domain.ActivityEntry, error)
}

// DocumentHandler serves document REST endpoints.
type DocumentHandler struct {
	svc            documentService
	log            *slog.Logger
	maxUploadBytes int64
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(svc documentService, logger *slog.Logger, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{
		svc:            svc,
		log:            logger.With("handler", "document"),
		maxUploadBytes: maxUploadBytes,
	}
}

type documentResponse struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	ContentAddress string          `json:"contentAddress"`
	OwnerID        string          `json:"ownerId"`
	LedgerTxHash   string          `json:"ledgerTxHash,omitempty"`
	IsPublic       bool            `json:"isPublic"`
	FileType       string          `json:"fileType,omitempty"`
	FileSize       int64           `json:"fileSize"`
	EncryptionKey  string          `json:"encryptionKey,omitempty"`
	AccessList     []grantResponse `json:"accessList,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type grantResponse struct {
	UserID    string    `json:"userId"`
	GrantedAt time.Time `json:"grantedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type listingResponse struct {
	Owned        []documentResponse `json:"owned"`
	SharedActive []documentResponse `json:"sharedActive"`
	PublicOthers []documentResponse `json:"publicOthers"`
}

// Days stays a pointer so an absent field means the default window while an
// explicit zero is rejected as out of range.
type shareRequest struct {
	UserID string `json:"userId"`
	Days   *int   `json:"days,omitempty"`
}

type activityResponse struct {
	ID         string                 `json:"id"`
	UserID     string                 `json:"userId"`
	DocumentID string                 `json:"documentId,omitempty"`
	Action     string                 `json:"action"`
	IPAddress  string                 `json:"ipAddress,omitempty"`
	UserAgent  string                 `json:"userAgent,omitempty"`
	Details    domain.ActivityDetails `json:"details,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// Upload handles POST /api/v1/documents. The request is multipart/form-data
// with a "file" part and optional "title", "description", "is_public" fields.
// When no title is given the file name is used.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}
	isPublic, _ := strconv.ParseBool(r.FormValue("is_public"))

	doc, err := h.svc.Upload(r.Context(), document.UploadInput{
		Title:       title,
		Description: r.FormValue("description"),
		IsPublic:    isPublic,
		FileType:    fileContentType(header.Header.Get("Content-Type")),
		Content:     content,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	// The key is released on get, and only to the owner. The upload
	// acknowledgement never carries it.
	resp := toDocumentResponse(doc)
	resp.EncryptionKey = ""
	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /api/v1/documents.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listingResponse{
		Owned:        toDocumentResponses(listing.Owned),
		SharedActive: toDocumentResponses(listing.SharedActive),
		PublicOthers: toDocumentResponses(listing.PublicOthers),
	})
}

// Get handles GET /api/v1/documents/{id}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	doc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

// Download handles GET /api/v1/documents/{id}/download.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.svc.Download(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", fileContentType(result.FileType))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Title}))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Content) //nolint:errcheck
}

// Share handles POST /api/v1/documents/{id}/share.
func (h *DocumentHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId")
		return
	}

	grant, err := h.svc.Share(r.Context(), document.ShareInput{
		DocumentID:   id,
		TargetUserID: targetID,
		Days:         req.Days,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGrantResponse(*grant))
}

// Revoke handles DELETE /api/v1/documents/{id}/share/{userId}.
func (h *DocumentHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	targetID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.svc.Revoke(r.Context(), document.RevokeInput{
		DocumentID:   id,
		TargetUserID: targetID,
	}); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/documents/{id}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Logs handles GET /api/v1/documents/{id}/logs.
func (h *DocumentHandler) Logs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	entries, err := h.svc.Logs(r.Context(), document.LogsInput{
		DocumentID: id,
		Limit:      limit,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeActivityEntries(w, entries)
}

// Activity handles GET /api/v1/activity, the caller's own audit trail.
func (h *DocumentHandler) Activity(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset")
	if !ok {
		return
	}

	entries, err := h.svc.UserActivity(r.Context(), document.ActivityInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeActivityEntries(w, entries)
}

func writeActivityEntries(w http.ResponseWriter, entries []domain.ActivityEntry) {
	out := make([]activityResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toActivityResponse(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": out})
}

// handleError maps service errors to HTTP statuses. Access denials are
// reported as not found so non-owners cannot probe for document existence.
func (h *DocumentHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("share duration must be between %d and %d days", domain.MinShareDays, domain.MaxShareDays))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrAccessDenied),
		errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusBadGateway, "content store unavailable")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func fileContentType(ct string) string {
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

func toDocumentResponse(d *domain.Document) documentResponse {
	resp := documentResponse{
		ID:             d.ID.String(),
		Title:          d.Title,
		Description:    d.Description,
		ContentAddress: d.ContentAddress,
		OwnerID:        d.OwnerID.String(),
		LedgerTxHash:   d.LedgerTxHash,
		IsPublic:       d.IsPublic,
		FileType:       d.FileType,
		FileSize:       d.FileSize,
		CreatedAt:      d.CreatedAt,
	}
	if len(d.EncryptionKey) > 0 {
		resp.EncryptionKey = base64.StdEncoding.EncodeToString(d.EncryptionKey)
	}
	for _, g := range d.AccessList {
		resp.AccessList = append(resp.AccessList, toGrantResponse(g))
	}
	return resp
}

func toDocumentResponses(docs []domain.Document) []documentResponse {
	out := make([]documentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, toDocumentResponse(&docs[i]))
	}
	return out
}

func toGrantResponse(g domain.AccessGrant) grantResponse {
	return grantResponse{
		UserID:    g.UserID.String(),
		GrantedAt: g.GrantedAt,
		ExpiresAt: g.ExpiresAt,
	}
}

func toActivityResponse(e domain.ActivityEntry) activityResponse {
	resp := activityResponse{
		ID:        e.ID.String(),
		UserID:    e.UserID.String(),
		Action:    e.Action.String(),
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
		Details:   e.Details,
		CreatedAt: e.CreatedAt,
	}
	if e.DocumentID != nil {
		resp.DocumentID = e.DocumentID.String()
	}
	return resp
}
