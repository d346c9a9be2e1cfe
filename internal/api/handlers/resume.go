package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/syneepse/ResumeFix/internal/auth"
	"github.com/syneepse/ResumeFix/internal/documents"
	"github.com/syneepse/ResumeFix/internal/extraction"
	"github.com/syneepse/ResumeFix/internal/logger"
	"github.com/syneepse/ResumeFix/internal/models"
	"github.com/syneepse/ResumeFix/internal/resumes"
	"github.com/syneepse/ResumeFix/internal/utils"
)

// multipart boundaries and headers on top of the file itself
const formOverhead = 1 << 20

type ResumeHandler struct {
	svc *resumes.Service
	log *logger.Logger
}

func NewResumeHandler(svc *resumes.Service, log *logger.Logger) *ResumeHandler {
	return &ResumeHandler{svc: svc, log: log.WithComponent("resume_handler")}
}

// UploadResponse is the body of a successful upload.
type UploadResponse struct {
	Message   string                `json:"message"`
	Resume    models.ResumeView     `json:"resume"`
	Extracted *extraction.Extracted `json:"extracted"`
}

// POST /resumes/upload
// Upload godoc
// @Summary Upload a resume
// @Description Upload a PDF, DOC or DOCX resume (≤10 MB). Text is extracted and structured by the AI model; the record is created even if the model fails.
// @Tags Resumes
// @Accept multipart/form-data
// @Produce json
// @Param pdf formData file true "Resume file"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} utils.ErrorPayload "Invalid file or unparseable document"
// @Failure 401 {object} utils.ErrorPayload
// @Failure 500 {object} utils.ErrorPayload
// @Router /resumes/upload [post]
func (h *ResumeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, resumes.MaxUploadSize+formOverhead)
	file, header, err := r.FormFile("pdf")
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			h.fail(w, resumes.ErrFileTooLarge, "")
		case errors.Is(err, http.ErrMissingFile):
			h.fail(w, resumes.ErrNoFile, "")
		default:
			utils.ErrorResponse(w, http.StatusBadRequest, "Invalid upload form")
		}
		return
	}
	defer file.Close()

	result, err := h.svc.Upload(r.Context(), id, resumes.UploadInput{
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         file,
	})
	if err != nil {
		h.fail(w, err, "Failed to upload or process resume")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, UploadResponse{
		Message:   "Resume uploaded",
		Resume:    result.Resume,
		Extracted: result.Extracted,
	})
}

// GET /resumes
// List godoc
// @Summary List resumes
// @Description All resumes of the caller, newest first, with skills as arrays.
// @Tags Resumes
// @Produce json
// @Success 200 {array} models.ResumeView
// @Failure 401 {object} utils.ErrorPayload
// @Failure 500 {object} utils.ErrorPayload
// @Router /resumes [get]
func (h *ResumeHandler) List(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	list, err := h.svc.List(r.Context(), id)
	if err != nil {
		h.fail(w, err, "Failed to fetch resumes")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// GET /resumes/{id}
// Get godoc
// @Summary Get a resume
// @Tags Resumes
// @Produce json
// @Param id path int true "Resume ID"
// @Success 200 {object} models.ResumeView
// @Failure 400 {object} utils.ErrorPayload "Invalid id"
// @Failure 404 {object} utils.ErrorPayload "Resume not found"
// @Router /resumes/{id} [get]
func (h *ResumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	resumeID, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Get(r.Context(), id, resumeID)
	if err != nil {
		h.fail(w, err, "Failed to fetch resume")
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

// GET /resumes/{id}/download
// Download godoc
// @Summary Download the stored resume file
// @Tags Resumes
// @Produce octet-stream
// @Param id path int true "Resume ID"
// @Success 200 {file} file
// @Failure 404 {object} utils.ErrorPayload "Resume or file not found"
// @Router /resumes/{id}/download [get]
func (h *ResumeHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	resumeID, ok := pathID(w, r)
	if !ok {
		return
	}

	dl, err := h.svc.Download(r.Context(), id, resumeID)
	if err != nil {
		h.fail(w, err, "Failed to download resume")
		return
	}
	defer dl.Body.Close()

	w.Header().Set("Content-Type", dl.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": dl.Filename}))
	if dl.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(dl.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, dl.Body); err != nil {
		h.log.Warn().Err(err).Uint("resume_id", resumeID).Msg("download interrupted")
	}
}

// DELETE /resumes/{id}
// Delete godoc
// @Summary Delete a resume and its stored file
// @Tags Resumes
// @Produce json
// @Param id path int true "Resume ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} utils.ErrorPayload "Resume not found"
// @Failure 500 {object} utils.ErrorPayload "Stored file could not be removed"
// @Router /resumes/{id} [delete]
func (h *ResumeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	resumeID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id, resumeID); err != nil {
		h.fail(w, err, "Failed to delete resume")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Resume deleted"})
}

// POST /resumes/rank
// Rank godoc
// @Summary Rank resumes against a job description (not implemented)
// @Tags Resumes
// @Produce json
// @Failure 501 {object} utils.ErrorPayload
// @Router /resumes/rank [post]
func (h *ResumeHandler) Rank(w http.ResponseWriter, r *http.Request) {
	utils.ErrorResponse(w, http.StatusNotImplemented, "Resume ranking is not available")
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	n, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || n == 0 {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid resume id")
		return 0, false
	}
	return uint(n), true
}

// fail maps service errors to responses. fallback is the message for unexpected failures.
func (h *ResumeHandler) fail(w http.ResponseWriter, err error, fallback string) {
	var parseErr *documents.ParseError

	switch {
	case errors.Is(err, resumes.ErrUnsupportedType):
		utils.ErrorResponse(w, http.StatusBadRequest, "Only PDF or Word documents (.pdf, .doc, .docx) are allowed")
	case errors.Is(err, resumes.ErrFileTooLarge):
		utils.ErrorResponse(w, http.StatusBadRequest, "File size exceeds 10MB limit")
	case errors.Is(err, resumes.ErrNoFile):
		utils.ErrorResponse(w, http.StatusBadRequest, "No file uploaded")
	case errors.As(err, &parseErr):
		if parseErr.Format == documents.FormatPDF {
			utils.ErrorResponse(w, http.StatusBadRequest, "Failed to parse PDF file")
		} else {
			utils.ErrorResponse(w, http.StatusBadRequest, "Failed to parse Word document. Please upload a valid DOC or DOCX file.")
		}
	case errors.Is(err, documents.ErrUnsupportedType):
		utils.ErrorResponse(w, http.StatusBadRequest, "Unsupported file type")
	case errors.Is(err, resumes.ErrAccountNotFound):
		utils.ErrorResponse(w, http.StatusUnauthorized, "Unknown account")
	case errors.Is(err, resumes.ErrNotFound):
		utils.ErrorResponse(w, http.StatusNotFound, "Resume not found")
	case errors.Is(err, resumes.ErrFileMissing):
		utils.ErrorResponse(w, http.StatusNotFound, "File not found on server")
	case errors.Is(err, resumes.ErrFileDelete):
		h.log.Error().Err(err).Msg("stored file removal failed")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete resume file from disk.", err.Error())
	default:
		h.log.Error().Err(err).Msg(fallback)
		utils.ErrorResponse(w, http.StatusInternalServerError, fallback, err.Error())
	}
}
