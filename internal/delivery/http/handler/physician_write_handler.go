package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"medpractice-backend/internal/delivery/dto"
	"medpractice-backend/internal/usecase"
	"medpractice-backend/pkg/response"
	"medpractice-backend/pkg/validator"

	"github.com/gorilla/mux"
)

// Uploads beyond this size are rejected while parsing the multipart form.
const maxFileUploadBytes = 10 << 20

type PhysicianWriteHandler struct {
	writeUsecase usecase.PhysicianWriteUsecase
	validator    *validator.CustomValidator
}

func NewPhysicianWriteHandler(writeUsecase usecase.PhysicianWriteUsecase, validator *validator.CustomValidator) *PhysicianWriteHandler {
	return &PhysicianWriteHandler{
		writeUsecase: writeUsecase,
		validator:    validator,
	}
}

func (h *PhysicianWriteHandler) CreatePhysician(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePhysicianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	physician, err := h.writeUsecase.Create(r.Context(), &req)
	if err != nil {
		// The wrapped message carries the offending value, so it is
		// handed to the client as-is.
		switch {
		case errors.Is(err, usecase.ErrNameExists), errors.Is(err, usecase.ErrPhoneNumberExists):
			response.UnprocessableEntity(w, err.Error())
		case errors.Is(err, usecase.ErrInvalidBirthDate):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create physician")
		}
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/physicians/%d", physician.ID))
	response.Success(w, http.StatusCreated, "Physician created successfully", physician)
}

func (h *PhysicianWriteHandler) UpdatePhysician(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid physician ID", nil)
		return
	}

	var req dto.UpdatePhysicianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	newVersion, err := h.writeUsecase.Update(r.Context(), uint(id), &req, r.Header.Get("If-Match"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrVersionRequired):
			response.PreconditionRequired(w, "If-Match header is required")
		case errors.Is(err, usecase.ErrVersionInvalid), errors.Is(err, usecase.ErrVersionOutdated):
			response.PreconditionFailed(w, err.Error())
		case errors.Is(err, usecase.ErrPhysicianNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, usecase.ErrNameExists), errors.Is(err, usecase.ErrPhoneNumberExists):
			response.UnprocessableEntity(w, err.Error())
		case errors.Is(err, usecase.ErrInvalidBirthDate):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update physician")
		}
		return
	}

	w.Header().Set("ETag", fmt.Sprintf("%q", strconv.Itoa(newVersion)))
	w.WriteHeader(http.StatusNoContent)
}

func (h *PhysicianWriteHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid physician ID", nil)
		return
	}

	if err := r.ParseMultipartForm(maxFileUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Form field 'file' is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to read uploaded file", nil)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	if err := h.writeUsecase.AddFile(r.Context(), uint(id), data, header.Filename, mimeType); err != nil {
		if errors.Is(err, usecase.ErrPhysicianNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to store file")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/physicians/file/%d", id))
	w.WriteHeader(http.StatusNoContent)
}

// DeletePhysician removes a physician with everything attached to it. The
// operation is idempotent, deleting an unknown ID still responds 204.
func (h *PhysicianWriteHandler) DeletePhysician(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid physician ID", nil)
		return
	}

	if _, err := h.writeUsecase.Delete(r.Context(), uint(id)); err != nil {
		response.InternalServerError(w, "Failed to delete physician")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
