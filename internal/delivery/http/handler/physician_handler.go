package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"medpractice-backend/internal/domain/entity"
	"medpractice-backend/internal/usecase"
	"medpractice-backend/pkg/response"

	"github.com/gorilla/mux"
)

// criteriaParams is the closed set of query keys GetAllPhysicians accepts.
// Any other key makes the whole search invalid.
var criteriaParams = map[string]bool{
	"name":             true,
	"birthDate":        true,
	"specialtyCode":    true,
	"phoneNumber":      true,
	"fieldOfSpecialty": true,
	"practiceName":     true,
	"javascript":       true,
	"typescript":       true,
	"java":             true,
	"python":           true,
	"page":             true,
	"size":             true,
}

type PhysicianHandler struct {
	readUsecase usecase.PhysicianReadUsecase
}

func NewPhysicianHandler(readUsecase usecase.PhysicianReadUsecase) *PhysicianHandler {
	return &PhysicianHandler{
		readUsecase: readUsecase,
	}
}

func (h *PhysicianHandler) GetPhysician(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid physician ID", nil)
		return
	}

	physician, err := h.readUsecase.FindByID(r.Context(), uint(id), true)
	if err != nil {
		if errors.Is(err, usecase.ErrPhysicianNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to get physician")
		return
	}

	etag := fmt.Sprintf("%q", strconv.Itoa(physician.Version))
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	response.Success(w, http.StatusOK, "Physician retrieved successfully", physician)
}

func (h *PhysicianHandler) GetAllPhysicians(w http.ResponseWriter, r *http.Request) {
	criteria, pageable, ok := parseCriteria(r)
	if !ok {
		response.NotFound(w, "Invalid search criteria")
		return
	}

	page, err := h.readUsecase.Find(r.Context(), criteria, pageable)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoPhysiciansFound):
			response.NotFound(w, "No physicians found")
		case errors.Is(err, usecase.ErrInvalidSearchCriteria):
			response.NotFound(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to search physicians")
		}
		return
	}

	response.Success(w, http.StatusOK, "Physicians retrieved successfully", page)
}

func (h *PhysicianHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid physician ID", nil)
		return
	}

	file, err := h.readUsecase.FindFile(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, usecase.ErrFileNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to get file")
		return
	}

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}

func parseCriteria(r *http.Request) (*entity.SearchCriteria, entity.Pageable, bool) {
	query := r.URL.Query()
	for key := range query {
		if !criteriaParams[key] {
			return nil, entity.Pageable{}, false
		}
	}

	criteria := &entity.SearchCriteria{
		Name:             query.Get("name"),
		BirthDate:        query.Get("birthDate"),
		SpecialtyCode:    query.Get("specialtyCode"),
		PhoneNumber:      query.Get("phoneNumber"),
		FieldOfSpecialty: query.Get("fieldOfSpecialty"),
		PracticeName:     query.Get("practiceName"),
		JavaScript:       query.Get("javascript"),
		TypeScript:       query.Get("typescript"),
		Java:             query.Get("java"),
		Python:           query.Get("python"),
	}

	page := entity.DefaultPageNumber
	size := entity.DefaultPageSize
	if v := query.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, entity.Pageable{}, false
		}
		page = n
	}
	if v := query.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, entity.Pageable{}, false
		}
		size = n
	}

	return criteria, entity.NewPageable(page, size), true
}
