package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"medpractice-backend/internal/delivery/dto"
	"medpractice-backend/internal/delivery/http/middleware"
	"medpractice-backend/internal/domain/entity"
	"medpractice-backend/internal/usecase"
	"medpractice-backend/pkg/validator"

	"github.com/vektah/gqlparser/v2/ast"
)

var (
	errUnauthorized = errors.New("authentication required")
	errForbidden    = errors.New("insufficient permissions")
)

type Resolver struct {
	readUsecase  usecase.PhysicianReadUsecase
	writeUsecase usecase.PhysicianWriteUsecase
	validator    *validator.CustomValidator
}

func NewResolver(
	readUsecase usecase.PhysicianReadUsecase,
	writeUsecase usecase.PhysicianWriteUsecase,
	validator *validator.CustomValidator,
) *Resolver {
	return &Resolver{
		readUsecase:  readUsecase,
		writeUsecase: writeUsecase,
		validator:    validator,
	}
}

// Resolve dispatches one top-level selection to the matching usecase call.
func (r *Resolver) Resolve(ctx context.Context, op ast.Operation, field *ast.Field, vars map[string]interface{}) (interface{}, error) {
	if op == ast.Mutation {
		return r.resolveMutation(ctx, field, vars)
	}

	switch field.Name {
	case "physician":
		return r.physician(ctx, field, vars)
	case "physicians":
		return r.physicians(ctx, field, vars)
	default:
		return nil, fmt.Errorf("unknown query field %q", field.Name)
	}
}

func (r *Resolver) resolveMutation(ctx context.Context, field *ast.Field, vars map[string]interface{}) (interface{}, error) {
	switch field.Name {
	case "createPhysician":
		if err := requireRole(ctx, middleware.RoleAdmin, middleware.RoleUser); err != nil {
			return nil, err
		}
		return r.createPhysician(ctx, field, vars)
	case "updatePhysician":
		if err := requireRole(ctx, middleware.RoleAdmin, middleware.RoleUser); err != nil {
			return nil, err
		}
		return r.updatePhysician(ctx, field, vars)
	case "deletePhysician":
		if err := requireRole(ctx, middleware.RoleAdmin); err != nil {
			return nil, err
		}
		return r.deletePhysician(ctx, field, vars)
	default:
		return nil, fmt.Errorf("unknown mutation field %q", field.Name)
	}
}

func (r *Resolver) physician(ctx context.Context, field *ast.Field, vars map[string]interface{}) (interface{}, error) {
	id, err := idArgument(field, "id", vars)
	if err != nil {
		return nil, err
	}

	physician, err := r.readUsecase.FindByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, usecase.ErrPhysicianNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return physician, nil
}

func (r *Resolver) physicians(ctx context.Context, field *ast.Field, vars map[string]interface{}) (interface{}, error) {
	criteria, err := criteriaArgument(field, vars)
	if err != nil {
		return nil, err
	}

	page := entity.DefaultPageNumber
	size := entity.DefaultPageSize
	if v, ok, err := intArgument(field, "page", vars); err != nil {
		return nil, err
	} else if ok {
		page = v
	}
	if v, ok, err := intArgument(field, "size", vars); err != nil {
		return nil, err
	} else if ok {
		size = v
	}

	result, err := r.readUsecase.Find(ctx, criteria, entity.NewPageable(page, size))
	if err != nil {
		// An empty match set is a page with no content here, not an
		// error. Lists in GraphQL degrade to empty rather than null.
		if errors.Is(err, usecase.ErrNoPhysiciansFound) {
			return &dto.PhysicianPageResponse{Content: []dto.PhysicianResponse{}, Page: page, Size: size}, nil
		}
		return nil, err
	}
	return result, nil
}

func (r *Resolver) createPhysician(ctx context.Context, field *ast.Field, vars map[string]interface{}) (interface{}, error) {
	var req dto.CreatePhysicianRequest
	if err := inputArgument(field, "input", vars, &req); err != nil {
		return nil, err
	}
	if err := r.validator.Validate(&req); err != nil {
		return nil, fmt.Errorf("validation failed: %v", r.validator.FormatValidationErrors(err))
	}

	return r.writeUsecase.Create(ctx, &req)
}

func (r *Resolver) updatePhysician(ctx context.Context, field *ast.Field, vars map[string]interface{}) (interface{}, error) {
	id, err := idArgument(field, "id", vars)
	if err != nil {
		return nil, err
	}
	version, ok, err := intArgument(field, "version", vars)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("version argument is required")
	}

	var req dto.UpdatePhysicianRequest
	if err := inputArgument(field, "input", vars, &req); err != nil {
		return nil, err
	}
	if err := r.validator.Validate(&req); err != nil {
		return nil, fmt.Errorf("validation failed: %v", r.validator.FormatValidationErrors(err))
	}

	// The usecase expects the ETag form of the version token.
	return r.writeUsecase.Update(ctx, id, &req, fmt.Sprintf("%q", strconv.Itoa(version)))
}

func (r *Resolver) deletePhysician(ctx context.Context, field *ast.Field, vars map[string]interface{}) (interface{}, error) {
	id, err := idArgument(field, "id", vars)
	if err != nil {
		return nil, err
	}
	return r.writeUsecase.Delete(ctx, id)
}

func requireRole(ctx context.Context, allowed ...string) error {
	roles, ok := middleware.GetRolesFromContext(ctx)
	if !ok {
		return errUnauthorized
	}
	if !middleware.HasAnyRole(roles, allowed...) {
		return errForbidden
	}
	return nil
}

func argumentValue(field *ast.Field, name string, vars map[string]interface{}) (interface{}, bool, error) {
	arg := field.Arguments.ForName(name)
	if arg == nil {
		return nil, false, nil
	}
	value, err := arg.Value.Value(vars)
	if err != nil {
		return nil, false, err
	}
	if value == nil {
		return nil, false, nil
	}
	return value, true, nil
}

func idArgument(field *ast.Field, name string, vars map[string]interface{}) (uint, error) {
	value, ok, err := argumentValue(field, name, vars)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%s argument is required", name)
	}

	switch v := value.(type) {
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s argument", name)
		}
		return uint(id), nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("invalid %s argument", name)
		}
		return uint(v), nil
	case json.Number:
		id, err := strconv.ParseUint(v.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s argument", name)
		}
		return uint(id), nil
	default:
		return 0, fmt.Errorf("invalid %s argument", name)
	}
}

func intArgument(field *ast.Field, name string, vars map[string]interface{}) (int, bool, error) {
	value, ok, err := argumentValue(field, name, vars)
	if err != nil || !ok {
		return 0, false, err
	}

	switch v := value.(type) {
	case int64:
		return int(v), true, nil
	case float64:
		return int(v), true, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false, fmt.Errorf("invalid %s argument", name)
		}
		return int(n), true, nil
	default:
		return 0, false, fmt.Errorf("invalid %s argument", name)
	}
}

// inputArgument coerces an input object into a request DTO. Input field
// names match the DTO JSON tags, so a JSON round-trip does the mapping.
func inputArgument(field *ast.Field, name string, vars map[string]interface{}, target interface{}) error {
	value, ok, err := argumentValue(field, name, vars)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s argument is required", name)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("invalid %s argument", name)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("invalid %s argument", name)
	}
	return nil
}

func criteriaArgument(field *ast.Field, vars map[string]interface{}) (*entity.SearchCriteria, error) {
	value, ok, err := argumentValue(field, "criteria", vars)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	raw, ok := value.(map[string]interface{})
	if !ok {
		return nil, errors.New("invalid criteria argument")
	}

	str := func(key string) string {
		if s, ok := raw[key].(string); ok {
			return s
		}
		return ""
	}

	return &entity.SearchCriteria{
		Name:             str("name"),
		BirthDate:        str("birth_date"),
		SpecialtyCode:    str("specialty_code"),
		PhoneNumber:      str("phone_number"),
		FieldOfSpecialty: str("field_of_specialty"),
		PracticeName:     str("practice_name"),
		JavaScript:       str("javascript"),
		TypeScript:       str("typescript"),
		Java:             str("java"),
		Python:           str("python"),
	}, nil
}
