package graphql

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type response struct {
	Data   map[string]interface{} `json:"data,omitempty"`
	Errors gqlerror.List          `json:"errors,omitempty"`
}

type Handler struct {
	schema   *ast.Schema
	resolver *Resolver
	log      *logrus.Logger
}

func NewHandler(resolver *Resolver, log *logrus.Logger) (*Handler, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: Schema})
	if err != nil {
		return nil, fmt.Errorf("failed to load GraphQL schema: %w", err)
	}

	return &Handler{
		schema:   schema,
		resolver: resolver,
		log:      log,
	}, nil
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeResponse(w, http.StatusBadRequest, &response{
			Errors: gqlerror.List{gqlerror.Errorf("invalid request body")},
		})
		return
	}

	doc, err := parser.ParseQuery(&ast.Source{Input: req.Query})
	if err != nil {
		h.writeResponse(w, http.StatusOK, &response{Errors: toErrorList(err)})
		return
	}

	if errs := validator.Validate(h.schema, doc); len(errs) > 0 {
		h.writeResponse(w, http.StatusOK, &response{Errors: errs})
		return
	}

	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		h.writeResponse(w, http.StatusOK, &response{
			Errors: gqlerror.List{gqlerror.Errorf("operation %q not found", req.OperationName)},
		})
		return
	}

	if op.Operation == ast.Subscription {
		h.writeResponse(w, http.StatusOK, &response{
			Errors: gqlerror.List{gqlerror.Errorf("subscriptions are not supported")},
		})
		return
	}

	data := make(map[string]interface{})
	var errs gqlerror.List

	for _, selection := range op.SelectionSet {
		field, ok := selection.(*ast.Field)
		if !ok {
			continue
		}

		result, err := h.resolver.Resolve(r.Context(), op.Operation, field, req.Variables)
		if err != nil {
			errs = append(errs, &gqlerror.Error{
				Message: err.Error(),
				Path:    ast.Path{ast.PathName(field.Alias)},
			})
			data[field.Alias] = nil
			continue
		}
		data[field.Alias] = result
	}

	h.writeResponse(w, http.StatusOK, &response{Data: data, Errors: errs})
}

func (h *Handler) writeResponse(w http.ResponseWriter, statusCode int, resp *response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Warnf("Failed to encode GraphQL response: %+v", err)
	}
}

func toErrorList(err error) gqlerror.List {
	if list, ok := err.(gqlerror.List); ok {
		return list
	}
	if gqlErr, ok := err.(*gqlerror.Error); ok {
		return gqlerror.List{gqlErr}
	}
	return gqlerror.List{gqlerror.Errorf("%s", err.Error())}
}
