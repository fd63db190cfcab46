package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/jjiisub/bboard/internal/errors"
	"github.com/jjiisub/bboard/internal/logger"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// required accepts whitespace-only strings; notblank does not
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// decodeValidate is the single input-validation stage: it runs before
// any service or storage call and turns every structural problem into
// the same InvalidInput error shape.
func decodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("failed to decode request body", "error", err)
		return errors.InvalidInput("Body is invalid json")
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request body validation failed", "error", err)
		return errors.InvalidInput("Required fields missing or invalid")
	}
	return nil
}

func writeErrorAndStatusCode(w http.ResponseWriter, err error) {
	if e, ok := err.(*errors.ErrorWithStatusCode); ok {
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	// default error is 500
	logger.Log.Error("internal error", "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// parseIntParam parses an integer parameter and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, errors.InvalidInput(fmt.Sprintf("invalid %s: must be an integer", paramName))
	}
	return val, nil
}

// parsePagination reads zero-based page/page_size query params,
// defaulting both to 0 (page_size 0 means the configured default).
func parsePagination(r *http.Request) (page, pageSize int, err error) {
	if raw := r.URL.Query().Get("page"); raw != "" {
		v, err := parseIntParam(raw, "page")
		if err != nil {
			return 0, 0, err
		}
		page = int(v)
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		v, err := parseIntParam(raw, "page_size")
		if err != nil {
			return 0, 0, err
		}
		pageSize = int(v)
	}
	return page, pageSize, nil
}
