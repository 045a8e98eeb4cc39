package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/stocklot-app/stocklot-backend/pkg/errors"
	"github.com/stocklot-app/stocklot-backend/pkg/pagination"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// ParsePagination reads page/limit query parameters. Absent or malformed
// values fall back to defaults and out-of-range values are clamped, so
// listing never fails on pagination input.
func ParsePagination(r *http.Request) pagination.Params {
	params := pagination.Params{
		Page:  queryInt(r, "page", pagination.DefaultPage),
		Limit: queryInt(r, "limit", pagination.DefaultLimit),
	}
	return params.Normalize()
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return value
}

// ParseQueryDate reads a YYYY-MM-DD query parameter. With endOfDay set the
// returned time is pushed to the last instant of that day, so a date-only
// upper bound stays inclusive.
func ParseQueryDate(r *http.Request, key string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must use YYYY-MM-DD").
			WithDetails(map[string]any{"field": key})
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return &parsed, nil
}

// ParseUUID validates a path or query identifier.
func ParseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "identifier must be a valid uuid").
			WithDetails(map[string]any{"field": field})
	}
	return id, nil
}
