package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/stocklot-app/stocklot-backend/pkg/errors"
	"github.com/stocklot-app/stocklot-backend/pkg/logger"
	"github.com/stocklot-app/stocklot-backend/pkg/pagination"
	"github.com/stocklot-app/stocklot-backend/pkg/types"
)

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.Envelope{Success: true, Data: data})
}

// WriteSuccessMessage is for mutations whose clients surface the message
// verbatim (create/delete confirmations).
func WriteSuccessMessage(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, types.Envelope{Success: true, Data: data, Message: message})
}

// WriteList writes a paginated collection response.
func WriteList(w http.ResponseWriter, data any, meta pagination.Meta) {
	writeJSON(w, http.StatusOK, types.Envelope{Success: true, Data: data, Pagination: &meta})
}

// WriteError maps an error to its envelope and status. Client errors (4xx)
// expose the typed message and any allowed details; server errors (5xx) keep
// the public message and carry the upstream error text in the error field.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	payload := types.Envelope{Message: meta.PublicMessage}
	if meta.HTTPStatus >= http.StatusInternalServerError {
		if cause := typed.Unwrap(); cause != nil {
			payload.Error = cause.Error()
		} else {
			payload.Error = typed.Error()
		}
	} else {
		if m := typed.Message(); m != "" {
			payload.Message = m
		}
		if meta.DetailsAllowed {
			if details := typed.Details(); details != nil {
				payload.Data = details
			}
		}
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)
		ctx = logg.WithFields(ctx, map[string]any{
			"error":         dump.TopMessage,
			"error_code":    dump.Code,
			"error_chain":   dump.Chain,
			"pg_code":       dump.PGCode,
			"pg_detail":     dump.PGDetail,
			"pg_message":    dump.PGMessage,
			"pg_table":      dump.PGTable,
			"pg_column":     dump.PGColumn,
			"pg_constraint": dump.PGConstraint,
		})
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
