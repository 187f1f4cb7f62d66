package responses

import (
	"context"
	"encoding/json"
	"net/http"

	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
	"github.com/angelmondragon/tradelink-backend/pkg/types"
)

// WriteSuccess writes the standard {"data": ...} envelope.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.SuccessEnvelope{Data: data})
}

// WriteError maps an application error onto the wire. Unknown errors become
// opaque internals; typed errors expose their code, public message, and
// whitelisted details.
func WriteError(ctx context.Context, w http.ResponseWriter, logg *logger.Logger, err error) {
	code := pkgerrors.CodeInternal
	var details any
	message := ""

	if typed := pkgerrors.As(err); typed != nil {
		code = typed.Code()
		message = typed.Message()
		details = typed.Details()
	}

	meta := pkgerrors.MetadataFor(code)
	if message == "" {
		message = meta.PublicMessage
	}
	if !meta.DetailsAllowed {
		details = nil
		message = meta.PublicMessage
	}

	if logg != nil {
		if meta.HTTPStatus >= http.StatusInternalServerError {
			entryCtx := logg.WithField(ctx, "error_dump", pkgerrors.Dump(err))
			logg.Error(entryCtx, "request failed", err)
		} else {
			logg.Warn(logg.WithField(ctx, "error_code", string(code)), message)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(meta.HTTPStatus)
	_ = json.NewEncoder(w).Encode(types.ErrorEnvelope{Error: types.APIError{
		Code:    string(code),
		Message: message,
		Details: details,
	}})
}
