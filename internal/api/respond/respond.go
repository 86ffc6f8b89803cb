// Package respond padroniza a tradução de resultados de serviço em respostas HTTP.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"servilink/internal/domain"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/logger"
)

// ServiceResponse escreve data com successStatus quando err é nil; caso contrário
// traduz o erro via MapToHTTPStatus para o corpo {code, category, message}.
func ServiceResponse(w http.ResponseWriter, log logger.Logger, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if encErr := json.NewEncoder(w).Encode(data); encErr != nil {
				log.Error("Falha ao serializar resposta.", encErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.Error("Erro interno ao processar requisição.", err)
	} else {
		log.Debug("Requisição rejeitada.", map[string]interface{}{"status": status, "category": category})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// NoContent responde 204 ou traduz o erro.
func NoContent(w http.ResponseWriter, log logger.Logger, err error) {
	if err != nil {
		ServiceResponse(w, log, nil, err, http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DecodeJSON lê o corpo da requisição em dst. JSON malformado vira ValidationError.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewValidationError("Payload JSON inválido.")
	}
	return nil
}

// PathID lê um parâmetro de rota numérico e positivo.
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError(fmt.Sprintf("Identificador '%s' inválido.", raw))
	}
	return id, nil
}
