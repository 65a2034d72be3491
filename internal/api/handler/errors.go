package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scavengerhunt/internal/api/apierr"
	"github.com/mcoot/scavengerhunt/internal/model"
)

func writeError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// playerIDParam reads the {id} path variable
func playerIDParam(r *http.Request) (model.PlayerID, error) {
	id := mux.Vars(r)["id"]
	if id == "" {
		return "", apierr.NewInvalidRequestError("player id is required")
	}
	return model.PlayerID(id), nil
}
