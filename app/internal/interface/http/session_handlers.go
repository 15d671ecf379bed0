package http

import (
	"net/http"
)

func (a *API) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	s, err := a.sessionSvc.Start()
	if err != nil {
		a.log.Error().Err(err).Msg("start session")
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"token":      s.Token,
		"session_id": s.ID,
	})
}
