package api

import (
	"net/http"

	"github.com/causewaylab/crossing/core/model"
)

// cameras returns live checkpoint camera image links from LTA DataMall.
func (h *Handler) cameras(w http.ResponseWriter, r *http.Request) {
	if h.lta == nil {
		writeError(w, http.StatusServiceUnavailable, "LTA DataMall is not configured")
		return
	}
	checkpoint := model.CheckpointWoodlands
	if s := r.URL.Query().Get("checkpoint"); s != "" {
		var err error
		if checkpoint, err = model.ParseCheckpoint(s); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	cams, err := h.lta.Cameras(r.Context(), checkpoint)
	if err != nil {
		h.log.Warnf("fetch cameras: %v", err)
		writeError(w, http.StatusBadGateway, "failed to fetch camera feed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"checkpoint": checkpoint.String(),
		"cameras":    cams,
	})
}
