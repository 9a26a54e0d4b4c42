// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"bukhara/internal/service"
)

// writeJSON writes data as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("write json response failed", "error", err)
	}
}

// writeData writes a successful result: data set, no error.
func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, service.NewResult(data, nil))
}

// writeError writes a failed result: null data and a message for the
// visitor.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, service.Result[any]{Error: msg})
}
