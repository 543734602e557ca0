package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"learnhr.service/internal/core"
	"learnhr.service/internal/ports/network"
)

// maxPhotoBytes bounds the multipart form we are willing to parse.
const maxPhotoBytes = 10 << 20

type AttendanceHandler struct {
	Service  *core.AttendanceService
	Resolver network.AddressResolver
}

// CheckIn handles POST /attendance/check-in. The body is a multipart form
// with an employeeId field and an optional photo file.
func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, addr, photo, contentType, ok := h.parsePunch(w, r)
	if !ok {
		return
	}

	rec, err := h.Service.CheckIn(r.Context(), employeeID, time.Now().UTC(), addr, photo, contentType)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, rec)
}

// CheckOut handles POST /attendance/check-out with the same form shape.
func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, addr, photo, contentType, ok := h.parsePunch(w, r)
	if !ok {
		return
	}

	rec, err := h.Service.CheckOut(r.Context(), employeeID, time.Now().UTC(), addr, photo, contentType)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// History handles GET /attendance/{employeeId}?month=2006-01.
func (h *AttendanceHandler) History(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["employeeId"]
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	records, err := h.Service.History(r.Context(), employeeID, month)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"month": month, "records": records})
}

// parsePunch pulls the employee ID, client address and optional photo out of
// a check-in/out request. An unresolvable client address denies access rather
// than letting the punch through.
func (h *AttendanceHandler) parsePunch(w http.ResponseWriter, r *http.Request) (employeeID, addr string, photo []byte, contentType string, ok bool) {
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return "", "", nil, "", false
	}

	employeeID = r.FormValue("employeeId")
	if employeeID == "" {
		http.Error(w, "EmployeeID is required", http.StatusBadRequest)
		return "", "", nil, "", false
	}

	addr, err := h.Resolver.ClientAddress(r)
	if err != nil {
		if errors.Is(err, network.ErrAddressUndetermined) {
			http.Error(w, "Not on company network", http.StatusForbidden)
		} else {
			http.Error(w, "Service error processing request", http.StatusInternalServerError)
		}
		return "", "", nil, "", false
	}

	file, header, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()
		photo, err = io.ReadAll(file)
		if err != nil {
			http.Error(w, "Failed to read photo", http.StatusBadRequest)
			return "", "", nil, "", false
		}
		contentType = header.Header.Get("Content-Type")
	} else if !errors.Is(err, http.ErrMissingFile) {
		http.Error(w, "Invalid photo upload", http.StatusBadRequest)
		return "", "", nil, "", false
	}

	return employeeID, addr, photo, contentType, true
}
