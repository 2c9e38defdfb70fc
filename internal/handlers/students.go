package handlers

import (
	"errors"
	"net/http"

	applog "dsfs/internal/log"
	"dsfs/internal/validate"
	"dsfs/models"
)

func (h *Handlers) GetStudents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.students.State())
}

func (h *Handlers) RefreshStudents(w http.ResponseWriter, r *http.Request) {
	if err := h.students.Fetch(r.Context()); err != nil {
		writeError(w, r, http.StatusBadGateway, "refresh_failed", "students could not be reloaded")
		return
	}
	writeJSON(w, r, http.StatusOK, h.students.State())
}

// FundStudent validates the amount, submits the payment and credits the
// student's funding, total and supporter count together.
func (h *Handlers) FundStudent(w http.ResponseWriter, r *http.Request) {
	id, amount, ok := readFunding(w, r)
	if !ok {
		return
	}
	if _, found := h.students.Student(id); !found {
		writeError(w, r, http.StatusNotFound, "student_not_found", "no student with that id")
		return
	}

	txID := h.pay(r, "student:"+id, amount)
	if !h.students.Fund(id, amount) {
		writeError(w, r, http.StatusNotFound, "student_not_found", "no student with that id")
		return
	}
	student, _ := h.students.Student(id)
	writeJSON(w, r, http.StatusOK, fundResponse{TransactionID: txID, State: student})
}

// RegisterStudent forwards a registration. The directory is unchanged.
func (h *Handlers) RegisterStudent(w http.ResponseWriter, r *http.Request) {
	var req models.StudentRegistration
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.students.Register(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "submitted"})
	case errors.Is(err, validate.ErrRequired),
		errors.Is(err, validate.ErrInvalidGPA),
		errors.Is(err, validate.ErrInvalidAmount):
		writeError(w, r, http.StatusBadRequest, "invalid_registration", err.Error())
	default:
		applog.Error(r.Context(), "student registration failed", "error", err)
		writeError(w, r, http.StatusBadGateway, "registration_failed", "registration could not be submitted")
	}
}
