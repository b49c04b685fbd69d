package v1

import (
	"context"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/service"
	"github.com/gin-gonic/gin"
)

const msgPatientCreated = "Patient record successfully created"

type PatientService interface {
	Register(ctx context.Context, sub *patient.IntakeSubmission, caller service.Caller) (*patient.IntakeRecord, error)
	List(ctx context.Context, q patient.ListQuery, caller service.Caller) ([]*patient.IntakeRecord, error)
	Stats(ctx context.Context) (map[patient.Severity]int64, error)
}

type PatientHandler struct {
	svc PatientService
}

func NewPatientHandler(svc PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

func (h *PatientHandler) Register(c *gin.Context) {
	var sub patient.IntakeSubmission
	if !bindJSON(c, &sub) {
		return
	}

	rec, err := h.svc.Register(c.Request.Context(), &sub, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, rec, msgPatientCreated)
}

// Fetch lists intake records, newest arrival first, optionally narrowed by
// ?severity= and ?registeredBy=.
func (h *PatientHandler) Fetch(c *gin.Context) {
	q, err := patient.NewListQuery(c.Query("severity"), c.Query("registeredBy"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	records, err := h.svc.List(c.Request.Context(), q, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, records)
}

func (h *PatientHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, stats)
}
