package v1

import (
	"context"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/hospital"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/resource"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/service"
	"github.com/gin-gonic/gin"
)

type HospitalService interface {
	Register(ctx context.Context, sub *hospital.RegisterSubmission, caller service.Caller) (*hospital.Hospital, error)
	List(ctx context.Context) ([]*hospital.Hospital, error)
}

type ResourceService interface {
	Register(ctx context.Context, sub *resource.RegisterSubmission, caller service.Caller) (*resource.Resource, error)
	List(ctx context.Context) ([]*resource.Resource, error)
}

type RegistryHandler struct {
	hospitals HospitalService
	resources ResourceService
}

func NewRegistryHandler(hospitals HospitalService, resources ResourceService) *RegistryHandler {
	return &RegistryHandler{hospitals: hospitals, resources: resources}
}

func (h *RegistryHandler) RegisterHospital(c *gin.Context) {
	var sub hospital.RegisterSubmission
	if !bindJSON(c, &sub) {
		return
	}

	created, err := h.hospitals.Register(c.Request.Context(), &sub, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, created, "Hospital registered")
}

func (h *RegistryHandler) FetchHospitals(c *gin.Context) {
	hospitals, err := h.hospitals.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, hospitals)
}

func (h *RegistryHandler) RegisterResource(c *gin.Context) {
	var sub resource.RegisterSubmission
	if !bindJSON(c, &sub) {
		return
	}

	created, err := h.resources.Register(c.Request.Context(), &sub, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, created, "Resource registered")
}

func (h *RegistryHandler) FetchResources(c *gin.Context) {
	resources, err := h.resources.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, resources)
}
