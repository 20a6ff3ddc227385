package consultation

import (
	"net/http"

	"hospicore/infras/otel"
	"hospicore/internal/domains/consultation/model"
	"hospicore/internal/domains/consultation/model/dto"
	"hospicore/internal/domains/consultation/service"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	"hospicore/shared/validator"
	"hospicore/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Consultation
	otel    otel.Otel
}

func New(service service.Consultation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/consultations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateConsultation)
		routerGroup.Get("/", handler.GetConsultations)
		routerGroup.Get("/{id}", handler.GetConsultationByID)
		routerGroup.Patch("/{id}", handler.UpdateConsultation)
		routerGroup.Delete("/{id}", handler.DeleteConsultation)
	})
}

// CreateConsultation records a new consultation.
// @Summary Create a new consultation
// @Tags Consultation
// @Accept json
// @Produce json
// @Param request body dto.CreateConsultationRequest true "Create Consultation Request"
// @Success 201 {object} response.Message "Consultation created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/consultations [post]
// @Security BearerAuth
func (handler *Handler) CreateConsultation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateConsultation")
	defer scope.End()

	req := dto.CreateConsultationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create consultation")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Consultation created successfully")
}

// GetConsultations retrieves consultations with optional filtering and pagination.
// @Summary Get all consultations
// @Tags Consultation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param patient_id query string false "Filter by patient ID"
// @Param staff_id query string false "Filter by staff ID"
// @Success 200 {object} response.Data[dto.GetConsultationsResponse]
// @Router /v1/consultations [get]
// @Security BearerAuth
func (handler *Handler) GetConsultations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConsultations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	patientID := r.URL.Query().Get(model.FieldPatientID)
	staffID := r.URL.Query().Get(model.FieldStaffID)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if patientID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPatientID,
			Operator: gDto.FilterOperatorEq,
			Value:    patientID,
			Table:    model.TableName,
		})
	}

	if staffID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStaffID,
			Operator: gDto.FilterOperatorEq,
			Value:    staffID,
			Table:    model.TableName,
		})
	}

	consultations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get consultations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, consultations)
}

// GetConsultationByID retrieves a consultation by its ID.
// @Summary Get a consultation by ID
// @Tags Consultation
// @Produce json
// @Param id path string true "Consultation ID"
// @Success 200 {object} response.Data[dto.ConsultationResponse]
// @Failure 404 {object} response.Error
// @Router /v1/consultations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetConsultationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConsultationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	consultation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get consultation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, consultation)
}

// UpdateConsultation updates a consultation by its ID.
// @Summary Update a consultation by ID
// @Tags Consultation
// @Accept json
// @Produce json
// @Param id path string true "Consultation ID"
// @Param request body dto.UpdateConsultationRequest true "Update Consultation Request"
// @Success 200 {object} response.Message "Consultation updated successfully"
// @Failure 404 {object} response.Error
// @Router /v1/consultations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateConsultation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateConsultation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateConsultationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update consultation")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Consultation updated successfully")
}

// DeleteConsultation deletes a consultation by its ID.
// @Summary Delete a consultation by ID
// @Tags Consultation
// @Produce json
// @Param id path string true "Consultation ID"
// @Success 200 {object} response.Message "Consultation deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/consultations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteConsultation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteConsultation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete consultation")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Consultation deleted successfully")
}
