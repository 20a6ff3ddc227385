package prescription

import (
	"net/http"

	"hospicore/infras/otel"
	"hospicore/internal/domains/prescription/model"
	"hospicore/internal/domains/prescription/model/dto"
	"hospicore/internal/domains/prescription/service"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	"hospicore/shared/validator"
	"hospicore/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Prescription
	otel    otel.Otel
}

func New(service service.Prescription, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/prescriptions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePrescription)
		routerGroup.Get("/", handler.GetPrescriptions)
		routerGroup.Get("/{id}", handler.GetPrescriptionByID)
		routerGroup.Post("/{id}/fulfill", handler.FulfillPrescription)
		routerGroup.Post("/{id}/cancel", handler.CancelPrescription)
	})
}

// CreatePrescription records a new pending prescription.
// @Summary Create a new prescription
// @Tags Prescription
// @Accept json
// @Produce json
// @Param request body dto.CreatePrescriptionRequest true "Create Prescription Request"
// @Success 201 {object} response.Message "Prescription created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/prescriptions [post]
// @Security BearerAuth
func (handler *Handler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePrescription")
	defer scope.End()

	req := dto.CreatePrescriptionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create prescription")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Prescription created successfully")
}

// GetPrescriptions retrieves prescriptions with optional filtering and pagination.
// @Summary Get all prescriptions
// @Tags Prescription
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param patient_id query string false "Filter by patient ID"
// @Param drug_id query string false "Filter by drug ID"
// @Param status query string false "Filter by status (pending, fulfilled, cancelled)"
// @Success 200 {object} response.Data[dto.GetPrescriptionsResponse]
// @Router /v1/prescriptions [get]
// @Security BearerAuth
func (handler *Handler) GetPrescriptions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPrescriptions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	patientID := r.URL.Query().Get(model.FieldPatientID)
	drugID := r.URL.Query().Get(model.FieldDrugID)
	status := r.URL.Query().Get(model.FieldStatus)

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

	if drugID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDrugID,
			Operator: gDto.FilterOperatorEq,
			Value:    drugID,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	prescriptions, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get prescriptions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, prescriptions)
}

// GetPrescriptionByID retrieves a prescription by its ID.
// @Summary Get a prescription by ID
// @Tags Prescription
// @Produce json
// @Param id path string true "Prescription ID"
// @Success 200 {object} response.Data[dto.PrescriptionResponse]
// @Failure 404 {object} response.Error
// @Router /v1/prescriptions/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPrescriptionByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPrescriptionByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	prescription, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get prescription by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, prescription)
}

// FulfillPrescription dispenses a pending prescription and draws down stock.
// @Summary Fulfill a prescription
// @Tags Prescription
// @Produce json
// @Param id path string true "Prescription ID"
// @Success 200 {object} response.Data[dto.FulfillPrescriptionResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/prescriptions/{id}/fulfill [post]
// @Security BearerAuth
func (handler *Handler) FulfillPrescription(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FulfillPrescription")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Fulfill(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to fulfill prescription")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Prescription fulfilled successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// CancelPrescription cancels a pending prescription.
// @Summary Cancel a prescription
// @Tags Prescription
// @Produce json
// @Param id path string true "Prescription ID"
// @Success 200 {object} response.Message "Prescription cancelled successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/prescriptions/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelPrescription(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelPrescription")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel prescription")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Prescription cancelled successfully")
}
