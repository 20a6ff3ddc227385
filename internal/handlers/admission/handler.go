package admission

import (
	"net/http"

	"hospicore/infras/otel"
	"hospicore/internal/domains/admission/model"
	"hospicore/internal/domains/admission/model/dto"
	"hospicore/internal/domains/admission/service"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	"hospicore/shared/validator"
	"hospicore/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Admission
	otel    otel.Otel
}

func New(service service.Admission, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admissions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.AdmitPatient)
		routerGroup.Get("/", handler.GetAdmissions)
		routerGroup.Get("/{id}", handler.GetAdmissionByID)
		routerGroup.Post("/{id}/discharge", handler.DischargePatient)
	})
}

// AdmitPatient admits a patient into a free room.
// @Summary Admit a patient
// @Tags Admission
// @Accept json
// @Produce json
// @Param request body dto.AdmitPatientRequest true "Admit Patient Request"
// @Success 201 {object} response.Data[dto.AdmissionResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admissions [post]
// @Security BearerAuth
func (handler *Handler) AdmitPatient(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdmitPatient")
	defer scope.End()

	req := dto.AdmitPatientRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Admit(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to admit patient")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Patient admitted successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetAdmissions retrieves admissions with optional filtering and pagination.
// @Summary Get all admissions
// @Tags Admission
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param patient_id query string false "Filter by patient ID"
// @Param room_id query string false "Filter by room ID"
// @Param status query string false "Filter by status (admitted, discharged, transferred)"
// @Success 200 {object} response.Data[dto.GetAdmissionsResponse]
// @Router /v1/admissions [get]
// @Security BearerAuth
func (handler *Handler) GetAdmissions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdmissions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	patientID := r.URL.Query().Get(model.FieldPatientID)
	roomID := r.URL.Query().Get(model.FieldRoomID)
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

	if roomID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
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

	admissions, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admissions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, admissions)
}

// GetAdmissionByID retrieves an admission by its ID.
// @Summary Get an admission by ID
// @Tags Admission
// @Produce json
// @Param id path string true "Admission ID"
// @Success 200 {object} response.Data[dto.AdmissionResponse]
// @Failure 404 {object} response.Error
// @Router /v1/admissions/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAdmissionByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdmissionByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	admission, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admission by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, admission)
}

// DischargePatient closes an admission and frees the room.
// @Summary Discharge a patient
// @Tags Admission
// @Produce json
// @Param id path string true "Admission ID"
// @Success 200 {object} response.Data[dto.AdmissionResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admissions/{id}/discharge [post]
// @Security BearerAuth
func (handler *Handler) DischargePatient(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DischargePatient")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Discharge(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to discharge patient")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Patient discharged successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
