package drug

import (
	"net/http"

	"hospicore/infras/otel"
	"hospicore/internal/domains/drug/model"
	"hospicore/internal/domains/drug/model/dto"
	"hospicore/internal/domains/drug/service"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	"hospicore/shared/validator"
	"hospicore/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Drug
	otel    otel.Otel
}

func New(service service.Drug, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/drugs", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDrug)
		routerGroup.Get("/", handler.GetDrugs)
		routerGroup.Get("/{id}", handler.GetDrugByID)
		routerGroup.Patch("/{id}", handler.UpdateDrug)
		routerGroup.Delete("/{id}", handler.DeleteDrug)
	})
}

// CreateDrug registers a new drug in the formulary.
// @Summary Create a new drug
// @Tags Drug
// @Accept json
// @Produce json
// @Param request body dto.CreateDrugRequest true "Create Drug Request"
// @Success 201 {object} response.Message "Drug created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/drugs [post]
// @Security BearerAuth
func (handler *Handler) CreateDrug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDrug")
	defer scope.End()

	req := dto.CreateDrugRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create drug")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Drug created successfully")
}

// GetDrugs retrieves drugs with optional filtering and pagination.
// @Summary Get all drugs
// @Tags Drug
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param code query string false "Filter by drug code"
// @Param supplier query string false "Filter by supplier"
// @Success 200 {object} response.Data[dto.GetDrugsResponse]
// @Router /v1/drugs [get]
// @Security BearerAuth
func (handler *Handler) GetDrugs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDrugs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	code := r.URL.Query().Get(model.FieldCode)
	supplier := r.URL.Query().Get(model.FieldSupplier)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if code != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCode,
			Operator: gDto.FilterOperatorEq,
			Value:    code,
			Table:    model.TableName,
		})
	}

	if supplier != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSupplier,
			Operator: gDto.FilterOperatorEq,
			Value:    supplier,
			Table:    model.TableName,
		})
	}

	drugs, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get drugs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, drugs)
}

// GetDrugByID retrieves a drug by its ID.
// @Summary Get a drug by ID
// @Tags Drug
// @Produce json
// @Param id path string true "Drug ID"
// @Success 200 {object} response.Data[dto.DrugResponse]
// @Failure 404 {object} response.Error
// @Router /v1/drugs/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDrugByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDrugByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	drug, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get drug by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, drug)
}

// UpdateDrug updates a drug by its ID.
// @Summary Update a drug by ID
// @Tags Drug
// @Accept json
// @Produce json
// @Param id path string true "Drug ID"
// @Param request body dto.UpdateDrugRequest true "Update Drug Request"
// @Success 200 {object} response.Message "Drug updated successfully"
// @Failure 404 {object} response.Error
// @Router /v1/drugs/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDrug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDrug")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateDrugRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update drug")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Drug updated successfully")
}

// DeleteDrug deletes a drug by its ID. Drugs with pending prescriptions are kept.
// @Summary Delete a drug by ID
// @Tags Drug
// @Produce json
// @Param id path string true "Drug ID"
// @Success 200 {object} response.Message "Drug deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/drugs/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDrug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDrug")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete drug")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Drug deleted successfully")
}
