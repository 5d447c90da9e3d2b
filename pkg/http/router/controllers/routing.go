package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/sheltr/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/sheltr/pkg/http/usecases"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
	validator      *validator.Validate
	trans          ut.Translator
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	validate := validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &routingAPI{
		routingService: routingService,
		log:            log,
		validator:      validate,
		trans:          trans,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/health", api.health)
	group.GET("/segments", api.segments)
	group.POST("/predict", api.predict)
	group.POST("/calculate-route", api.calculateRoute)
	group.POST("/nearest-safe-route", api.nearestSafeRoute)
	group.GET("/compare-routes", api.compareRoutes)
	group.GET("/evacuation-centers", api.evacuationCenters)
	group.GET("/network", api.network)
}

// health
//
//	@Summary		service & data readiness
//	@Tags			routing
//	@Produce		json
//	@Router			/health [get]
//	@Success		200	{object}	usecases.HealthResponse
func (api *routingAPI) health(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": api.routingService.Health()}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// segments
//
//	@Summary		every road segment with its flood safety prediction, as GeoJSON
//	@Tags			routing
//	@Produce		json
//	@Router			/segments [get]
func (api *routingAPI) segments(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, api.routingService.Segments(), nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// predict
//
//	@Summary		flood safety of the road segment nearest a point
//	@Tags			routing
//	@Accept			json
//	@Produce		json
//	@Param			body	body	predictRequest	true	"latitude & longitude"
//	@Router			/predict [post]
//	@Success		200	{object}	usecases.PredictionResponse
//	@Failure		400	{object}	errorResponse
func (api *routingAPI) predict(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request predictRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	prediction, err := api.routingService.Predict(request.toLatLon())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": prediction}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// calculateRoute
//
//	@Summary		safest route between two points. without an end point the nearest safe point is the destination
//	@Tags			routing
//	@Accept			json
//	@Produce		json
//	@Param			body	body	calculateRouteRequest	true	"start, optional end, cost_function"
//	@Router			/calculate-route [post]
//	@Success		200	{object}	usecases.RouteResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
func (api *routingAPI) calculateRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request calculateRouteRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	var end *usecases.LatLon
	if request.End != nil {
		ll := request.End.toLatLon()
		end = &ll
	}
	route, err := api.routingService.CalculateRoute(request.Start.toLatLon(), end, request.CostFunction)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": route}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// nearestSafeRoute
//
//	@Summary		route from a point to its nearest safe point
//	@Tags			routing
//	@Accept			json
//	@Produce		json
//	@Param			body	body	nearestSafeRouteRequest	true	"latitude, longitude, cost_function"
//	@Router			/nearest-safe-route [post]
//	@Success		200	{object}	usecases.RouteResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
func (api *routingAPI) nearestSafeRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request nearestSafeRouteRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	route, err := api.routingService.NearestSafeRoute(request.toLatLon(), request.CostFunction)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": route}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// compareRoutes
//
//	@Summary		route between two points under every cost function
//	@Tags			routing
//	@Produce		json
//	@Param			start_lat	query	number	true	"start latitude"
//	@Param			start_lon	query	number	true	"start longitude"
//	@Param			end_lat		query	number	true	"end latitude"
//	@Param			end_lon		query	number	true	"end longitude"
//	@Router			/compare-routes [get]
//	@Success		200	{object}	usecases.ComparisonResponse
//	@Failure		400	{object}	errorResponse
func (api *routingAPI) compareRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request compareRoutesRequest
		err     error
	)

	query := r.URL.Query()

	request.StartLat, err = strconv.ParseFloat(query.Get("start_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("start_lat is required and must be a valid float"))
		return
	}
	request.StartLon, err = strconv.ParseFloat(query.Get("start_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("start_lon is required and must be a valid float"))
		return
	}
	request.EndLat, err = strconv.ParseFloat(query.Get("end_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("end_lat is required and must be a valid float"))
		return
	}
	request.EndLon, err = strconv.ParseFloat(query.Get("end_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("end_lon is required and must be a valid float"))
		return
	}
	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	cmp, err := api.routingService.CompareRoutes(
		usecases.LatLon{Latitude: request.StartLat, Longitude: request.StartLon},
		usecases.LatLon{Latitude: request.EndLat, Longitude: request.EndLon})
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": cmp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// evacuationCenters
//
//	@Summary		sampled evacuation centres
//	@Tags			routing
//	@Produce		json
//	@Router			/evacuation-centers [get]
//	@Success		200	{array}	usecases.EvacuationCenter
func (api *routingAPI) evacuationCenters(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": api.routingService.EvacuationCenters()}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// network
//
//	@Summary		connectivity & safety statistics of the road network
//	@Tags			routing
//	@Produce		json
//	@Router			/network [get]
//	@Success		200	{object}	engine.NetworkSummary
func (api *routingAPI) network(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": api.routingService.Network()}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
