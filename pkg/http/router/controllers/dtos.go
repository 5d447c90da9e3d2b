package controllers

import "github.com/lintang-b-s/sheltr/pkg/http/usecases"

type coordinateRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

func (c *coordinateRequest) toLatLon() usecases.LatLon {
	return usecases.LatLon{Latitude: *c.Latitude, Longitude: *c.Longitude}
}

type calculateRouteRequest struct {
	Start        *coordinateRequest `json:"start" validate:"required"`
	End          *coordinateRequest `json:"end" validate:"omitempty"`
	CostFunction string             `json:"cost_function" validate:"omitempty,max=32"`
}

type nearestSafeRouteRequest struct {
	coordinateRequest
	CostFunction string `json:"cost_function" validate:"omitempty,max=32"`
}

type predictRequest struct {
	coordinateRequest
}

type compareRoutesRequest struct {
	StartLat float64 `validate:"min=-90,max=90"`
	StartLon float64 `validate:"min=-180,max=180"`
	EndLat   float64 `validate:"min=-90,max=90"`
	EndLon   float64 `validate:"min=-180,max=180"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newErrorResponse(code, message string) errorResponse {
	var resp errorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	return resp
}
