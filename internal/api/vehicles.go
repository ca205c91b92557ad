package api

import (
	"context"
	"net/http"

	apphttp "quickload-admin/internal/common/http"
	"quickload-admin/internal/common/logger"
	"quickload-admin/internal/models"
)

type Vehicles struct {
	authed Requester
	logger logger.Logger
}

func (v *Vehicles) List(ctx context.Context) ([]models.Vehicle, error) {
	raw, err := v.authed.Get(ctx, "/vehicle/list", nil)
	if err != nil {
		return nil, err
	}
	return unwrap[[]models.Vehicle](raw, listEnvelope(keyVehicles), keyVehicles)
}

func (v *Vehicles) Get(ctx context.Context, id string) (models.Vehicle, error) {
	raw, err := v.authed.Get(ctx, "/vehicle/"+escape(id), nil)
	if err != nil {
		return models.Vehicle{}, err
	}
	return unwrap[models.Vehicle](raw, recordEnvelope(keyVehicle), keyVehicle)
}

func (v *Vehicles) Add(ctx context.Context, form apphttp.MultipartBody) (models.Vehicle, error) {
	raw, err := v.authed.SendMultipart(ctx, http.MethodPost, "/vehicle/add", form)
	if err != nil {
		return models.Vehicle{}, err
	}
	created, err := unwrap[models.Vehicle](raw, recordEnvelope(keyVehicle), keyVehicle)
	if err == nil {
		v.logger.Info("vehicle added", map[string]interface{}{"vehicleId": created.ID})
	}
	return created, err
}

func (v *Vehicles) Update(ctx context.Context, id string, form apphttp.MultipartBody) (models.Vehicle, error) {
	raw, err := v.authed.SendMultipart(ctx, http.MethodPut, "/vehicle/"+escape(id), form)
	if err != nil {
		return models.Vehicle{}, err
	}
	v.logger.Debug("vehicle updated", map[string]interface{}{"vehicleId": id})
	return unwrap[models.Vehicle](raw, recordEnvelope(keyVehicle), keyVehicle)
}
