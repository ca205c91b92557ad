package api

import (
	"context"
	"net/http"
	"net/url"

	apphttp "quickload-admin/internal/common/http"
	"quickload-admin/internal/common/logger"
	"quickload-admin/internal/models"
)

// Products covers both products and product owners (shops).
type Products struct {
	authed Requester
	logger logger.Logger
}

func (p *Products) List(ctx context.Context) ([]models.Product, error) {
	raw, err := p.authed.Get(ctx, "/product/list", nil)
	if err != nil {
		return nil, err
	}
	return unwrap[[]models.Product](raw, listEnvelope(keyProducts), keyProducts)
}

func (p *Products) Get(ctx context.Context, id string) (models.Product, error) {
	raw, err := p.authed.Get(ctx, "/product/"+escape(id), nil)
	if err != nil {
		return models.Product{}, err
	}
	return unwrap[models.Product](raw, recordEnvelope(keyProduct), keyProduct)
}

// ListByType returns one owner's products of one type.
func (p *Products) ListByType(ctx context.Context, ownerID, productType string) ([]models.Product, error) {
	raw, err := p.authed.Get(ctx, "/product/listByType", url.Values{
		"productOwner": []string{ownerID},
		"productType":  []string{productType},
	})
	if err != nil {
		return nil, err
	}
	return unwrap[[]models.Product](raw, listEnvelope(keyProducts), keyProducts)
}

func (p *Products) ListOwners(ctx context.Context) ([]models.ProductOwner, error) {
	raw, err := p.authed.Get(ctx, "/product/ownerlist", nil)
	if err != nil {
		return nil, err
	}
	return unwrap[[]models.ProductOwner](raw, listEnvelope(keyProductOwners), keyProductOwners)
}

func (p *Products) ListOwnersByType(ctx context.Context, productType string) ([]models.ProductOwner, error) {
	raw, err := p.authed.Get(ctx, "/product/ownerlistByType", url.Values{
		"productType": []string{productType},
	})
	if err != nil {
		return nil, err
	}
	return unwrap[[]models.ProductOwner](raw, listEnvelope(keyProductOwners), keyProductOwners)
}

func (p *Products) Add(ctx context.Context, form apphttp.MultipartBody) (models.Product, error) {
	raw, err := p.authed.SendMultipart(ctx, http.MethodPost, "/product/add", form)
	if err != nil {
		return models.Product{}, err
	}
	created, err := unwrap[models.Product](raw, recordEnvelope(keyProduct), keyProduct)
	if err == nil {
		p.logger.Info("product added", map[string]interface{}{"productId": created.ID})
	}
	return created, err
}

// AddOwner registers a shop. The backend answers under "product".
func (p *Products) AddOwner(ctx context.Context, form apphttp.MultipartBody) (models.ProductOwner, error) {
	raw, err := p.authed.SendMultipart(ctx, http.MethodPost, "/product/addProductOwner", form)
	if err != nil {
		return models.ProductOwner{}, err
	}
	created, err := unwrap[models.ProductOwner](raw, recordEnvelope(keyProduct), keyProduct)
	if err == nil {
		p.logger.Info("product owner added", map[string]interface{}{"productOwnerId": created.ID})
	}
	return created, err
}

func (p *Products) Update(ctx context.Context, id string, form apphttp.MultipartBody) (models.Product, error) {
	raw, err := p.authed.SendMultipart(ctx, http.MethodPut, "/product/"+escape(id), form)
	if err != nil {
		return models.Product{}, err
	}
	p.logger.Debug("product updated", map[string]interface{}{"productId": id})
	return unwrap[models.Product](raw, recordEnvelope(keyProduct), keyProduct)
}

func (p *Products) UpdateOwner(ctx context.Context, id string, form apphttp.MultipartBody) (models.ProductOwner, error) {
	raw, err := p.authed.SendMultipart(ctx, http.MethodPut, "/product/owner/"+escape(id), form)
	if err != nil {
		return models.ProductOwner{}, err
	}
	p.logger.Debug("product owner updated", map[string]interface{}{"productOwnerId": id})
	return unwrap[models.ProductOwner](raw, recordEnvelope(keyProductOwner), keyProductOwner)
}
