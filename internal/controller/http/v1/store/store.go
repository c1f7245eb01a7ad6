package store

import (
	"net/http"
	"reflect"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/repository/postgres/store"
	"workforce/backend/internal/service/upload"

	"github.com/pkg/errors"
)

type Controller struct {
	store    Store
	uploader *upload.Service
}

func NewController(store Store, uploader *upload.Service) *Controller {
	return &Controller{store: store, uploader: uploader}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter store.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.store.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.store.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request store.CreateRequest
	if err := c.BindFunc(&request, "Name,Latitude,Longitude"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.store.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request store.UpdateRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := uc.store.UpdateColumns(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.store.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

// UploadLogo stores the uploaded image, writes a thumbnail next to it and
// saves the public url on the store.
func (uc Controller) UploadLogo(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if _, err := uc.store.GetById(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "logo file is required"), http.StatusBadRequest))
	}

	url, err := uc.uploader.SaveLogo(file, id)
	if err != nil {
		return c.RespondError(err)
	}

	if err := uc.store.UpdateColumns(c.Ctx, store.UpdateRequest{ID: id, LogoUrl: &url}); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"logo_url": url,
		},
		"status": true,
	}, http.StatusOK)
}
