package dashboard

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	apperrors "quickload-admin/internal/common/errors"
	apphttp "quickload-admin/internal/common/http"
	"quickload-admin/internal/common/validation"
	"quickload-admin/internal/editor"
	"quickload-admin/internal/models"
	"quickload-admin/internal/patch"
	"quickload-admin/internal/state"
)

const maxUploadBytes = 10 << 20

// listEdit maps a form key onto an add or remove on an array field.
type listEdit struct {
	field string
	add   bool
}

// record describes one editable resource for the generic handlers below.
type record[T any] struct {
	name     string
	key      string
	fetch    func(id string) *state.Resource[T]
	mutation func() *state.Mutation[state.Update, T]
	id       func(T) string
	verified func(T) bool
	schema   validation.FieldSchema
	lists    map[string]listEdit
}

func (s *Server) users() record[models.User] {
	return record[models.User]{
		name:     "user",
		key:      "user",
		fetch:    func(id string) *state.Resource[models.User] { return state.UserByID(s.svc, id, s.deps) },
		mutation: func() *state.Mutation[state.Update, models.User] { return state.UpdateUser(s.svc, s.deps) },
		id:       func(u models.User) string { return u.ID },
		verified: func(u models.User) bool { return u.IsVerified },
		schema:   validation.UserFormSchema,
	}
}

func (s *Server) products() record[models.Product] {
	return record[models.Product]{
		name:     "product",
		key:      "product",
		fetch:    func(id string) *state.Resource[models.Product] { return state.ProductByID(s.svc, id, s.deps) },
		mutation: func() *state.Mutation[state.Update, models.Product] { return state.UpdateProduct(s.svc, s.deps) },
		id:       func(p models.Product) string { return p.ID },
		verified: func(p models.Product) bool { return p.IsVerified },
		schema:   validation.ProductFormSchema,
	}
}

// owners have no single-record endpoint; the record is found in the full
// owner list.
func (s *Server) owners() record[models.ProductOwner] {
	return record[models.ProductOwner]{
		name: "productOwner",
		key:  "productOwner",
		fetch: func(id string) *state.Resource[models.ProductOwner] {
			return state.NewKeyedResource("productOwner", "Failed to fetch product owner", id,
				func(ctx context.Context, key string) (models.ProductOwner, error) {
					owners, err := s.svc.Products().ListOwners(ctx)
					if err != nil {
						return models.ProductOwner{}, err
					}
					for _, o := range owners {
						if o.ID == key {
							return o, nil
						}
					}
					return models.ProductOwner{}, apperrors.NewHTTPStatusError(http.MethodGet, "/product/owner/"+key, http.StatusNotFound, "product owner not found")
				}, s.deps)
		},
		mutation: func() *state.Mutation[state.Update, models.ProductOwner] { return state.UpdateProductOwner(s.svc, s.deps) },
		id:       func(o models.ProductOwner) string { return o.ID },
		verified: func(o models.ProductOwner) bool { return o.IsVerified },
		schema:   validation.ProductOwnerFormSchema,
		lists: map[string]listEdit{
			"addProductType":    {field: "productType", add: true},
			"removeProductType": {field: "productType", add: false},
		},
	}
}

func (s *Server) vehicles() record[models.Vehicle] {
	return record[models.Vehicle]{
		name:     "vehicle",
		key:      "vehicle",
		fetch:    func(id string) *state.Resource[models.Vehicle] { return state.VehicleByID(s.svc, id, s.deps) },
		mutation: func() *state.Mutation[state.Update, models.Vehicle] { return state.UpdateVehicle(s.svc, s.deps) },
		id:       func(v models.Vehicle) string { return v.ID },
		verified: func(v models.Vehicle) bool { return v.IsVerified },
		schema:   validation.VehicleFormSchema,
	}
}

func (s *Server) getUser(c *gin.Context)    { showRecord(s, c, s.users()) }
func (s *Server) getProduct(c *gin.Context) { showRecord(s, c, s.products()) }
func (s *Server) getVehicle(c *gin.Context) { showRecord(s, c, s.vehicles()) }

func (s *Server) updateUser(c *gin.Context)    { editRecord(s, c, s.users()) }
func (s *Server) updateProduct(c *gin.Context) { editRecord(s, c, s.products()) }
func (s *Server) updateOwner(c *gin.Context)   { editRecord(s, c, s.owners()) }
func (s *Server) updateVehicle(c *gin.Context) { editRecord(s, c, s.vehicles()) }

func (s *Server) verifyUser(c *gin.Context)    { verifyRecord(s, c, s.users()) }
func (s *Server) verifyProduct(c *gin.Context) { verifyRecord(s, c, s.products()) }
func (s *Server) verifyOwner(c *gin.Context)   { verifyRecord(s, c, s.owners()) }
func (s *Server) verifyVehicle(c *gin.Context) { verifyRecord(s, c, s.vehicles()) }

// Creation forms must carry the fields a listing card cannot do without.
var (
	newProductSchema = validation.ProductFormSchema.WithRequired("productType", "productPrice")
	newOwnerSchema   = validation.ProductOwnerFormSchema.WithRequired("productOwnerName", "phoneNumber")
	newVehicleSchema = validation.VehicleFormSchema.WithRequired("vehicleNumber", "vehicleType")
)

func (s *Server) addProduct(c *gin.Context) {
	addRecord(s, c, "product", newProductSchema, state.AddProduct(s.svc, s.deps))
}

func (s *Server) addOwner(c *gin.Context) {
	addRecord(s, c, "productOwner", newOwnerSchema, state.AddProductOwner(s.svc, s.deps))
}

func (s *Server) addVehicle(c *gin.Context) {
	addRecord(s, c, "vehicle", newVehicleSchema, state.AddVehicle(s.svc, s.deps))
}

func (s *Server) deleteUser(c *gin.Context) {
	del := state.DeleteUser(s.svc, s.deps)
	msg, err := del.Run(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, "users.delete", del.State().Error, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// ==========================
// Generic record handlers
// ==========================

func showRecord[T any](s *Server, c *gin.Context, r record[T]) {
	snap := r.fetch(c.Param("id")).Refetch(c.Request.Context())
	if snap.Error != "" {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": snap.Error})
		return
	}
	c.JSON(http.StatusOK, gin.H{r.key: snap.Data})
}

// newEditor loads entity into an editor whose saves go through the
// resource's update mutation.
func newEditor[T any](s *Server, r record[T], entity T) (*editor.Editor[T], *state.Mutation[state.Update, T]) {
	mut := r.mutation()
	ed := editor.New(editor.Config[T]{
		Resource: r.name,
		Update: func(ctx context.Context, id string, form apphttp.MultipartBody) (T, error) {
			return mut.Run(ctx, state.Update{ID: id, Form: form})
		},
		ID:       r.id,
		Verified: r.verified,
		Schema:   r.schema,
		Logger:   s.logger,
	})
	ed.Load(entity)
	return ed, mut
}

// editRecord applies a multipart edit to a fresh fetch and sends only the
// fields that differ.
func editRecord[T any](s *Server, c *gin.Context, r record[T]) {
	ctx := c.Request.Context()
	op := r.name + ".update"

	form, err := c.MultipartForm()
	if err != nil {
		s.fail(c, op, "Expected a multipart form", apperrors.NewValidationError(err.Error()))
		return
	}

	snap := r.fetch(c.Param("id")).Refetch(ctx)
	if snap.Error != "" {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": snap.Error})
		return
	}

	ed, mut := newEditor(s, r, snap.Data)
	if err := ed.BeginEdit(); err != nil {
		s.fail(c, op, "Failed to start editing", err)
		return
	}
	if err := applyForm(ed, form, r.lists); err != nil {
		s.fail(c, op, "Invalid form data", err)
		return
	}

	updated, err := ed.Save(ctx)
	if err != nil {
		msg := mut.State().Error
		if msg == "" {
			msg = "Failed to save changes"
		}
		s.fail(c, op, msg, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{r.key: updated})
}

func verifyRecord[T any](s *Server, c *gin.Context, r record[T]) {
	ctx := c.Request.Context()
	snap := r.fetch(c.Param("id")).Refetch(ctx)
	if snap.Error != "" {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": snap.Error})
		return
	}

	ed, mut := newEditor(s, r, snap.Data)
	updated, err := ed.ToggleVerify(ctx)
	if err != nil {
		s.fail(c, r.name+".verify", mut.State().Error, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{r.key: updated})
}

func addRecord[T any](s *Server, c *gin.Context, key string, schema validation.FieldSchema, mut *state.Mutation[apphttp.MultipartBody, T]) {
	op := key + ".add"
	form, err := c.MultipartForm()
	if err != nil {
		s.fail(c, op, "Expected a multipart form", apperrors.NewValidationError(err.Error()))
		return
	}

	values := map[string]interface{}{}
	fields := patch.Patch{}
	for name, vals := range form.Value {
		if len(vals) == 1 {
			values[name] = vals[0]
			fields.Set(name, vals[0])
			continue
		}
		values[name] = vals
		for i, v := range vals {
			fields.Set(fmt.Sprintf("%s[%d]", name, i), v)
		}
	}
	if res := validation.ValidateInput(values, schema); !res.Valid {
		s.fail(c, op, "Invalid form data", apperrors.NewValidationError(res.Summary()))
		return
	}

	body := patch.NewForm(fields)
	files, err := readFiles(form)
	if err != nil {
		s.fail(c, op, "Invalid file upload", err)
		return
	}
	for _, f := range files {
		if err := body.Attach(f); err != nil {
			s.fail(c, op, "Invalid file upload", apperrors.NewValidationError(err.Error()))
			return
		}
	}

	created, err := mut.Run(c.Request.Context(), body)
	if err != nil {
		s.fail(c, op, mut.State().Error, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{key: created})
}

// applyForm copies form values and files into the editor's draft. Keys are
// applied in sorted order so list edits are deterministic.
func applyForm[T any](ed *editor.Editor[T], form *multipart.Form, lists map[string]listEdit) error {
	names := make([]string, 0, len(form.Value))
	for name := range form.Value {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		vals := form.Value[name]
		if op, ok := lists[name]; ok {
			for _, v := range vals {
				var err error
				if op.add {
					err = ed.AppendToList(op.field, v)
				} else {
					err = ed.RemoveFromList(op.field, v)
				}
				if err != nil {
					return err
				}
			}
			continue
		}

		var value interface{} = vals
		if len(vals) == 1 {
			value = vals[0]
		}
		if err := ed.SetField(name, value); err != nil {
			return err
		}
	}

	files, err := readFiles(form)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := ed.AttachFile(f); err != nil {
			return err
		}
	}
	return nil
}

func readFiles(form *multipart.Form) ([]patch.File, error) {
	var out []patch.File
	for field, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		if fh.Size > maxUploadBytes {
			return nil, apperrors.NewValidationError(fmt.Sprintf("%s exceeds %d bytes", field, maxUploadBytes))
		}
		f, err := fh.Open()
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
		f.Close()
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		out = append(out, patch.File{
			Field:       field,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     content,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out, nil
}
