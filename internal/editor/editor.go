// Package editor implements the detail-page edit mode: a draft of the
// loaded entity, diff-only saves and the separate verification toggle.
package editor

import (
	"context"
	"fmt"
	"sync"

	"quickload-admin/internal/common/errors"
	apphttp "quickload-admin/internal/common/http"
	"quickload-admin/internal/common/logger"
	"quickload-admin/internal/common/metrics"
	"quickload-admin/internal/common/validation"
	"quickload-admin/internal/patch"
)

type Mode int

const (
	Viewing Mode = iota
	Editing
	Saving
)

func (m Mode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

const fieldIsVerified = "isVerified"

// Config wires an Editor to one resource.
type Config[T any] struct {
	Resource string
	Update   func(ctx context.Context, id string, form apphttp.MultipartBody) (T, error)
	ID       func(T) string
	Verified func(T) bool
	// Schema, when it has properties, restricts which fields SetField accepts
	// and checks their values.
	Schema validation.FieldSchema
	Logger logger.Logger
}

// Editor walks Viewing -> Editing -> Saving -> Viewing, or back to Editing
// when the save fails. Edits survive a failed save.
type Editor[T any] struct {
	cfg    Config[T]
	logger logger.Logger

	mu     sync.Mutex
	mode   Mode
	entity *T
	draft  map[string]interface{}
	files  []patch.File
}

func New[T any](cfg Config[T]) *Editor[T] {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Editor[T]{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"editor": cfg.Resource}),
	}
}

// Load replaces the entity with a fresh fetch and drops any pending edit.
func (e *Editor[T]) Load(entity T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entity = &entity
	e.mode = Viewing
	e.draft = nil
	e.files = nil
}

func (e *Editor[T]) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Entity returns the last loaded or saved entity.
func (e *Editor[T]) Entity() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.entity == nil {
		var zero T
		return zero, false
	}
	return *e.entity, true
}

// BeginEdit snapshots the entity as the draft and resets pending files.
func (e *Editor[T]) BeginEdit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.entity == nil {
		return errors.NewInvalidStateError("nothing loaded to edit")
	}
	if e.mode != Viewing {
		return errors.NewInvalidStateError("cannot begin editing while " + e.mode.String())
	}
	draft, err := patch.Document(*e.entity)
	if err != nil {
		return errors.NewInvalidStateError("entity is not a document: " + err.Error())
	}
	e.draft = draft
	e.files = nil
	e.mode = Editing
	return nil
}

// Cancel discards the draft and pending files.
func (e *Editor[T]) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode == Saving {
		return
	}
	e.mode = Viewing
	e.draft = nil
	e.files = nil
}

func (e *Editor[T]) SetField(name string, value interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireEditing(); err != nil {
		return err
	}
	if patch.IsFileField(name) {
		return errors.NewValidationError(name + " is a file field")
	}
	if len(e.cfg.Schema.Properties) > 0 {
		res := validation.ValidateInput(map[string]interface{}{name: value}, e.cfg.Schema)
		if !res.Valid {
			return errors.NewValidationError(res.Summary())
		}
	}
	e.draft[name] = value
	return nil
}

// AppendToList adds value to the array field name unless already present.
func (e *Editor[T]) AppendToList(name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireEditing(); err != nil {
		return err
	}
	items := listOf(e.draft[name])
	for _, item := range items {
		if item == value {
			return nil
		}
	}
	e.draft[name] = append(items, value)
	return nil
}

// RemoveFromList drops every occurrence of value from the array field name.
func (e *Editor[T]) RemoveFromList(name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireEditing(); err != nil {
		return err
	}
	items := listOf(e.draft[name])
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item != value {
			kept = append(kept, item)
		}
	}
	e.draft[name] = kept
	return nil
}

// AttachFile selects a file for one of the designated upload fields.
func (e *Editor[T]) AttachFile(file patch.File) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireEditing(); err != nil {
		return err
	}
	probe := patch.NewForm(nil)
	if err := probe.Attach(file); err != nil {
		return errors.NewValidationError(err.Error())
	}
	for i := range e.files {
		if e.files[i].Field == file.Field {
			e.files[i] = file
			return nil
		}
	}
	e.files = append(e.files, file)
	return nil
}

// Pending returns the diff-only form a save would send.
func (e *Editor[T]) Pending() (*patch.Form, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireEditing(); err != nil {
		return nil, err
	}
	return e.buildForm()
}

// Save sends the diff-only form. With nothing changed and no files it
// returns to Viewing without calling the backend.
func (e *Editor[T]) Save(ctx context.Context) (T, error) {
	var zero T

	e.mu.Lock()
	if e.entity == nil {
		e.mu.Unlock()
		return zero, errors.NewInvalidStateError("nothing loaded to save")
	}
	if err := e.requireEditing(); err != nil {
		e.mu.Unlock()
		return zero, err
	}
	form, err := e.buildForm()
	if err != nil {
		e.mu.Unlock()
		return zero, err
	}
	if form.IsEmpty() {
		e.mode = Viewing
		e.draft = nil
		current := *e.entity
		e.mu.Unlock()
		metrics.EditSaves.WithLabelValues(e.cfg.Resource, "save", "noop").Inc()
		return current, nil
	}
	id := e.cfg.ID(*e.entity)
	e.mode = Saving
	e.mu.Unlock()

	updated, err := e.cfg.Update(ctx, id, form)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.mode = Editing
		e.logger.Error("Save failed, edits kept", map[string]interface{}{
			"id":     id,
			"fields": form.Fields.Fields(),
			"error":  err,
		})
		metrics.EditSaves.WithLabelValues(e.cfg.Resource, "save", "error").Inc()
		return zero, err
	}
	e.entity = &updated
	e.draft = nil
	e.files = nil
	e.mode = Viewing
	e.logger.Info("Saved", map[string]interface{}{"id": id, "fields": form.Fields.Fields()})
	metrics.EditSaves.WithLabelValues(e.cfg.Resource, "save", "success").Inc()
	return updated, nil
}

// ToggleVerify flips the verification flag right away with a one-field
// update. It does not touch the draft's other fields or the mode.
func (e *Editor[T]) ToggleVerify(ctx context.Context) (T, error) {
	var zero T

	e.mu.Lock()
	if e.entity == nil {
		e.mu.Unlock()
		return zero, errors.NewInvalidStateError("nothing loaded to verify")
	}
	if e.cfg.Verified == nil {
		e.mu.Unlock()
		return zero, errors.NewInvalidStateError(e.cfg.Resource + " has no verification flag")
	}
	id := e.cfg.ID(*e.entity)
	next := !e.cfg.Verified(*e.entity)
	e.mu.Unlock()

	form := patch.NewForm(patch.Patch{}.Set(fieldIsVerified, next))
	updated, err := e.cfg.Update(ctx, id, form)
	if err != nil {
		e.logger.Error("Verification toggle failed", map[string]interface{}{"id": id, "error": err})
		metrics.EditSaves.WithLabelValues(e.cfg.Resource, "verify", "error").Inc()
		return zero, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.entity = &updated
	if e.draft != nil {
		e.draft[fieldIsVerified] = e.cfg.Verified(updated)
	}
	metrics.EditSaves.WithLabelValues(e.cfg.Resource, "verify", "success").Inc()
	return updated, nil
}

func (e *Editor[T]) requireEditing() error {
	if e.mode != Editing || e.draft == nil {
		return errors.NewInvalidStateError("not editing (" + e.mode.String() + ")")
	}
	return nil
}

func (e *Editor[T]) buildForm() (*patch.Form, error) {
	diff, err := patch.Compute(*e.entity, e.draft)
	if err != nil {
		return nil, errors.NewInvalidStateError("diff failed: " + err.Error())
	}
	form := patch.NewForm(diff)
	for _, f := range e.files {
		if err := form.Attach(f); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	return form, nil
}

func listOf(v interface{}) []string {
	switch items := v.(type) {
	case []string:
		return append([]string{}, items...)
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, it := range items {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
