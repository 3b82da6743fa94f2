package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	apitypes "telemetry-api/internal/api/types"
	apicommon "telemetry-api/internal/shared/api"
	"telemetry-api/internal/store"
	"telemetry-api/pkg/router"
	"telemetry-api/pkg/utils"
)

func (h *Handler) ListReadings(w http.ResponseWriter, r *http.Request) error {
	readings, err := h.svc.Telemetry.List(r.Context())
	if err != nil {
		h.l.Error("failed to list readings", utils.ErrAttr(err))

		return apicommon.NewError(http.StatusInternalServerError, "Failed to fetch readings")
	}

	apicommon.RespondJSON(w, r, http.StatusOK, readings)

	return nil
}

func (h *Handler) RegisterListReadings(path string, rb *router.RouteBuilder) {
	rb.MustGet(path, router.RouteSpec{
		OperationID: "listReadings",
		Summary:     "List all readings",
		Description: "Returns every stored reading",
		Group:       ReadingsGroup,
		Handler:     apicommon.ErrorHandler(h.ListReadings),
	})
}

func (h *Handler) CreateReading(w http.ResponseWriter, r *http.Request) error {
	req, err := apicommon.DecodeJSON[apitypes.ReadingRequest](r)
	if err != nil {
		return err
	}

	created, err := h.svc.Telemetry.Create(r.Context(), req.ToReading())
	if err != nil {
		h.l.Error("failed to create reading", utils.ErrAttr(err))

		return apicommon.NewError(http.StatusBadRequest, "Failed to save reading")
	}

	apicommon.RespondJSON(w, r, http.StatusCreated, created)

	return nil
}

func (h *Handler) RegisterCreateReading(path string, rb *router.RouteBuilder) {
	rb.MustPost(path, router.RouteSpec{
		OperationID: "createReading",
		Summary:     "Create a reading",
		Description: "Stores a new reading and announces it to subscribers",
		Group:       ReadingsGroup,
		Handler:     apicommon.ErrorHandler(h.CreateReading),
	})
}

func (h *Handler) SearchReadings(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	var filter store.Filter

	// A present-but-empty parameter still filters on the empty string,
	// only an absent parameter is skipped.
	if query.Has("kind") {
		filter.Kind = utils.Ptr(query.Get("kind"))
	}

	if query.Has("name") {
		filter.Name = utils.Ptr(query.Get("name"))
	}

	readings, err := h.svc.Telemetry.Search(r.Context(), filter)
	if err != nil {
		h.l.Error("failed to search readings", utils.ErrAttr(err))

		return apicommon.NewError(http.StatusInternalServerError, "Failed to search readings")
	}

	apicommon.RespondJSON(w, r, http.StatusOK, readings)

	return nil
}

func (h *Handler) RegisterSearchReadings(path string, rb *router.RouteBuilder) {
	rb.MustGet(path, router.RouteSpec{
		OperationID: "searchReadings",
		Summary:     "Search readings",
		Description: "Returns readings matching the given kind and name exactly",
		Group:       ReadingsGroup,
		Parameters: map[string]router.ParameterSpec{
			"kind": {
				In:          router.ParameterInQuery,
				Description: "Device kind to match exactly",
				Required:    false,
				Type:        new(string),
			},
			"name": {
				In:          router.ParameterInQuery,
				Description: "Device name to match exactly",
				Required:    false,
				Type:        new(string),
			},
		},
		Handler: apicommon.ErrorHandler(h.SearchReadings),
	})
}

func (h *Handler) GetReading(w http.ResponseWriter, r *http.Request) error {
	readingID := chi.URLParam(r, "readingID")

	reading, err := h.svc.Telemetry.Get(r.Context(), readingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apicommon.NewError(http.StatusNotFound, "Reading not found")
		}

		h.l.Error("failed to get reading", utils.ErrAttr(err))

		return apicommon.NewError(http.StatusInternalServerError, "Failed to fetch reading")
	}

	apicommon.RespondJSON(w, r, http.StatusOK, reading)

	return nil
}

func (h *Handler) RegisterGetReading(path string, rb *router.RouteBuilder) {
	rb.MustGet(path, router.RouteSpec{
		OperationID: "getReading",
		Summary:     "Get a reading",
		Description: "Returns a single reading by its ID",
		Group:       ReadingsGroup,
		Parameters: map[string]router.ParameterSpec{
			"readingID": {
				In:          router.ParameterInPath,
				Description: "ID of the reading",
				Required:    true,
				Type:        new(string),
			},
		},
		Handler: apicommon.ErrorHandler(h.GetReading),
	})
}

func (h *Handler) UpdateReading(w http.ResponseWriter, r *http.Request) error {
	readingID := chi.URLParam(r, "readingID")

	req, err := apicommon.DecodeJSON[apitypes.ReadingRequest](r)
	if err != nil {
		return err
	}

	reading := req.ToReading()
	reading.ID = readingID

	updated, err := h.svc.Telemetry.Update(r.Context(), reading)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apicommon.NewError(http.StatusNotFound, "Reading not found")
		}

		h.l.Error("failed to update reading", utils.ErrAttr(err))

		return apicommon.NewError(http.StatusBadRequest, "Failed to update reading")
	}

	apicommon.RespondJSON(w, r, http.StatusOK, updated)

	return nil
}

func (h *Handler) RegisterUpdateReading(path string, rb *router.RouteBuilder) {
	rb.MustPut(path, router.RouteSpec{
		OperationID: "updateReading",
		Summary:     "Replace a reading",
		Description: "Replaces an existing reading in place without broadcasting an event",
		Group:       ReadingsGroup,
		Parameters: map[string]router.ParameterSpec{
			"readingID": {
				In:          router.ParameterInPath,
				Description: "ID of the reading to replace",
				Required:    true,
				Type:        new(string),
			},
		},
		Handler: apicommon.ErrorHandler(h.UpdateReading),
	})
}

func (h *Handler) DeleteReading(w http.ResponseWriter, r *http.Request) error {
	readingID := chi.URLParam(r, "readingID")

	deleted, err := h.svc.Telemetry.Delete(r.Context(), readingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apicommon.NewError(http.StatusNotFound, "Reading not found")
		}

		h.l.Error("failed to delete reading", utils.ErrAttr(err))

		return apicommon.NewError(http.StatusInternalServerError, "Failed to delete reading")
	}

	apicommon.RespondJSON(w, r, http.StatusOK, apitypes.DeleteReadingResponse{
		Message: "Reading deleted",
		Reading: deleted,
	})

	return nil
}

func (h *Handler) RegisterDeleteReading(path string, rb *router.RouteBuilder) {
	rb.MustDelete(path, router.RouteSpec{
		OperationID: "deleteReading",
		Summary:     "Delete a reading",
		Description: "Removes a reading and announces the deletion to subscribers",
		Group:       ReadingsGroup,
		Parameters: map[string]router.ParameterSpec{
			"readingID": {
				In:          router.ParameterInPath,
				Description: "ID of the reading to delete",
				Required:    true,
				Type:        new(string),
			},
		},
		Handler: apicommon.ErrorHandler(h.DeleteReading),
	})
}
