package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matzehuels/skelgraph/pkg/cache"
	serrors "github.com/matzehuels/skelgraph/pkg/errors"
	skelio "github.com/matzehuels/skelgraph/pkg/io"
	"github.com/matzehuels/skelgraph/pkg/sparse"
	"github.com/matzehuels/skelgraph/pkg/store"
)

// maxBodyBytes bounds request bodies, including imported graphs.
const maxBodyBytes = 64 << 20

type errorResponse struct {
	Code    serrors.Code `json:"code"`
	Message string       `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	err = classify(err)
	code := serrors.GetCode(err)
	status := serrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	if code == "" {
		code = serrors.ErrCodeInternal
	}
	s.writeJSON(w, status, errorResponse{Code: code, Message: serrors.UserMessage(err)})
}

// classify attaches an error code to library errors.
func classify(err error) error {
	var e *serrors.Error
	switch {
	case errors.As(err, &e):
		return err
	case errors.Is(err, sparse.ErrVertexNotFound):
		return serrors.Wrap(serrors.ErrCodeVertexNotFound, err, "%v", err)
	case errors.Is(err, sparse.ErrEdgeNotFound):
		return serrors.Wrap(serrors.ErrCodeEdgeNotFound, err, "%v", err)
	case errors.Is(err, store.ErrNotFound):
		return serrors.Wrap(serrors.ErrCodeSnapshotNotFound, err, "%v", err)
	case errors.Is(err, sparse.ErrDanglingEdge),
		errors.Is(err, sparse.ErrAdjacencyMismatch),
		errors.Is(err, sparse.ErrIDSpaceExhausted),
		errors.Is(err, skelio.ErrDuplicateID):
		return serrors.Wrap(serrors.ErrCodeCorruptGraph, err, "%v", err)
	case errors.Is(err, skelio.ErrInvalidTransform):
		return serrors.Wrap(serrors.ErrCodeInvalidInput, err, "%v", err)
	case errors.Is(err, cache.ErrBackend):
		return serrors.Wrap(serrors.ErrCodeBackend, err, "%v", err)
	default:
		return serrors.Wrap(serrors.ErrCodeInternal, err, "%v", err)
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return serrors.Wrap(serrors.ErrCodeInvalidInput, err, "invalid request body: %v", err)
	}
	return nil
}
