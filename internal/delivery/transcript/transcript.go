package transcript

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"chess5d/internal/bootstrap"
	"chess5d/internal/domain/transcript"
	apperrors "chess5d/internal/errors"
	"chess5d/internal/httpresponse"
	"chess5d/internal/render"
	transcriptuc "chess5d/internal/usecase/transcript"
	"chess5d/internal/utils"
)

type TranscriptHandler struct {
	cfg          bootstrap.Config
	log          *zap.SugaredLogger
	transcriptUC *transcriptuc.TranscriptUseCase
}

func NewTranscriptHandler(cfg bootstrap.Config, log *zap.SugaredLogger, transcriptUC *transcriptuc.TranscriptUseCase) *TranscriptHandler {
	return &TranscriptHandler{
		cfg:          cfg,
		log:          log,
		transcriptUC: transcriptUC,
	}
}

func (th *TranscriptHandler) Routes(r chi.Router) {
	r.Post("/parse", th.HandleParse)
	r.Route("/transcripts", func(r chi.Router) {
		r.Post("/", th.HandleCreate)
		r.Get("/", th.HandleList)
		r.Get("/{id}", th.HandleGet)
		r.Delete("/{id}", th.HandleDelete)
		r.Get("/{id}/states/{index}", th.HandleState)
		r.Get("/{id}/pdf", th.HandlePDF)
		r.Get("/{id}/replay", th.HandleReplay)
	})
}

// writeError maps usecase errors to statuses.
func (th *TranscriptHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrTranscriptNotFound):
		httpresponse.WriteErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrStateOutOfRange):
		httpresponse.WriteErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrEmptyTranscript):
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		th.log.Error(err)
		httpresponse.WriteErrorResponse(w, http.StatusInternalServerError, apperrors.ErrInternal.Error())
	}
}

// HandleParse parses a transcript without storing it.
func (th *TranscriptHandler) HandleParse(w http.ResponseWriter, r *http.Request) {
	var req transcript.ParseRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		th.log.Error("JSON decode error: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	view, err := th.transcriptUC.Parse(req.Text)
	if err != nil {
		th.writeError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, view)
}

func (th *TranscriptHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req transcript.CreateTranscriptRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		th.log.Error("JSON decode error: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	record, view, err := th.transcriptUC.Create(r.Context(), req)
	if err != nil {
		th.writeError(w, err)
		return
	}

	th.log.Infow("Новая партия сохранена", "id", record.ID, "states", record.PlyCount, "failed", record.Failed)
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, transcript.TranscriptCreateResponse{
		ID:     record.ID,
		Replay: view,
	})
}

func (th *TranscriptHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	pageNum := 1
	if page := r.URL.Query().Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "page must be a positive number")
			return
		}
		pageNum = n
	}

	resp, err := th.transcriptUC.List(r.Context(), pageNum)
	if err != nil {
		th.writeError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (th *TranscriptHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	record, err := th.transcriptUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		th.writeError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, record)
}

func (th *TranscriptHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "state index must be a number")
		return
	}

	state, err := th.transcriptUC.State(r.Context(), chi.URLParam(r, "id"), index)
	if err != nil {
		th.writeError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (th *TranscriptHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := th.transcriptUC.Delete(r.Context(), id); err != nil {
		th.writeError(w, err)
		return
	}

	th.log.Infow("Партия удалена", "id", id)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, "deleted")
}

// HandlePDF streams the replay of a stored transcript as a PDF document.
func (th *TranscriptHandler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	record, err := th.transcriptUC.Get(ctx, id)
	if err != nil {
		th.writeError(w, err)
		return
	}
	view, err := th.transcriptUC.Replay(ctx, id)
	if err != nil {
		th.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err = render.WriteReplayPDF(&buf, record.Title, view); err != nil {
		th.log.Errorw("Ошибка при создании PDF", "id", id, "error", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+id+".pdf\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
