package transcript

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleReplay streams a stored transcript over a websocket: one StateView
// message per archived state, paced by the configured interval, then a
// ReplaySummary.
func (th *TranscriptHandler) HandleReplay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	view, err := th.transcriptUC.Replay(ctx, id)
	if err != nil {
		th.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		th.log.Error("upgrade error: ", err)
		return
	}
	defer conn.Close()

	interval := th.cfg.ReplayInterval()
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := range view.States {
		if err = conn.WriteJSON(view.States[i]); err != nil {
			th.log.Warnw("replay client went away", "id", id, "state", i, "error", err)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}

	if err = conn.WriteJSON(view.Summary()); err != nil {
		th.log.Warnw("failed to send replay summary", "id", id, "error", err)
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replay finished"),
		time.Now().Add(time.Second))
	th.log.Infow("Партия проиграна", "id", id, "states", len(view.States))
}
