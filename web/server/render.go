package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kavehsim/lumensim/pkg/catalogue"
	"github.com/kavehsim/lumensim/pkg/grid"
	"github.com/kavehsim/lumensim/pkg/simulator"
)

// SSEEvent is one Server-Sent Events frame. Event names are "snapshot" or
// "console"; Data is a JSON-encoded SnapshotUpdate or ConsoleMessage.
type SSEEvent struct {
	Event string
	Data  string
}

// SnapshotUpdate is the JSON payload sent for every "snapshot" SSE event.
type SnapshotUpdate struct {
	ImagePNG            string `json:"imagePng"`
	TotalSegmentsTraced uint64 `json:"totalSegmentsTraced"`
}

func writeSSEEvent(w http.ResponseWriter, flusher http.Flusher, ev SSEEvent) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Event, ev.Data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

func imageToBase64PNG(img *image.RGBA) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleSimulate opens an SSE stream: it builds the requested demo layout,
// drives a Simulator with an interactive-then-final restart, and forwards
// every SimulationSnapshot and console log line to the client until the
// segment budget or the connection closes.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	demoID := q.Get("demo")
	if demoID == "" {
		demoID = "empty-room"
	}
	width, err := parseIntParam(q, "width", 400, 16, 2000)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := parseIntParam(q, "height", 400, 16, 2000)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	exposure, err := parseFloatParam(q, "exposure", 0.5, 0, 1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sessionID := uuid.NewString()
	layout, err := catalogue.Build(demoID, 1, width, height)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	consoleChan := make(chan ConsoleMessage, 64)
	sim := simulator.New(image.Point{X: width, Y: height}, exposure, simulator.WithLogger(NewWebLogger(sessionID, consoleChan)))
	defer sim.Close()

	snapshots := make(chan grid.SimulationSnapshot, 8)
	sim.SnapshotHandler(func(snap grid.SimulationSnapshot) {
		select {
		case snapshots <- snap:
		default:
			// Drop the oldest pending frame in favor of the newest; a client
			// that reads slower than the Simulator emits should still see
			// current progress, not a growing backlog.
			select {
			case <-snapshots:
			default:
			}
			snapshots <- snap
		}
	})

	sim.Restart(layout, true)
	sim.Restart(layout, false)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-snapshots:
			encoded, err := imageToBase64PNG(snap.Image)
			if err != nil {
				continue
			}
			payload, _ := json.Marshal(SnapshotUpdate{ImagePNG: encoded, TotalSegmentsTraced: snap.TotalSegmentsTraced})
			if err := writeSSEEvent(w, flusher, SSEEvent{Event: "snapshot", Data: string(payload)}); err != nil {
				return
			}
		case msg := <-consoleChan:
			payload, _ := json.Marshal(msg)
			if err := writeSSEEvent(w, flusher, SSEEvent{Event: "console", Data: string(payload)}); err != nil {
				return
			}
		case <-time.After(30 * time.Second):
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
