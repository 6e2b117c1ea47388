package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
)

const (
	eventEndpoint = "endpoint"
	eventReady    = "ready"
	eventMessage  = "message"
)

// eventWriter writes server-sent events; only the stream goroutine writes to it.
type eventWriter struct {
	writer  http.ResponseWriter
	flusher http.Flusher
	lastID  int64
}

func (w *eventWriter) writeHeaders() {
	header := w.writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.writer.WriteHeader(http.StatusOK)
	w.flusher.Flush()
}

func (w *eventWriter) writeEvent(event string, data []byte) error {
	w.lastID++
	buffer := new(bytes.Buffer)
	buffer.WriteString("id: ")
	buffer.WriteString(strconv.FormatInt(w.lastID, 10))
	buffer.WriteString("\nevent: ")
	buffer.WriteString(event)
	buffer.WriteByte('\n')
	for _, line := range bytes.Split(data, []byte("\n")) {
		buffer.WriteString("data: ")
		buffer.Write(line)
		buffer.WriteByte('\n')
	}
	buffer.WriteByte('\n')
	if _, err := w.writer.Write(buffer.Bytes()); err != nil {
		return err
	}
	w.flusher.Flush()
	return nil
}

func (w *eventWriter) writeComment(comment string) error {
	if _, err := fmt.Fprintf(w.writer, ": %s\n\n", comment); err != nil {
		return err
	}
	w.flusher.Flush()
	return nil
}

func newEventWriter(writer http.ResponseWriter) (*eventWriter, error) {
	flusher, ok := writer.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support flushing")
	}
	return &eventWriter{writer: writer, flusher: flusher}, nil
}
