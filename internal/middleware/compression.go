// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// minCompressBytes is the smallest first write that gets gzipped. Results
// and previews usually exceed it; state snapshots of an empty session do not.
const minCompressBytes = 1024

// gzipWriterPool pools gzip writers to reduce allocations.
var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		return gzip.NewWriter(io.Discard)
	},
}

// gzipResponseWriter decides on the first Write whether to compress.
type gzipResponseWriter struct {
	http.ResponseWriter
	gz      *gzip.Writer
	status  int
	decided bool
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	// Deferred until the first Write so the encoding headers can still change.
	if w.status == 0 {
		w.status = status
	}
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.decided {
		w.decide(len(b))
	}
	if w.gz != nil {
		return w.gz.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *gzipResponseWriter) decide(firstWrite int) {
	w.decided = true
	if w.status == 0 {
		w.status = http.StatusOK
	}

	h := w.ResponseWriter.Header()
	if firstWrite >= minCompressBytes && h.Get("Content-Encoding") == "" && compressible(h.Get("Content-Type")) {
		gz := gzipWriterPool.Get().(*gzip.Writer)
		gz.Reset(w.ResponseWriter)
		w.gz = gz
		h.Set("Content-Encoding", "gzip")
		h.Del("Content-Length")
	}
	w.ResponseWriter.WriteHeader(w.status)
}

// finish flushes pending headers and returns the gzip writer to the pool.
func (w *gzipResponseWriter) finish() {
	if !w.decided {
		// No body was written (204, HEAD, empty 200).
		w.decided = true
		if w.status != 0 {
			w.ResponseWriter.WriteHeader(w.status)
		}
		return
	}
	if w.gz != nil {
		_ = w.gz.Close() // best effort, the response is already committed
		gzipWriterPool.Put(w.gz)
		w.gz = nil
	}
}

func compressible(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "application/json") || strings.HasPrefix(ct, "text/")
}

// Compression gzips JSON and text responses of at least 1KB for clients
// that accept gzip. WebSocket upgrades pass through untouched.
func Compression(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
			next(w, r)
			return
		}

		w.Header().Add("Vary", "Accept-Encoding")
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next(w, r)
			return
		}

		gzw := &gzipResponseWriter{ResponseWriter: w}
		defer gzw.finish()
		next(gzw, r)
	}
}
