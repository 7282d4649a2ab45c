/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Seednode/flames/games/flames"
	"github.com/julienschmidt/httprouter"
)

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(cfg *Config, w http.ResponseWriter, status int, v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	securityHeaders(cfg, w)
	w.WriteHeader(status)

	return w.Write(append(data, '\n'))
}

func serveCancel(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		a, errA := flames.NewName(r.URL.Query().Get("a"))
		b, errB := flames.NewName(r.URL.Query().Get("b"))
		if err := errors.Join(errA, errB); err != nil {
			status, msg, _ := roundStatus(err)
			if _, err := writeJSON(cfg, w, status, apiError{Error: msg}); err != nil {
				errs <- err
			}

			return
		}

		written, err := writeJSON(cfg, w, http.StatusOK, flames.Cancel(a.Normalized, b.Normalized))
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "API: Cancellation (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveEliminate(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		count, err := strconv.Atoi(r.URL.Query().Get("count"))
		if err != nil {
			if _, err := writeJSON(cfg, w, http.StatusBadRequest, apiError{Error: "count must be an integer"}); err != nil {
				errs <- err
			}

			return
		}

		start := 0
		if s := r.URL.Query().Get("start"); s != "" {
			start, err = strconv.Atoi(s)
			if err != nil {
				if _, err := writeJSON(cfg, w, http.StatusBadRequest, apiError{Error: "start must be an integer"}); err != nil {
					errs <- err
				}

				return
			}
		}

		e, err := flames.Eliminate(count, flames.Sequence(), start)
		if err != nil {
			status, msg, _ := roundStatus(err)
			if _, err := writeJSON(cfg, w, status, apiError{Error: msg}); err != nil {
				errs <- err
			}

			return
		}

		written, err := writeJSON(cfg, w, http.StatusOK, e)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "API: Elimination for count %d (%s) to %s in %s",
			count,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveMatch(cfg *Config, m *Metrics, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		round, err := flames.Play(r.URL.Query().Get("a"), r.URL.Query().Get("b"))
		if err != nil {
			status, msg, reason := roundStatus(err)
			m.refused("api", reason)

			if _, err := writeJSON(cfg, w, status, apiError{Error: msg}); err != nil {
				errs <- err
			}

			return
		}

		m.played("api", round.Relationship.Name)

		written, err := writeJSON(cfg, w, http.StatusOK, round)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "API: %s result (%s) to %s in %s",
			round.Relationship.Name,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveRelationships(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if _, err := writeJSON(cfg, w, http.StatusOK, flames.Relationships()); err != nil {
			errs <- fmt.Errorf("relationships: %w", err)
		}
	}
}

func registerAPI(cfg *Config, m *Metrics, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+"/api/cancel", serveCancel(cfg, errs))
	mux.GET(cfg.prefix+"/api/eliminate", serveEliminate(cfg, errs))
	mux.GET(cfg.prefix+"/api/match", serveMatch(cfg, m, errs))
	mux.GET(cfg.prefix+"/api/relationships", serveRelationships(cfg, errs))
}
