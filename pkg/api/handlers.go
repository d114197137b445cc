package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/seren-space/orrery/pkg/epoch"
	"github.com/seren-space/orrery/pkg/segment"
	"github.com/seren-space/orrery/pkg/spk"
)

// handleHealth reports service liveness and the number of loaded kernels.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]interface{}{
		"status":  "ok",
		"kernels": len(s.set.Entries()),
	})
}

// handleState answers a point query: ?target=<naif id>&et=<seconds past
// J2000>, or &utc=<RFC3339> instead of et.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	target, err := strconv.Atoi(r.URL.Query().Get("target"))
	if err != nil {
		sendError(w, "target must be an integer NAIF ID", http.StatusBadRequest)
		return
	}

	var e epoch.Epoch
	switch {
	case r.URL.Query().Get("et") != "":
		et, err := strconv.ParseFloat(r.URL.Query().Get("et"), 64)
		if err != nil {
			sendError(w, "et must be a number of seconds past J2000", http.StatusBadRequest)
			return
		}
		e = epoch.FromET(et)
	case r.URL.Query().Get("utc") != "":
		t, err := time.Parse(time.RFC3339, r.URL.Query().Get("utc"))
		if err != nil {
			sendError(w, "utc must be an RFC3339 timestamp", http.StatusBadRequest)
			return
		}
		e = epoch.FromTime(t)
	default:
		sendError(w, "one of et or utc is required", http.StatusBadRequest)
		return
	}
	if !e.IsFinite() {
		sendError(w, "epoch is not finite", http.StatusBadRequest)
		return
	}

	if s.cache != nil {
		st, ok, err := s.cache.Get("set", target, e)
		if err != nil {
			log.Printf("state cache read: %v", err)
		}
		s.metrics.RecordCacheLookup(ok)
		if ok {
			s.metrics.RecordQuery(true, time.Since(start))
			sendSuccess(w, StateResponse{
				QueryID:  ksuid.New().String(),
				Target:   target,
				EpochET:  e.ET(),
				Position: st.Position,
				Velocity: st.Velocity,
				Cached:   true,
			})
			return
		}
	}

	st, sum, kernelName, err := s.set.Evaluate(target, e)
	if err != nil {
		s.metrics.RecordQuery(false, time.Since(start))
		sendEvaluateError(w, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Put("set", target, e, st); err != nil {
			log.Printf("state cache write: %v", err)
		}
	}

	s.metrics.RecordQuery(true, time.Since(start))
	sendSuccess(w, StateResponse{
		QueryID:  ksuid.New().String(),
		Target:   target,
		EpochET:  e.ET(),
		Position: st.Position,
		Velocity: st.Velocity,
		Kernel:   kernelName,
		Segment:  sum.Name,
	})
}

// sendEvaluateError maps evaluation failures onto HTTP statuses: coverage
// gaps are 404, corrupt kernels are 502, everything else is 500.
func sendEvaluateError(w http.ResponseWriter, err error) {
	var noCov *spk.NoCoverageError
	var missing *segment.MissingInterpolationDataError
	var malformed *segment.MalformedDataError
	var integrity *segment.IntegrityError

	switch {
	case errors.As(err, &noCov), errors.As(err, &missing):
		sendError(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &malformed), errors.As(err, &integrity):
		sendError(w, err.Error(), http.StatusBadGateway)
	default:
		sendError(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleSegments lists every segment of every loaded kernel.
func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	var out []SegmentInfo
	for _, ent := range s.set.Entries() {
		for _, sum := range ent.Kernel.Segments() {
			out = append(out, SegmentInfo{
				Kernel:   ent.Name,
				Name:     sum.Name,
				Target:   sum.Target,
				Center:   sum.Center,
				Frame:    sum.Frame,
				DataType: sum.DataType,
				StartET:  sum.StartET,
				EndET:    sum.EndET,
			})
		}
	}
	sendSuccess(w, out)
}

// handleIntegrity runs the full integrity scan over every loaded kernel.
func (s *Server) handleIntegrity(w http.ResponseWriter, r *http.Request) {
	if err := s.set.CheckIntegrity(); err != nil {
		sendSuccess(w, IntegrityResponse{OK: false, Detail: err.Error()})
		return
	}
	sendSuccess(w, IntegrityResponse{OK: true})
}
