package main

import (
	"encoding/json"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/globalindex/citycore"
	"github.com/globalindex/citycore/config"
)

type server struct {
	cfg    *config.Config
	logger *slog.Logger
	grid   *citycore.GeoGrid
	index  *citycore.TieredInvertedIndex
	places map[int64]citycore.Place
	tmpl   *template.Template
}

func newServer(cfg *config.Config, logger *slog.Logger, grid *citycore.GeoGrid, idx *citycore.TieredInvertedIndex, places map[int64]citycore.Place) *server {
	tmpl := template.Must(template.New("index").Parse(indexTemplate))
	return &server{cfg: cfg, logger: logger, grid: grid, index: idx, places: places, tmpl: tmpl}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/city", s.handleCity)
	mux.HandleFunc("/proximity", s.handleProximity)
	return s.withCorrelationID(mux)
}

// withCorrelationID stamps every request with a correlation id: the
// incoming X-Request-ID header if set, otherwise a new UUID. The id is
// echoed in the response header and logged once with the method and path.
func (s *server) withCorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		s.logger.Info("cityserver: request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if err := s.tmpl.Execute(w, nil); err != nil {
		s.logger.Error("cityserver: render index", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type cityResult struct {
	ID         int64  `json:"cid"`
	Name       string `json:"name"`
	CountryCode string `json:"cc"`
	Population int64  `json:"pop"`
}

// handleSearch answers lexical queries against the tiered inverted index,
// the JSON counterpart of the original search.html route.
func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	k := s.cfg.Index.DefaultK
	if kRaw := r.URL.Query().Get("k"); kRaw != "" {
		if parsed, err := strconv.Atoi(kRaw); err == nil {
			k = parsed
		}
	}

	var results []cityResult
	if query != "" {
		for _, id := range s.index.Search(query, k) {
			p, ok := s.places[id]
			if !ok {
				continue
			}
			results = append(results, cityResult{ID: p.ID, Name: p.Name, CountryCode: p.CountryCode, Population: p.Population})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": query, "cities": results})
}

// handleCity returns the stored record for a single place by id.
func (s *server) handleCity(w http.ResponseWriter, r *http.Request) {
	cidRaw := r.URL.Query().Get("cid")
	if cidRaw == "" {
		http.NotFound(w, r)
		return
	}
	cid, err := strconv.ParseInt(cidRaw, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, ok := s.places[cid]
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cid":      p.ID,
		"name":     p.Name,
		"cc":       p.CountryCode,
		"pop":      p.Population,
		"lat":      p.Latitude,
		"lon":      p.Longitude,
		"altnames": p.AlternateNames,
	})
}

// handleProximity answers k-nearest queries, the JSON counterpart of the
// original proximity.html route.
func (s *server) handleProximity(w http.ResponseWriter, r *http.Request) {
	cidRaw := r.URL.Query().Get("cid")
	if cidRaw == "" {
		http.NotFound(w, r)
		return
	}
	cid, err := strconv.ParseInt(cidRaw, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	origin, ok := s.places[cid]
	if !ok {
		http.NotFound(w, r)
		return
	}

	k := s.cfg.Index.DefaultK
	if kRaw := r.URL.Query().Get("k"); kRaw != "" {
		if parsed, err := strconv.Atoi(kRaw); err == nil {
			k = parsed
		}
	}
	sameCountry := r.URL.Query().Get("same_country") != ""

	neighbors, err := s.grid.KNearest(origin, k, sameCountry)
	if err != nil {
		s.logger.Warn("cityserver: proximity query", "cid", cid, "error", err)
		http.Error(w, "invalid proximity query", http.StatusBadRequest)
		return
	}

	type neighborResult struct {
		DistanceMiles float64 `json:"dist"`
		Name          string  `json:"name"`
		ID            int64   `json:"cid"`
		CountryCode   string  `json:"cc"`
		Latitude      float64 `json:"lat"`
		Longitude     float64 `json:"lon"`
	}
	results := make([]neighborResult, 0, len(neighbors))
	for _, n := range neighbors {
		p, ok := s.places[n.ID]
		if !ok {
			continue
		}
		results = append(results, neighborResult{
			DistanceMiles: n.DistanceMiles,
			Name:          p.Name,
			ID:            p.ID,
			CountryCode:   p.CountryCode,
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"city": map[string]any{
			"cid": origin.ID, "name": origin.Name, "lat": origin.Latitude,
			"lon": origin.Longitude, "cc": origin.CountryCode,
		},
		"cities": results,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := jsonEncode(w, payload); err != nil {
		slog.Error("cityserver: encode response", "error", err)
	}
}

func jsonEncode(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(payload)
}

const indexTemplate = `<!DOCTYPE html>
<html>
<head><title>Indexing the Globe</title></head>
<body>
<h1>Indexing the Globe</h1>
<form action="/search" method="get">
  <input type="text" name="query" placeholder="search cities">
  <button type="submit">Search</button>
</form>
</body>
</html>`
