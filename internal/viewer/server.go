package viewer

import (
	"bytes"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/myusername/tt-league-stats/internal/utils"
)

// DownloadName is the file name offered for a team's rows
const DownloadName = "team_stats" + utils.TableExt

// Server renders league tables from a data directory. Files are read on
// every request so a collector run shows up without a restart.
type Server struct {
	dataDir  string
	router   *mux.Router
	registry *prometheus.Registry

	pageViews *prometheus.CounterVec
	downloads *prometheus.CounterVec
}

// NewServer creates a viewer for the tables in dataDir
func NewServer(dataDir string) *Server {
	s := &Server{
		dataDir:  dataDir,
		router:   mux.NewRouter(),
		registry: prometheus.NewRegistry(),
		pageViews: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tt_viewer_page_views_total",
				Help: "Team pages rendered per league",
			},
			[]string{"league"},
		),
		downloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tt_viewer_downloads_total",
				Help: "Team CSV downloads per league",
			},
			[]string{"league"},
		),
	}
	s.registry.MustRegister(s.pageViews, s.downloads)

	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
	s.router.HandleFunc("/download", s.handleDownload).Methods("GET")
	s.router.HandleFunc("/health", handleHealth).Methods("GET")
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// teamSelection is the state shared by the page and the download
type teamSelection struct {
	Leagues []string
	League  string
	Teams   []string
	Team    string
	Rows    [][]string
}

// selectTeam resolves the league and team query parameters. It writes the
// error response itself and returns false when the request cannot be served.
func (s *Server) selectTeam(w http.ResponseWriter, r *http.Request) (*teamSelection, bool) {
	leagues, err := ListLeagues(s.dataDir)
	if err != nil {
		log.Printf("Viewer: %v", err)
		s.renderError(w, http.StatusServiceUnavailable, err)
		return nil, false
	}

	league, ok := FindLeague(leagues, r.URL.Query().Get("league"))
	if !ok {
		s.renderError(w, http.StatusNotFound, errors.New("okänd liga"))
		return nil, false
	}

	records, err := utils.LoadLeagueCSV(league.Path)
	if err != nil {
		log.Printf("Viewer: %v", err)
		s.renderError(w, http.StatusInternalServerError, err)
		return nil, false
	}

	teams := Teams(records)
	team := r.URL.Query().Get("team")
	if team == "" && len(teams) > 0 {
		team = teams[0]
	}
	if !contains(teams, team) {
		s.renderError(w, http.StatusNotFound, errors.New("okänt lag"))
		return nil, false
	}

	sel := &teamSelection{
		League: league.Name,
		Teams:  teams,
		Team:   team,
		Rows:   FilterTeam(records, team),
	}
	for _, l := range leagues {
		sel.Leagues = append(sel.Leagues, l.Name)
	}
	return sel, true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.selectTeam(w, r)
	if !ok {
		return
	}
	s.pageViews.WithLabelValues(sel.League).Inc()

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, sel); err != nil {
		log.Printf("Viewer: template error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.selectTeam(w, r)
	if !ok {
		return
	}
	s.downloads.WithLabelValues(sel.League).Inc()

	var buf bytes.Buffer
	if err := utils.WriteCSV(&buf, sel.Rows); err != nil {
		log.Printf("Viewer: csv error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+DownloadName+`"`)
	w.Write(buf.Bytes())
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) renderError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if execErr := errorTemplate.Execute(w, err.Error()); execErr != nil {
		log.Printf("Viewer: template error: %v", execErr)
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="sv">
<head><meta charset="utf-8"><title>TT Stockholm</title></head>
<body>
<h1>TT Stockholm</h1>
<aside>
  <form method="get" action="/">
    <label>Välj liga:
      <select name="league" onchange="this.form.submit()">
        {{range .Leagues}}<option value="{{.}}"{{if eq . $.League}} selected{{end}}>{{.}}</option>{{end}}
      </select>
    </label>
  </form>
  <form method="get" action="/">
    <input type="hidden" name="league" value="{{.League}}">
    <label>Välj lag:
      <select name="team" onchange="this.form.submit()">
        {{range .Teams}}<option value="{{.}}"{{if eq . $.Team}} selected{{end}}>{{.}}</option>{{end}}
      </select>
    </label>
  </form>
</aside>
<h2>Statistik för {{.Team}} i {{.League}}</h2>
<table>
  {{range $i, $row := .Rows}}<tr>{{range $row}}{{if eq $i 0}}<th>{{.}}</th>{{else}}<td>{{.}}</td>{{end}}{{end}}</tr>
  {{end}}
</table>
<p><a href="/download?league={{.League}}&amp;team={{.Team}}">Ladda ner lagets statistik som CSV</a></p>
</body>
</html>
`))

var errorTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="sv">
<head><meta charset="utf-8"><title>TT Stockholm</title></head>
<body><h1>TT Stockholm</h1><p class="error">{{.}}</p></body>
</html>
`))
