// Package http exposes the tracking core over a read-only HTTP API.
package http

import (
	"net/http"
	"strconv"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/progress"
	"tracking/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Server handles the HTTP surface of the tracking core. All routes are
// read-only views over the services; mutation happens only through the tick
// jobs and provider callbacks.
type Server struct {
	progressEngine  *services.OrderProgressEngine
	authController  *services.LocationAuthorizationController
	geocodeManager  *services.GeocodeRequestManager
	locationMonitor *services.LocationMonitor
	geofenceEngine  services.GeofenceEngine
	clock           func() time.Time
}

// NewServer creates the HTTP server over the given services.
func NewServer(
	progressEngine *services.OrderProgressEngine,
	authController *services.LocationAuthorizationController,
	geocodeManager *services.GeocodeRequestManager,
	locationMonitor *services.LocationMonitor,
	geofenceEngine services.GeofenceEngine,
) *Server {
	return &Server{
		progressEngine:  progressEngine,
		authController:  authController,
		geocodeManager:  geocodeManager,
		locationMonitor: locationMonitor,
		geofenceEngine:  geofenceEngine,
		clock:           time.Now,
	}
}

// RegisterRoutes mounts all routes on the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.GetHealth)
	e.GET("/api/v1/tracking", s.GetTracking)
	e.GET("/api/v1/coverage", s.GetCoverage)
}

// geoPointResponse is the wire form of a coordinate.
type geoPointResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// stepResponse is one pipeline step in the tracking view.
type stepResponse struct {
	Index      int    `json:"index"`
	Label      string `json:"label"`
	ClockLabel string `json:"clockLabel"`
	Phase      string `json:"phase"`
}

// transitionResponse is a still-active step-transition advisory.
type transitionResponse struct {
	Step       int    `json:"step"`
	Label      string `json:"label"`
	OccurredAt string `json:"occurredAt"`
}

// locationResponse is the latest-fix view of the tracking answer.
type locationResponse struct {
	Authorization string            `json:"authorization"`
	HasFix        bool              `json:"hasFix"`
	Position      *geoPointResponse `json:"position,omitempty"`
	InServiceArea bool              `json:"inServiceArea"`
	Locality      string            `json:"locality,omitempty"`
}

// trackingResponse is the full answer of GET /api/v1/tracking.
type trackingResponse struct {
	StepIndex        int                 `json:"stepIndex"`
	StepLabel        string              `json:"stepLabel"`
	StepFraction     float64             `json:"stepFraction"`
	RemainingMinutes int                 `json:"remainingMinutes"`
	Delivered        bool                `json:"delivered"`
	Running          bool                `json:"running"`
	Actor            geoPointResponse    `json:"actor"`
	Steps            []stepResponse      `json:"steps"`
	Transition       *transitionResponse `json:"transition,omitempty"`
	Location         locationResponse    `json:"location"`
}

// coverageResponse is the answer of GET /api/v1/coverage.
type coverageResponse struct {
	Covered bool   `json:"covered"`
	Area    string `json:"area,omitempty"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetTracking handles GET /api/v1/tracking - the full delivery tracking view:
// pipeline state, any active step-transition advisory, and the latest
// location picture.
func (s *Server) GetTracking(ctx echo.Context) error {
	state := s.progressEngine.State()

	steps := make([]stepResponse, progress.StepCount)
	current := progress.Step(state.StepIndex)
	for i := range steps {
		step := progress.Step(i)
		steps[i] = stepResponse{
			Index:      i,
			Label:      step.String(),
			ClockLabel: step.ClockLabel(),
			Phase:      phaseString(step.Phase(current)),
		}
	}

	response := trackingResponse{
		StepIndex:        state.StepIndex,
		StepLabel:        state.StepLabel,
		StepFraction:     state.StepFraction,
		RemainingMinutes: state.RemainingMinutes,
		Delivered:        state.Terminal,
		Running:          s.progressEngine.Running(),
		Actor: geoPointResponse{
			Latitude:  state.ActorPosition.Latitude(),
			Longitude: state.ActorPosition.Longitude(),
		},
		Steps:    steps,
		Location: s.locationView(),
	}

	// Consume the advisory; it is one-shot, and it is only reported while its
	// display window is open.
	select {
	case advisory := <-s.progressEngine.Advisories():
		if advisory.Active(s.clock()) {
			response.Transition = &transitionResponse{
				Step:       int(advisory.Step),
				Label:      advisory.Label,
				OccurredAt: advisory.OccurredAt.Format(time.RFC3339),
			}
		}
	default:
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCoverage handles GET /api/v1/coverage?lat=&lon= - classifies an
// arbitrary coordinate against the configured service areas.
func (s *Server) GetCoverage(ctx echo.Context) error {
	lat, latErr := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	lon, lonErr := strconv.ParseFloat(ctx.QueryParam("lon"), 64)
	if latErr != nil || lonErr != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "lat and lon query parameters are required numbers",
		})
	}

	point, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid coordinate: " + err.Error(),
		})
	}

	area, covered := s.geofenceEngine.CoveringArea(point)
	response := coverageResponse{Covered: covered}
	if covered {
		response.Area = area.Name()
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) locationView() locationResponse {
	snapshot := s.locationMonitor.Snapshot()
	geocode := s.geocodeManager.Result()

	view := locationResponse{
		Authorization: s.authController.Status().String(),
		HasFix:        snapshot.HasFix,
		InServiceArea: snapshot.InServiceArea,
	}
	if snapshot.HasFix {
		point := snapshot.Sample.Point()
		view.Position = &geoPointResponse{
			Latitude:  point.Latitude(),
			Longitude: point.Longitude(),
		}
	}
	if geocode.Known {
		view.Locality = geocode.Locality
	}

	return view
}

func phaseString(phase progress.Phase) string {
	switch phase {
	case progress.PhaseDone:
		return "done"
	case progress.PhaseCurrent:
		return "current"
	default:
		return "upcoming"
	}
}
