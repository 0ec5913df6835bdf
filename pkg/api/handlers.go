package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chupohan/brigade-duty/pkg/core/services"
	"github.com/chupohan/brigade-duty/pkg/db"
)

func currentUser(c *gin.Context) *db.User {
	return c.MustGet(userKey).(*db.User)
}

// monthParams reads optional year/month query parameters; zero values make
// the services default to the current civil month.
func monthParams(c *gin.Context) (int, time.Month, bool) {
	year, errY := strconv.Atoi(c.DefaultQuery("year", "0"))
	month, errM := strconv.Atoi(c.DefaultQuery("month", "0"))
	if errY != nil || errM != nil || year < 0 || month < 0 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}

// GetDailyActivity returns today's duty status for the acting user.
func (s *Server) GetDailyActivity(c *gin.Context) {
	daily, err := services.GetDailyActivity(c.Request.Context(), s.store, s.clock, s.logger, currentUser(c).ID)
	if err != nil {
		respondError(c, s.logger, err, http.StatusInternalServerError, "failed to fetch daily activity")
		return
	}
	respondSuccess(c, http.StatusOK, daily)
}

// GetRecentActivities returns the acting user's recent activity feed.
func (s *Server) GetRecentActivities(c *gin.Context) {
	feed, err := services.GetRecentActivities(c.Request.Context(), s.store, s.logger, currentUser(c).ID)
	if err != nil {
		respondError(c, s.logger, err, http.StatusInternalServerError, "failed to fetch recent activities")
		return
	}
	respondSuccess(c, http.StatusOK, feed)
}

// GetMonthlyActivities returns the acting user's monthly breakdown.
func (s *Server) GetMonthlyActivities(c *gin.Context) {
	year, month, ok := monthParams(c)
	if !ok {
		respondError(c, s.logger, nil, http.StatusBadRequest, "invalid year or month")
		return
	}

	rows, err := services.GetMonthlyActivities(c.Request.Context(), s.store, s.clock, s.logger, currentUser(c).ID, year, month)
	if err != nil {
		respondError(c, s.logger, err, http.StatusInternalServerError, "failed to fetch monthly activities")
		return
	}
	respondSuccess(c, http.StatusOK, rows)
}

// GetAllMonthlyActivities returns every user's monthly breakdown.
func (s *Server) GetAllMonthlyActivities(c *gin.Context) {
	year, month, ok := monthParams(c)
	if !ok {
		respondError(c, s.logger, nil, http.StatusBadRequest, "invalid year or month")
		return
	}

	rows, err := services.GetAllMonthlyActivities(c.Request.Context(), s.store, s.clock, s.logger, year, month)
	if err != nil {
		respondError(c, s.logger, err, http.StatusInternalServerError, "failed to fetch monthly activities")
		return
	}
	respondSuccess(c, http.StatusOK, rows)
}

type activityRequest struct {
	Type string `json:"type"`
}

// PostActivity records an attendance event for the acting user.
func (s *Server) PostActivity(c *gin.Context) {
	var body activityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, s.logger, err, http.StatusBadRequest, "invalid JSON body")
		return
	}

	activity, err := services.RecordActivity(c.Request.Context(), s.store, s.clock, s.logger,
		currentUser(c).ID, body.Type, c.ClientIP())
	if err != nil {
		if services.IsValidation(err) {
			respondError(c, s.logger, err, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, s.logger, err, http.StatusInternalServerError, "failed to record activity")
		return
	}
	respondSuccess(c, http.StatusCreated, activity)
}

// GetStats returns the acting user's monthly totals.
func (s *Server) GetStats(c *gin.Context) {
	year, month, ok := monthParams(c)
	if !ok {
		respondError(c, s.logger, nil, http.StatusBadRequest, "invalid year or month")
		return
	}

	stats, err := services.GetStats(c.Request.Context(), s.store, s.clock, s.logger, currentUser(c).ID, year, month)
	if err != nil {
		respondError(c, s.logger, err, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	respondSuccess(c, http.StatusOK, stats)
}

// GetAllStats returns every user's monthly totals.
func (s *Server) GetAllStats(c *gin.Context) {
	year, month, ok := monthParams(c)
	if !ok {
		respondError(c, s.logger, nil, http.StatusBadRequest, "invalid year or month")
		return
	}

	rows, err := services.GetAllStats(c.Request.Context(), s.store, s.clock, s.logger, year, month)
	if err != nil {
		respondError(c, s.logger, err, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	respondSuccess(c, http.StatusOK, rows)
}

type rescueRequest struct {
	CaseType        string     `json:"caseType"`
	CaseSubtype     string     `json:"caseSubtype"`
	Treatment       string     `json:"treatment"`
	Hospital        string     `json:"hospital"`
	RescueType      string     `json:"rescueType"`
	StartTime       *time.Time `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	WoundDimensions string     `json:"woundDimensions"`
	RescueAddress   string     `json:"rescueAddress"`
}

// PostRescue records a rescue case for the acting user.
func (s *Server) PostRescue(c *gin.Context) {
	var body rescueRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, s.logger, err, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rescue, err := services.RecordRescue(c.Request.Context(), s.store, s.logger, db.NewRescue{
		UserID:          currentUser(c).ID,
		CaseType:        body.CaseType,
		CaseSubtype:     body.CaseSubtype,
		Treatment:       body.Treatment,
		Hospital:        body.Hospital,
		RescueType:      body.RescueType,
		StartTime:       body.StartTime,
		EndTime:         body.EndTime,
		WoundDimensions: body.WoundDimensions,
		RescueAddress:   body.RescueAddress,
	})
	if err != nil {
		if services.IsValidation(err) {
			respondError(c, s.logger, err, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, s.logger, err, http.StatusInternalServerError, "failed to record rescue")
		return
	}
	respondSuccess(c, http.StatusCreated, rescue)
}

// GetRescues returns the acting user's rescues for a civil month.
func (s *Server) GetRescues(c *gin.Context) {
	year, month, ok := monthParams(c)
	if !ok {
		respondError(c, s.logger, nil, http.StatusBadRequest, "invalid year or month")
		return
	}
	if year == 0 || month == 0 {
		year, month = s.clock.CurrentMonth()
	}
	from, to := s.clock.MonthBounds(year, month)

	rescues, err := s.store.ListRescues(c.Request.Context(), currentUser(c).ID, from, to)
	if err != nil {
		respondError(c, s.logger, err, http.StatusInternalServerError, "failed to fetch rescues")
		return
	}
	respondSuccess(c, http.StatusOK, rescues)
}
