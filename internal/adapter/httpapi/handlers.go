package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jolbondhu/flood-risk-service/internal/domain"
)

// predictionResponse is the full /predicting payload.
type predictionResponse struct {
	Status          string                `json:"status"`
	Location        locationPayload       `json:"location"`
	Weather         domain.WeatherReading `json:"weather"`
	Prediction      domain.RiskAssessment `json:"prediction"`
	Advice          string                `json:"advice"`
	Recommendations []string              `json:"recommendations"`
	Warnings        []string              `json:"warnings"`
	CacheInfo       string                `json:"cache_info"`
}

type locationPayload struct {
	District   string  `json:"district"`
	DistrictEN string  `json:"district_en"`
	Division   string  `json:"division"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// predictRequest is the POST /predicting body.
type predictRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	District  string   `json:"district"`
}

func (s *Server) handlePredictGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		s.rejectCoordinates(w, "predicting")
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		s.rejectCoordinates(w, "predicting")
		return
	}

	s.predict(w, r, lat, lon, q.Get("district"))
}

func (s *Server) handlePredictPost(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Latitude == nil || req.Longitude == nil {
		s.rejectCoordinates(w, "predicting")
		return
	}
	s.predict(w, r, *req.Latitude, *req.Longitude, req.District)
}

func (s *Server) predict(w http.ResponseWriter, r *http.Request, lat, lon float64, districtHint string) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		s.rejectCoordinates(w, "predicting")
		return
	}

	// The pipeline itself degrades internally, but a handler panic must not
	// take down the connection: answer with a neutral fallback assessment.
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("prediction handler panicked", "panic", rec, "lat", lat, "lon", lon)
			s.metrics.RequestsTotal.WithLabelValues("predicting", "degraded").Inc()
			writeJSON(w, http.StatusOK, s.degradedPrediction(lat, lon))
		}
	}()

	result := s.service.Assess(r.Context(), lat, lon, districtHint)

	cacheInfo := "fresh"
	if result.CacheHit {
		cacheInfo = "cached"
	}

	s.metrics.RequestsTotal.WithLabelValues("predicting", "success").Inc()
	writeJSON(w, http.StatusOK, predictionResponse{
		Status: "success",
		Location: locationPayload{
			District:   result.District.NameBN,
			DistrictEN: result.District.NameEN,
			Division:   result.District.Division,
			Latitude:   lat,
			Longitude:  lon,
		},
		Weather:         result.Weather,
		Prediction:      result.Assessment,
		Advice:          result.Advisory.Advice,
		Recommendations: result.Advisory.Recommendations,
		Warnings:        result.Advisory.Warnings,
		CacheInfo:       cacheInfo,
	})
}

func (s *Server) rejectCoordinates(w http.ResponseWriter, endpoint string) {
	s.metrics.RequestsTotal.WithLabelValues(endpoint, "invalid").Inc()
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Status:  "error",
		Message: "সঠিক অক্ষাংশ (-৯০ থেকে ৯০) এবং দ্রাঘিমাংশ (-১৮০ থেকে ১৮০) প্রয়োজন।",
	})
}

// degradedPrediction is the last-resort payload when the normal pipeline
// cannot answer. It reports the neutral fallback reading with reduced
// confidence so the client still renders something useful.
func (s *Server) degradedPrediction(lat, lon float64) predictionResponse {
	weather := domain.FallbackReading()
	return predictionResponse{
		Status: "success",
		Location: locationPayload{
			District:   "অজানা",
			DistrictEN: "Unknown",
			Latitude:   lat,
			Longitude:  lon,
		},
		Weather: weather,
		Prediction: domain.RiskAssessment{
			RiskPercent: 0,
			Tier:        domain.TierLow,
			TierCode:    domain.TierLow.Code(),
			TierLabelBN: domain.TierLow.LabelBN(),
			Confidence:  domain.ConfidenceFallback,
		},
		Advice:          "তথ্য সাময়িকভাবে অনুপলব্ধ। কিছুক্ষণ পর আবার চেষ্টা করুন।",
		Recommendations: []string{},
		Warnings:        []string{},
		CacheInfo:       "fresh",
	}
}

// allDistrictsResponse lists a summary row per district.
type allDistrictsResponse struct {
	Status    string        `json:"status"`
	Count     int           `json:"count"`
	Districts []districtRow `json:"districts"`
}

type districtRow struct {
	District    string  `json:"district"`
	DistrictEN  string  `json:"district_en"`
	Division    string  `json:"division"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	RiskPercent float64 `json:"risk_percent"`
	RiskTier    string  `json:"risk_tier"`
	RiskLevel   string  `json:"risk_level"`
}

func (s *Server) handleAllDistricts(w http.ResponseWriter, r *http.Request) {
	rows := s.service.AllDistricts(r.Context())

	out := make([]districtRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, districtRow{
			District:    row.District.NameBN,
			DistrictEN:  row.District.NameEN,
			Division:    row.District.Division,
			Latitude:    row.District.Lat,
			Longitude:   row.District.Lon,
			RiskPercent: row.Assessment.RiskPercent,
			RiskTier:    row.Assessment.TierCode,
			RiskLevel:   row.Assessment.TierLabelBN,
		})
	}

	s.metrics.RequestsTotal.WithLabelValues("alldistricts", "success").Inc()
	writeJSON(w, http.StatusOK, allDistrictsResponse{
		Status:    "success",
		Count:     len(out),
		Districts: out,
	})
}

func (s *Server) handleClearCache(w http.ResponseWriter, _ *http.Request) {
	n := s.service.ClearCache()
	s.metrics.RequestsTotal.WithLabelValues("cache_clear", "success").Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"cleared": n,
	})
}
