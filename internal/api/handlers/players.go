// Package handlers holds the HTTP handlers behind the API router.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pondmetrics/capcast/internal/domain"
	"github.com/pondmetrics/capcast/pkg/logger"
)

// PlayerHandler handles player, contract, and cap-year lookups
type PlayerHandler struct {
	players       domain.PlayerRepository
	contracts     domain.ContractRepository
	contractYears domain.ContractYearRepository
	logger        *logger.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(
	players domain.PlayerRepository,
	contracts domain.ContractRepository,
	contractYears domain.ContractYearRepository,
	log *logger.Logger,
) *PlayerHandler {
	return &PlayerHandler{
		players:       players,
		contracts:     contracts,
		contractYears: contractYears,
		logger:        log,
	}
}

type playerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Team      string `json:"team"`
	Position  string `json:"position"`
	Age       int    `json:"age"`
	Class     string `json:"class"`
}

type contractResponse struct {
	ID         int64   `json:"id"`
	PlayerID   int64   `json:"player_id"`
	Team       string  `json:"team"`
	StartYear  int     `json:"start_year"`
	EndYear    int     `json:"end_year"`
	Duration   int     `json:"duration"`
	CapHit     float64 `json:"cap_hit"`
	RFA        bool    `json:"rfa"`
	ELC        bool    `json:"elc"`
	CapPct     float64 `json:"cap_pct"`
	TotalValue float64 `json:"total_value"`
}

type capYearResponse struct {
	ContractID int64   `json:"contract_id"`
	Year       int     `json:"year"`
	CapHit     float64 `json:"cap_hit"`
	CapPct     float64 `json:"cap_pct"`
}

type capYearsResponse struct {
	Years []capYearResponse `json:"years"`
	// Totals sums contract cap hits per covered year; overlapping
	// contracts add up.
	Totals map[int]float64 `json:"totals"`
}

func toPlayerResponse(p domain.Player) playerResponse {
	return playerResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Team:      p.Team,
		Position:  p.Position,
		Age:       p.Age,
		Class:     string(p.Class()),
	}
}

func toContractResponse(c domain.Contract) contractResponse {
	return contractResponse{
		ID:         c.ID,
		PlayerID:   c.PlayerID,
		Team:       c.Team,
		StartYear:  c.StartYear,
		EndYear:    c.EndYear,
		Duration:   c.Duration,
		CapHit:     c.CapHit,
		RFA:        c.RFA,
		ELC:        c.ELC,
		CapPct:     c.CapPct,
		TotalValue: c.TotalValue,
	}
}

// List returns all players
// GET /api/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list players")
		respondError(w, http.StatusInternalServerError, "failed to list players")
		return
	}

	out := make([]playerResponse, 0, len(players))
	for _, p := range players {
		out = append(out, toPlayerResponse(p))
	}
	respondJSON(w, http.StatusOK, out)
}

// Search finds players by name
// GET /api/players/search?first_name=...&last_name=...
func (h *PlayerHandler) Search(w http.ResponseWriter, r *http.Request) {
	firstName := r.URL.Query().Get("first_name")
	lastName := r.URL.Query().Get("last_name")
	if firstName == "" || lastName == "" {
		respondError(w, http.StatusBadRequest, "first_name and last_name are required")
		return
	}

	players, err := h.players.GetByName(r.Context(), firstName, lastName)
	if err != nil {
		h.logger.WithError(err).Error("Failed to search players")
		respondError(w, http.StatusInternalServerError, "failed to search players")
		return
	}

	out := make([]playerResponse, 0, len(players))
	for _, p := range players {
		out = append(out, toPlayerResponse(p))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get returns one player by id
// GET /api/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	player, err := h.players.GetByID(r.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("player_id", id).Error("Failed to get player")
		respondError(w, http.StatusInternalServerError, "failed to get player")
		return
	}
	if player == nil {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}
	respondJSON(w, http.StatusOK, toPlayerResponse(*player))
}

// GetContracts returns every contract of a player
// GET /api/players/{id}/contracts
func (h *PlayerHandler) GetContracts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	contracts, err := h.contracts.GetByPlayer(r.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("player_id", id).Error("Failed to get contracts")
		respondError(w, http.StatusInternalServerError, "failed to get contracts")
		return
	}

	out := make([]contractResponse, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, toContractResponse(c))
	}
	respondJSON(w, http.StatusOK, out)
}

// GetCapYears returns the per-season cap slices of a player
// GET /api/players/{id}/cap-years
func (h *PlayerHandler) GetCapYears(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	years, err := h.contractYears.GetByPlayer(r.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("player_id", id).Error("Failed to get cap years")
		respondError(w, http.StatusInternalServerError, "failed to get cap years")
		return
	}

	contracts, err := h.contracts.GetByPlayer(r.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("player_id", id).Error("Failed to get contracts")
		respondError(w, http.StatusInternalServerError, "failed to get cap years")
		return
	}

	out := capYearsResponse{
		Years:  make([]capYearResponse, 0, len(years)),
		Totals: domain.YearlyCapHits(contracts),
	}
	for _, y := range years {
		out.Years = append(out.Years, capYearResponse{
			ContractID: y.ContractID,
			Year:       y.Year,
			CapHit:     y.CapHit,
			CapPct:     y.CapPct,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// ListContracts returns all contracts
// GET /api/contracts
func (h *PlayerHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.contracts.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list contracts")
		respondError(w, http.StatusInternalServerError, "failed to list contracts")
		return
	}

	out := make([]contractResponse, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, toContractResponse(c))
	}
	respondJSON(w, http.StatusOK, out)
}

// Helper functions

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid player id")
		return 0, false
	}
	return id, true
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
