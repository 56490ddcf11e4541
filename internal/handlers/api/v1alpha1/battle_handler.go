package v1alpha1

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/orchestrators/battle"
)

// BattleHandlerConfig holds dependencies for the battle handler
type BattleHandlerConfig struct {
	BattleService battle.Service
}

// Validate ensures all required dependencies are present
func (c *BattleHandlerConfig) Validate() error {
	if c.BattleService == nil {
		return errors.InvalidArgument("battle service is required")
	}
	return nil
}

// BattleHandler serves the battle routes, including the public
// turn-order snapshot.
type BattleHandler struct {
	battleService battle.Service
}

// NewBattleHandler creates a new battle handler with the given
// configuration
func NewBattleHandler(cfg *BattleHandlerConfig) (*BattleHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &BattleHandler{battleService: cfg.BattleService}, nil
}

type battleResponse struct {
	Battle *entities.Battle `json:"battle"`
}

type battlesResponse struct {
	Battles []*entities.Battle `json:"battles"`
}

// Create handles POST /api/battles
func (h *BattleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		GroupID string `json:"groupId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	out, err := h.battleService.CreateBattle(r.Context(), &battle.CreateBattleInput{
		OwnerID: ownerFromContext(r.Context()),
		Name:    req.Name,
		GroupID: req.GroupID,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, battleResponse{Battle: out.Battle})
}

// List handles GET /api/battles
func (h *BattleHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.battleService.ListBattles(r.Context(), &battle.ListBattlesInput{
		OwnerID: ownerFromContext(r.Context()),
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battlesResponse{Battles: out.Battles})
}

// Get handles GET /api/battles/{id}
func (h *BattleHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.battleService.GetBattle(r.Context(), &battle.GetBattleInput{
		OwnerID:  ownerFromContext(r.Context()),
		BattleID: mux.Vars(r)["id"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// Update handles PUT /api/battles/{id}
func (h *BattleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	out, err := h.battleService.UpdateBattle(r.Context(), &battle.UpdateBattleInput{
		OwnerID:  ownerFromContext(r.Context()),
		BattleID: mux.Vars(r)["id"],
		Name:     req.Name,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// Delete handles DELETE /api/battles/{id}
func (h *BattleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, err := h.battleService.DeleteBattle(r.Context(), &battle.DeleteBattleInput{
		OwnerID:  ownerFromContext(r.Context()),
		BattleID: mux.Vars(r)["id"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPublic handles GET /api/battles/active. No auth; unrevealed NPCs
// come back redacted and an absent battle is {"battle": null}.
func (h *BattleHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	out, err := h.battleService.GetPublicBattle(r.Context(), &battle.GetPublicBattleInput{
		BattleID: r.URL.Query().Get("id"),
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// AddCharacter handles POST /api/battles/{id}/characters
func (h *BattleHandler) AddCharacter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		IsNPC      bool   `json:"isNpc"`
		Initiative int    `json:"initiative"`
		ImageURL   string `json:"imageUrl"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	out, err := h.battleService.AddCharacter(r.Context(), &battle.AddCharacterInput{
		OwnerID:    ownerFromContext(r.Context()),
		BattleID:   mux.Vars(r)["id"],
		Name:       req.Name,
		IsNPC:      req.IsNPC,
		Initiative: req.Initiative,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// AddGroup handles POST /api/battles/{id}/groups
func (h *BattleHandler) AddGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID string `json:"groupId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	out, err := h.battleService.AddGroup(r.Context(), &battle.AddGroupInput{
		OwnerID:  ownerFromContext(r.Context()),
		BattleID: mux.Vars(r)["id"],
		GroupID:  req.GroupID,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// AddLair handles POST /api/battles/{id}/lair
func (h *BattleHandler) AddLair(w http.ResponseWriter, r *http.Request) {
	out, err := h.battleService.AddLair(r.Context(), &battle.AddLairInput{
		OwnerID:  ownerFromContext(r.Context()),
		BattleID: mux.Vars(r)["id"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// RemoveCharacter handles DELETE /api/battles/{id}/characters/{cid}
func (h *BattleHandler) RemoveCharacter(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.battleService.RemoveCharacter(r.Context(), &battle.RemoveCharacterInput{
		OwnerID:     ownerFromContext(r.Context()),
		BattleID:    vars["id"],
		CharacterID: vars["cid"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// SetInitiative handles PUT /api/battles/{id}/characters/{cid}/initiative
func (h *BattleHandler) SetInitiative(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Initiative int `json:"initiative"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	vars := mux.Vars(r)
	out, err := h.battleService.SetInitiative(r.Context(), &battle.SetInitiativeInput{
		OwnerID:     ownerFromContext(r.Context()),
		BattleID:    vars["id"],
		CharacterID: vars["cid"],
		Initiative:  req.Initiative,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// ToggleReveal handles POST /api/battles/{id}/characters/{cid}/reveal
func (h *BattleHandler) ToggleReveal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.battleService.ToggleReveal(r.Context(), &battle.ToggleRevealInput{
		OwnerID:     ownerFromContext(r.Context()),
		BattleID:    vars["id"],
		CharacterID: vars["cid"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// SwapOrder handles POST /api/battles/{id}/characters/{cid}/swap
func (h *BattleHandler) SwapOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	vars := mux.Vars(r)
	out, err := h.battleService.SwapOrder(r.Context(), &battle.SwapOrderInput{
		OwnerID:     ownerFromContext(r.Context()),
		BattleID:    vars["id"],
		CharacterID: vars["cid"],
		Direction:   battle.SwapDirection(req.Direction),
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// NextTurn handles POST /api/battles/{id}/next
func (h *BattleHandler) NextTurn(w http.ResponseWriter, r *http.Request) {
	out, err := h.battleService.NextTurn(r.Context(), &battle.NextTurnInput{
		OwnerID:  ownerFromContext(r.Context()),
		BattleID: mux.Vars(r)["id"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// PreviousTurn handles POST /api/battles/{id}/previous
func (h *BattleHandler) PreviousTurn(w http.ResponseWriter, r *http.Request) {
	out, err := h.battleService.PreviousTurn(r.Context(), &battle.PreviousTurnInput{
		OwnerID:  ownerFromContext(r.Context()),
		BattleID: mux.Vars(r)["id"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// ResetTurns handles POST /api/battles/{id}/reset
func (h *BattleHandler) ResetTurns(w http.ResponseWriter, r *http.Request) {
	out, err := h.battleService.ResetTurns(r.Context(), &battle.ResetTurnsInput{
		OwnerID:  ownerFromContext(r.Context()),
		BattleID: mux.Vars(r)["id"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// End handles POST /api/battles/{id}/end
func (h *BattleHandler) End(w http.ResponseWriter, r *http.Request) {
	out, err := h.battleService.EndBattle(r.Context(), &battle.EndBattleInput{
		OwnerID:  ownerFromContext(r.Context()),
		BattleID: mux.Vars(r)["id"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// Activate handles POST /api/battles/{id}/activate
func (h *BattleHandler) Activate(w http.ResponseWriter, r *http.Request) {
	out, err := h.battleService.ActivateBattle(r.Context(), &battle.ActivateBattleInput{
		OwnerID:  ownerFromContext(r.Context()),
		BattleID: mux.Vars(r)["id"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}

// RefreshExpiration handles POST /api/battles/{id}/refresh
func (h *BattleHandler) RefreshExpiration(w http.ResponseWriter, r *http.Request) {
	out, err := h.battleService.RefreshExpiration(r.Context(), &battle.RefreshExpirationInput{
		OwnerID:  ownerFromContext(r.Context()),
		BattleID: mux.Vars(r)["id"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}
