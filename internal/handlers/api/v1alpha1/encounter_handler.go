package v1alpha1

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/orchestrators/encounter"
)

// EncounterHandlerConfig holds dependencies for the encounter handler
type EncounterHandlerConfig struct {
	EncounterService encounter.Service
}

// Validate ensures all required dependencies are present
func (c *EncounterHandlerConfig) Validate() error {
	if c.EncounterService == nil {
		return errors.InvalidArgument("encounter service is required")
	}
	return nil
}

// EncounterHandler serves encounter prep and combatant tracking routes.
type EncounterHandler struct {
	encounterService encounter.Service
}

// NewEncounterHandler creates a new encounter handler with the given
// configuration
func NewEncounterHandler(cfg *EncounterHandlerConfig) (*EncounterHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &EncounterHandler{encounterService: cfg.EncounterService}, nil
}

type encounterResponse struct {
	Encounter *entities.Encounter `json:"encounter"`
}

type encountersResponse struct {
	Encounters []*entities.Encounter `json:"encounters"`
}

type combatantResponse struct {
	Combatant *entities.Combatant `json:"combatant"`
}

// Create handles POST /api/encounters
func (h *EncounterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	out, err := h.encounterService.CreateEncounter(r.Context(), &encounter.CreateEncounterInput{
		OwnerID:     ownerFromContext(r.Context()),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, encounterResponse{Encounter: out.Encounter})
}

// List handles GET /api/encounters
func (h *EncounterHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.encounterService.ListEncounters(r.Context(), &encounter.ListEncountersInput{
		OwnerID: ownerFromContext(r.Context()),
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, encountersResponse{Encounters: out.Encounters})
}

// Get handles GET /api/encounters/{id}
func (h *EncounterHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.encounterService.GetEncounter(r.Context(), &encounter.GetEncounterInput{
		OwnerID:     ownerFromContext(r.Context()),
		EncounterID: mux.Vars(r)["id"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, encounterResponse{Encounter: out.Encounter})
}

// Update handles PUT /api/encounters/{id}
func (h *EncounterHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	out, err := h.encounterService.UpdateEncounter(r.Context(), &encounter.UpdateEncounterInput{
		OwnerID:     ownerFromContext(r.Context()),
		EncounterID: mux.Vars(r)["id"],
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, encounterResponse{Encounter: out.Encounter})
}

// Delete handles DELETE /api/encounters/{id}
func (h *EncounterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, err := h.encounterService.DeleteEncounter(r.Context(), &encounter.DeleteEncounterInput{
		OwnerID:     ownerFromContext(r.Context()),
		EncounterID: mux.Vars(r)["id"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /api/encounters/import. Raw stat-block text in,
// parsed creature templates out; nothing is persisted.
func (h *EncounterHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	out, err := h.encounterService.ParseStatBlocks(r.Context(), &encounter.ParseStatBlocksInput{
		Text: req.Text,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct {
		Creatures []entities.Creature `json:"creatures"`
	}{Creatures: out.Creatures})
}

type importCombatantsRequest struct {
	// Name labels the new encounter when no encounter id is given.
	Name  string `json:"name"`
	Items []struct {
		Creature entities.Creature `json:"creature"`
		Count    int               `json:"count"`
	} `json:"items"`
}

// ImportCombatants handles POST /api/encounters/combatants and
// POST /api/encounters/{id}/combatants. With an id the creatures are
// instanced into that encounter, otherwise into a new one.
func (h *EncounterHandler) ImportCombatants(w http.ResponseWriter, r *http.Request) {
	var req importCombatantsRequest
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	items := make([]encounter.ImportItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, encounter.ImportItem{Creature: item.Creature, Count: item.Count})
	}

	out, err := h.encounterService.ImportCreatures(r.Context(), &encounter.ImportCreaturesInput{
		OwnerID:     ownerFromContext(r.Context()),
		EncounterID: mux.Vars(r)["id"],
		Name:        req.Name,
		Items:       items,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, encounterResponse{Encounter: out.Encounter})
}

// combatantKey pulls the owner/encounter/combatant triple every
// combatant route shares.
func combatantKey(r *http.Request) (ownerID, encounterID, combatantID string) {
	vars := mux.Vars(r)
	return ownerFromContext(r.Context()), vars["id"], vars["cid"]
}

// AdjustHP handles POST /api/encounters/{id}/combatants/{cid}/hp
func (h *EncounterHandler) AdjustHP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	ownerID, encounterID, combatantID := combatantKey(r)
	out, err := h.encounterService.AdjustHP(r.Context(), &encounter.AdjustHPInput{
		OwnerID:     ownerID,
		EncounterID: encounterID,
		CombatantID: combatantID,
		Amount:      req.Amount,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, combatantResponse{Combatant: out.Combatant})
}

// ApplyHPText handles POST /api/encounters/{id}/combatants/{cid}/hp-text
func (h *EncounterHandler) ApplyHPText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Input string `json:"input"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	ownerID, encounterID, combatantID := combatantKey(r)
	out, err := h.encounterService.ApplyHPText(r.Context(), &encounter.ApplyHPTextInput{
		OwnerID:     ownerID,
		EncounterID: encounterID,
		CombatantID: combatantID,
		Input:       req.Input,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, combatantResponse{Combatant: out.Combatant})
}

// SetTempHP handles PUT /api/encounters/{id}/combatants/{cid}/temp-hp
func (h *EncounterHandler) SetTempHP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value int `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	ownerID, encounterID, combatantID := combatantKey(r)
	out, err := h.encounterService.SetTempHP(r.Context(), &encounter.SetTempHPInput{
		OwnerID:     ownerID,
		EncounterID: encounterID,
		CombatantID: combatantID,
		Value:       req.Value,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, combatantResponse{Combatant: out.Combatant})
}

// ToggleSpellSlot handles POST /api/encounters/{id}/combatants/{cid}/spell-slots
func (h *EncounterHandler) ToggleSpellSlot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Level int `json:"level"`
		Pip   int `json:"pip"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	ownerID, encounterID, combatantID := combatantKey(r)
	out, err := h.encounterService.ToggleSpellSlot(r.Context(), &encounter.ToggleSpellSlotInput{
		OwnerID:     ownerID,
		EncounterID: encounterID,
		CombatantID: combatantID,
		Level:       req.Level,
		Pip:         req.Pip,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, combatantResponse{Combatant: out.Combatant})
}

// ToggleLegendaryAction handles POST /api/encounters/{id}/combatants/{cid}/legendary-actions
func (h *EncounterHandler) ToggleLegendaryAction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pip int `json:"pip"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	ownerID, encounterID, combatantID := combatantKey(r)
	out, err := h.encounterService.ToggleLegendaryAction(r.Context(), &encounter.ToggleLegendaryActionInput{
		OwnerID:     ownerID,
		EncounterID: encounterID,
		CombatantID: combatantID,
		Pip:         req.Pip,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, combatantResponse{Combatant: out.Combatant})
}

// RefillLegendaryActions handles POST /api/encounters/{id}/combatants/{cid}/legendary-actions/refill
func (h *EncounterHandler) RefillLegendaryActions(w http.ResponseWriter, r *http.Request) {
	ownerID, encounterID, combatantID := combatantKey(r)
	out, err := h.encounterService.RefillLegendaryActions(r.Context(), &encounter.RefillLegendaryActionsInput{
		OwnerID:     ownerID,
		EncounterID: encounterID,
		CombatantID: combatantID,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, combatantResponse{Combatant: out.Combatant})
}

// ToggleLegendaryResistance handles POST /api/encounters/{id}/combatants/{cid}/legendary-resistance
func (h *EncounterHandler) ToggleLegendaryResistance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pip int `json:"pip"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	ownerID, encounterID, combatantID := combatantKey(r)
	out, err := h.encounterService.ToggleLegendaryResistance(r.Context(), &encounter.ToggleLegendaryResistanceInput{
		OwnerID:     ownerID,
		EncounterID: encounterID,
		CombatantID: combatantID,
		Pip:         req.Pip,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, combatantResponse{Combatant: out.Combatant})
}

// ToggleRecharge handles POST /api/encounters/{id}/combatants/{cid}/recharge
func (h *EncounterHandler) ToggleRecharge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	ownerID, encounterID, combatantID := combatantKey(r)
	out, err := h.encounterService.ToggleRecharge(r.Context(), &encounter.ToggleRechargeInput{
		OwnerID:     ownerID,
		EncounterID: encounterID,
		CombatantID: combatantID,
		Index:       req.Index,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, combatantResponse{Combatant: out.Combatant})
}

// ToggleLimited handles POST /api/encounters/{id}/combatants/{cid}/limited
func (h *EncounterHandler) ToggleLimited(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
		Pip   int `json:"pip"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	ownerID, encounterID, combatantID := combatantKey(r)
	out, err := h.encounterService.ToggleLimited(r.Context(), &encounter.ToggleLimitedInput{
		OwnerID:     ownerID,
		EncounterID: encounterID,
		CombatantID: combatantID,
		Index:       req.Index,
		Pip:         req.Pip,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, combatantResponse{Combatant: out.Combatant})
}

// Rename handles PUT /api/encounters/{id}/combatants/{cid}/name
func (h *EncounterHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName string `json:"displayName"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	ownerID, encounterID, combatantID := combatantKey(r)
	out, err := h.encounterService.RenameCombatant(r.Context(), &encounter.RenameCombatantInput{
		OwnerID:     ownerID,
		EncounterID: encounterID,
		CombatantID: combatantID,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, combatantResponse{Combatant: out.Combatant})
}

// Duplicate handles POST /api/encounters/{id}/combatants/{cid}/duplicate
func (h *EncounterHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	ownerID, encounterID, combatantID := combatantKey(r)
	out, err := h.encounterService.DuplicateCombatant(r.Context(), &encounter.DuplicateCombatantInput{
		OwnerID:     ownerID,
		EncounterID: encounterID,
		CombatantID: combatantID,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, combatantResponse{Combatant: out.Combatant})
}

// DeleteCombatant handles DELETE /api/encounters/{id}/combatants/{cid}
func (h *EncounterHandler) DeleteCombatant(w http.ResponseWriter, r *http.Request) {
	ownerID, encounterID, combatantID := combatantKey(r)
	_, err := h.encounterService.DeleteCombatant(r.Context(), &encounter.DeleteCombatantInput{
		OwnerID:     ownerID,
		EncounterID: encounterID,
		CombatantID: combatantID,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendToBattle handles POST /api/encounters/{id}/combatants/{cid}/send-to-battle
func (h *EncounterHandler) SendToBattle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BattleID   string `json:"battleId"`
		Initiative int    `json:"initiative"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	ownerID, encounterID, combatantID := combatantKey(r)
	out, err := h.encounterService.SendToBattle(r.Context(), &encounter.SendToBattleInput{
		OwnerID:     ownerID,
		EncounterID: encounterID,
		CombatantID: combatantID,
		BattleID:    req.BattleID,
		Initiative:  req.Initiative,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, battleResponse{Battle: out.Battle})
}
