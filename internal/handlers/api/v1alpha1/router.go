// Package v1alpha1 exposes the JSON API: an authenticated DM surface
// for battles, encounters and groups, plus the public polling endpoint
// for the player-facing turn order display.
package v1alpha1

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmforge/initiative-api/internal/auth"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/orchestrators/battle"
	"github.com/dmforge/initiative-api/internal/orchestrators/encounter"
	"github.com/dmforge/initiative-api/internal/orchestrators/group"
	"github.com/dmforge/initiative-api/internal/orchestrators/user"
)

// RouterConfig holds the services the API routes delegate to
type RouterConfig struct {
	AuthService      *auth.Service
	UserService      user.Service
	BattleService    battle.Service
	EncounterService encounter.Service
	GroupService     group.Service
}

// Validate ensures all required dependencies are present
func (c *RouterConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.AuthService == nil {
		vb.RequiredField("AuthService")
	}
	if c.UserService == nil {
		vb.RequiredField("UserService")
	}
	if c.BattleService == nil {
		vb.RequiredField("BattleService")
	}
	if c.EncounterService == nil {
		vb.RequiredField("EncounterService")
	}
	if c.GroupService == nil {
		vb.RequiredField("GroupService")
	}

	return vb.Build()
}

// NewRouter builds the full API route table.
func NewRouter(cfg *RouterConfig) (http.Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	authHandler, err := NewAuthHandler(&AuthHandlerConfig{UserService: cfg.UserService})
	if err != nil {
		return nil, err
	}
	battleHandler, err := NewBattleHandler(&BattleHandlerConfig{BattleService: cfg.BattleService})
	if err != nil {
		return nil, err
	}
	encounterHandler, err := NewEncounterHandler(&EncounterHandlerConfig{EncounterService: cfg.EncounterService})
	if err != nil {
		return nil, err
	}
	groupHandler, err := NewGroupHandler(&GroupHandlerConfig{GroupService: cfg.GroupService})
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Open routes.
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/battles/active", battleHandler.GetPublic).Methods(http.MethodGet)

	authed := func(fn http.HandlerFunc) http.HandlerFunc {
		return requireAuth(cfg.AuthService, fn)
	}

	api.HandleFunc("/auth/me", authed(authHandler.Me)).Methods(http.MethodGet)

	// Battles.
	api.HandleFunc("/battles", authed(battleHandler.List)).Methods(http.MethodGet)
	api.HandleFunc("/battles", authed(battleHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/battles/{id}", authed(battleHandler.Get)).Methods(http.MethodGet)
	api.HandleFunc("/battles/{id}", authed(battleHandler.Update)).Methods(http.MethodPut)
	api.HandleFunc("/battles/{id}", authed(battleHandler.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/battles/{id}/characters", authed(battleHandler.AddCharacter)).Methods(http.MethodPost)
	api.HandleFunc("/battles/{id}/groups", authed(battleHandler.AddGroup)).Methods(http.MethodPost)
	api.HandleFunc("/battles/{id}/lair", authed(battleHandler.AddLair)).Methods(http.MethodPost)
	api.HandleFunc("/battles/{id}/characters/{cid}", authed(battleHandler.RemoveCharacter)).Methods(http.MethodDelete)
	api.HandleFunc("/battles/{id}/characters/{cid}/initiative", authed(battleHandler.SetInitiative)).Methods(http.MethodPut)
	api.HandleFunc("/battles/{id}/characters/{cid}/reveal", authed(battleHandler.ToggleReveal)).Methods(http.MethodPost)
	api.HandleFunc("/battles/{id}/characters/{cid}/swap", authed(battleHandler.SwapOrder)).Methods(http.MethodPost)
	api.HandleFunc("/battles/{id}/next", authed(battleHandler.NextTurn)).Methods(http.MethodPost)
	api.HandleFunc("/battles/{id}/previous", authed(battleHandler.PreviousTurn)).Methods(http.MethodPost)
	api.HandleFunc("/battles/{id}/reset", authed(battleHandler.ResetTurns)).Methods(http.MethodPost)
	api.HandleFunc("/battles/{id}/end", authed(battleHandler.End)).Methods(http.MethodPost)
	api.HandleFunc("/battles/{id}/activate", authed(battleHandler.Activate)).Methods(http.MethodPost)
	api.HandleFunc("/battles/{id}/refresh", authed(battleHandler.RefreshExpiration)).Methods(http.MethodPost)

	// Groups.
	api.HandleFunc("/groups", authed(groupHandler.List)).Methods(http.MethodGet)
	api.HandleFunc("/groups", authed(groupHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id}", authed(groupHandler.Get)).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id}", authed(groupHandler.Update)).Methods(http.MethodPut)
	api.HandleFunc("/groups/{id}", authed(groupHandler.Delete)).Methods(http.MethodDelete)

	// Encounters.
	api.HandleFunc("/encounters", authed(encounterHandler.List)).Methods(http.MethodGet)
	api.HandleFunc("/encounters", authed(encounterHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/encounters/import", authed(encounterHandler.Import)).Methods(http.MethodPost)
	api.HandleFunc("/encounters/combatants", authed(encounterHandler.ImportCombatants)).Methods(http.MethodPost)
	api.HandleFunc("/encounters/{id}", authed(encounterHandler.Get)).Methods(http.MethodGet)
	api.HandleFunc("/encounters/{id}", authed(encounterHandler.Update)).Methods(http.MethodPut)
	api.HandleFunc("/encounters/{id}", authed(encounterHandler.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/encounters/{id}/combatants", authed(encounterHandler.ImportCombatants)).Methods(http.MethodPost)

	// Combatant tracking.
	cb := api.PathPrefix("/encounters/{id}/combatants/{cid}").Subrouter()
	cb.HandleFunc("", authed(encounterHandler.DeleteCombatant)).Methods(http.MethodDelete)
	cb.HandleFunc("/hp", authed(encounterHandler.AdjustHP)).Methods(http.MethodPost)
	cb.HandleFunc("/hp-text", authed(encounterHandler.ApplyHPText)).Methods(http.MethodPost)
	cb.HandleFunc("/temp-hp", authed(encounterHandler.SetTempHP)).Methods(http.MethodPut)
	cb.HandleFunc("/spell-slots", authed(encounterHandler.ToggleSpellSlot)).Methods(http.MethodPost)
	cb.HandleFunc("/legendary-actions", authed(encounterHandler.ToggleLegendaryAction)).Methods(http.MethodPost)
	cb.HandleFunc("/legendary-actions/refill", authed(encounterHandler.RefillLegendaryActions)).Methods(http.MethodPost)
	cb.HandleFunc("/legendary-resistance", authed(encounterHandler.ToggleLegendaryResistance)).Methods(http.MethodPost)
	cb.HandleFunc("/recharge", authed(encounterHandler.ToggleRecharge)).Methods(http.MethodPost)
	cb.HandleFunc("/limited", authed(encounterHandler.ToggleLimited)).Methods(http.MethodPost)
	cb.HandleFunc("/name", authed(encounterHandler.Rename)).Methods(http.MethodPut)
	cb.HandleFunc("/duplicate", authed(encounterHandler.Duplicate)).Methods(http.MethodPost)
	cb.HandleFunc("/send-to-battle", authed(encounterHandler.SendToBattle)).Methods(http.MethodPost)

	return r, nil
}
