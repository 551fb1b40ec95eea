package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quistberg/ladle/internal/domain"
	"github.com/quistberg/ladle/internal/game"
)

// RunResponse is the full state view returned by most run endpoints.
type RunResponse struct {
	State  domain.RunState   `json:"state"`
	Offers []domain.Artifact `json:"offers,omitempty"`
}

// RunHandlers routes player actions into live games.
type RunHandlers struct {
	manager *game.Manager
}

// NewRunHandlers creates the run handler set.
func NewRunHandlers(manager *game.Manager) *RunHandlers {
	return &RunHandlers{manager: manager}
}

func (h *RunHandlers) gameFromRequest(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	runID := chi.URLParam(r, "runID")
	g, err := h.manager.Get(runID)
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return nil, false
	}
	return g, true
}

func (h *RunHandlers) respondState(w http.ResponseWriter, g *game.Game) {
	respondJSON(w, http.StatusOK, RunResponse{State: g.Snapshot(), Offers: g.Offers()})
}

// decodeAndValidate parses a JSON body into req and applies validation tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
		return false
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  ErrMsgInvalidRequestError,
			"fields": FormatValidationError(err),
		})
		return false
	}
	return true
}

// runAction executes a game action and renders the resulting state.
func (h *RunHandlers) runAction(w http.ResponseWriter, g *game.Game, fn func() error) {
	if err := fn(); err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return
	}
	h.respondState(w, g)
}

// HandleCreateRun starts a new run.
func (h *RunHandlers) HandleCreateRun(w http.ResponseWriter, r *http.Request) {
	g, err := h.manager.CreateRun(r.Context())
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return
	}
	respondJSON(w, http.StatusCreated, RunResponse{State: g.Snapshot()})
}

// HandleGetRun returns the current state snapshot.
func (h *RunHandlers) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	h.respondState(w, g)
}

// HandleDeleteRun abandons a run.
func (h *RunHandlers) HandleDeleteRun(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	_ = g.Finish()
	h.manager.Remove(g.RunID())
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "run abandoned"})
}

// WithdrawRequest names the ingredient to pull from storage.
type WithdrawRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// HandleWithdraw moves an ingredient onto the countertop.
func (h *RunHandlers) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	var req WithdrawRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.runAction(w, g, func() error { return g.Withdraw(req.Name) })
}

// SelectRequest toggles a countertop slot.
type SelectRequest struct {
	Index    int  `json:"index" validate:"gte=0"`
	Selected bool `json:"selected"`
}

// HandleSelect toggles a countertop selection.
func (h *RunHandlers) HandleSelect(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	var req SelectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.runAction(w, g, func() error { return g.SelectItem(req.Index, req.Selected) })
}

// HandleCombine runs the pan.
func (h *RunHandlers) HandleCombine(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	h.runAction(w, g, g.Combine)
}

// HandleSplit runs the cutting board.
func (h *RunHandlers) HandleSplit(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	h.runAction(w, g, g.Split)
}

// HandleAmplify runs the amplifier.
func (h *RunHandlers) HandleAmplify(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	h.runAction(w, g, g.Amplify)
}

// HandleMutate runs the microwave.
func (h *RunHandlers) HandleMutate(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	h.runAction(w, g, g.Mutate)
}

// HandleTrash discards the selected items.
func (h *RunHandlers) HandleTrash(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	h.runAction(w, g, g.Trash)
}

// MerchantBuyRequest names the merchant ingredient to unlock.
type MerchantBuyRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// HandleMerchantBuy purchases an ingredient unlock from the merchant.
func (h *RunHandlers) HandleMerchantBuy(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	var req MerchantBuyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.runAction(w, g, func() error { return g.MerchantBuy(req.Name) })
}

// HandleServe offers the selected dish to the current guest.
func (h *RunHandlers) HandleServe(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	h.runAction(w, g, g.Serve)
}

// TasteResponse carries the per-attribute feedback lines.
type TasteResponse struct {
	Feedback map[domain.Attribute]string `json:"feedback"`
	State    domain.RunState             `json:"state"`
}

// HandleTaste samples the selected item.
func (h *RunHandlers) HandleTaste(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	feedback, err := g.Taste()
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondError(w, status, msg)
		return
	}
	respondJSON(w, http.StatusOK, TasteResponse{Feedback: feedback, State: g.Snapshot()})
}

// PaymentSelectRequest toggles a feedback line item.
type PaymentSelectRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Selected bool   `json:"selected"`
}

// HandlePaymentSelect toggles a payment line item.
func (h *RunHandlers) HandlePaymentSelect(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	var req PaymentSelectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.runAction(w, g, func() error { return g.SelectPaymentItem(req.ItemID, req.Selected) })
}

// HandleCollect collects the pending feedback.
func (h *RunHandlers) HandleCollect(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	h.runAction(w, g, g.Collect)
}

// ConsumableRequest names a consumable by id.
type ConsumableRequest struct {
	ID string `json:"id" validate:"required,max=64"`
}

// HandleUseConsumable applies a consumable.
func (h *RunHandlers) HandleUseConsumable(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	var req ConsumableRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.runAction(w, g, func() error { return g.UseConsumable(req.ID) })
}

// ArtifactChooseRequest names an offered artifact.
type ArtifactChooseRequest struct {
	ID string `json:"id" validate:"required,max=64"`
}

// HandleChooseArtifact accepts one of the day-end offers.
func (h *RunHandlers) HandleChooseArtifact(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	var req ArtifactChooseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.runAction(w, g, func() error { return g.ChooseArtifact(req.ID) })
}

// HandleDeclineArtifacts passes on the day-end offers.
func (h *RunHandlers) HandleDeclineArtifacts(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	h.runAction(w, g, g.DeclineArtifacts)
}

// HandleContinueEndless keeps a victorious run going.
func (h *RunHandlers) HandleContinueEndless(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	h.runAction(w, g, g.ContinueEndless)
}

// HandleFinish ends the run explicitly.
func (h *RunHandlers) HandleFinish(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	h.runAction(w, g, g.Finish)
}
