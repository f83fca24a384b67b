package server

// Request bodies for the command endpoints. The state endpoint
// returns game.Snapshot as-is.

type PlaceCardRequest struct {
	SlotIndex      int `json:"slotIndex"`
	InventoryIndex int `json:"inventoryIndex"`
}

type RemoveCardRequest struct {
	SlotIndex int `json:"slotIndex"`
}

type ActivateRequest struct {
	SlotIndex int `json:"slotIndex"`
}

type BuyItemRequest struct {
	ItemID string `json:"itemId"`
}

type ResolveChoiceRequest struct {
	// CardID resolves a Lovers choice.
	CardID *int `json:"cardId,omitempty"`
	// InstanceIDs resolves a Hanged Man sacrifice.
	InstanceIDs []string `json:"instanceIds,omitempty"`
	// Marks resolves a Devil bargain.
	Marks []MarkPick `json:"marks,omitempty"`
}

type MarkPick struct {
	InstanceID string `json:"instanceId"`
	MarkIndex  int    `json:"markIndex"`
}

type ImportSaveRequest struct {
	Code string `json:"code"`
}

type ExportSaveResponse struct {
	Code string `json:"code"`
}

type CollectResponse struct {
	Collected int `json:"collected"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
