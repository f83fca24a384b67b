// Package save implements the save-code codec: a compact versioned
// schema serialized to JSON, XOR-ciphered with a salt plus a key
// derived from the slot layout, and carried as Base64.
package save

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Otavioqwert/tarot-game/internal/card"
	"github.com/Otavioqwert/tarot-game/internal/engine"
)

// Version is bumped on any breaking schema change. Imports of other
// versions are rejected.
const Version = 1

const (
	salt      = "aether_cycles_secret_salt_v1"
	separator = "&"
)

var (
	ErrMalformed       = errors.New("save: malformed code")
	ErrVersionMismatch = errors.New("save: unsupported version")
)

// SavedCard is a card instance reduced to its non-default fields.
type SavedCard struct {
	CardID               int         `json:"cid"`
	InstanceID           string      `json:"iid"`
	Marks                []card.Mark `json:"m"`
	CooldownUntil        int         `json:"cd,omitempty"`
	Curse                *card.Curse `json:"cr,omitempty"`
	IsBlank              bool        `json:"ib,omitempty"`
	JusticeBonus         int         `json:"jb,omitempty"`
	TowerCycles          int         `json:"tc,omitempty"`
	EffectMultiplier     float64     `json:"em,omitempty"`
	HangedManActive      bool        `json:"hma,omitempty"`
	HangedManConsumes    int         `json:"hmc,omitempty"`
	HangedManActivatedAt int         `json:"hmaa,omitempty"`
}

// State is the full serializable game state.
type State struct {
	Version            int                    `json:"v"`
	Currency           float64                `json:"cur"`
	GlobalHours        int                    `json:"gh"`
	TickRate           int                    `json:"tr"`
	PermanentSyncBonus float64                `json:"psb"`
	Inventory          []SavedCard            `json:"inv"`
	Slots              []*SavedCard           `json:"sl"`
	PendingPayouts     []engine.PendingPayout `json:"pp"`
	GlobalBuffs        []engine.GlobalBuff    `json:"gb"`
}

// FromInstance reduces an instance to its saved form.
func FromInstance(in *card.Instance) SavedCard {
	return SavedCard{
		CardID:               in.CardID,
		InstanceID:           in.InstanceID,
		Marks:                in.Marks,
		CooldownUntil:        in.CooldownUntil,
		Curse:                in.Curse,
		IsBlank:              in.IsBlank,
		JusticeBonus:         in.JusticeBonus,
		TowerCycles:          in.TowerCycles,
		EffectMultiplier:     in.EffectMultiplier,
		HangedManActive:      in.HangedManActive,
		HangedManConsumes:    in.HangedManConsumes,
		HangedManActivatedAt: in.HangedManActivatedAt,
	}
}

// ToInstance rebuilds a live instance. Omitted fields default to
// unset; a live Tower surge is derived from its remaining cycles.
func (s SavedCard) ToInstance() *card.Instance {
	marks := s.Marks
	if marks == nil {
		marks = []card.Mark{}
	}
	return &card.Instance{
		InstanceID:           s.InstanceID,
		CardID:               s.CardID,
		Marks:                marks,
		CooldownUntil:        s.CooldownUntil,
		Curse:                s.Curse,
		EffectMultiplier:     s.EffectMultiplier,
		IsBlank:              s.IsBlank,
		JusticeBonus:         s.JusticeBonus,
		TowerActive:          s.TowerCycles > 0,
		TowerCycles:          s.TowerCycles,
		HangedManActive:      s.HangedManActive,
		HangedManConsumes:    s.HangedManConsumes,
		HangedManActivatedAt: s.HangedManActivatedAt,
	}
}

// Encode produces "<dynamicKey>&<base64(xor(json, salt+dynamicKey))>".
func Encode(state State) (string, error) {
	dynamicKey := dynamicKeyFor(state.Slots)
	payload, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("save: marshal state: %w", err)
	}
	ciphered := xorCipher(payload, []byte(salt+dynamicKey))
	return dynamicKey + separator + base64.StdEncoding.EncodeToString(ciphered), nil
}

// Decode parses a save code. The returned state is fully validated
// before any caller mutation should happen; failures leave nothing to
// clean up.
func Decode(code string) (State, error) {
	dynamicKey, encoded, ok := strings.Cut(code, separator)
	if !ok {
		return State{}, ErrMalformed
	}
	ciphered, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	payload := xorCipher(ciphered, []byte(salt+dynamicKey))

	// The required numerics must be present, not merely zero: a payload
	// with them missing would import as a wiped game.
	var required struct {
		Version  *int     `json:"v"`
		Currency *float64 `json:"cur"`
		Hours    *int     `json:"gh"`
		TickRate *int     `json:"tr"`
	}
	if err := json.Unmarshal(payload, &required); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if required.Version == nil || required.Currency == nil ||
		required.Hours == nil || required.TickRate == nil {
		return State{}, fmt.Errorf("%w: missing required fields", ErrMalformed)
	}
	if *required.Version != Version {
		return State{}, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, *required.Version, Version)
	}

	var state State
	if err := json.Unmarshal(payload, &state); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return state, nil
}

// dynamicKeyFor concatenates the lowercased, underscore-stripped
// effect ids of the slotted cards; empty slots contribute "null".
func dynamicKeyFor(slots []*SavedCard) string {
	var b strings.Builder
	for _, s := range slots {
		if s == nil {
			b.WriteString("null")
			continue
		}
		def, ok := card.Lookup(s.CardID)
		if !ok {
			b.WriteString("unknown")
			continue
		}
		key := strings.ToLower(string(def.EffectID))
		b.WriteString(strings.ReplaceAll(key, "_", ""))
	}
	return b.String()
}

func xorCipher(input, key []byte) []byte {
	if len(key) == 0 {
		out := make([]byte, len(input))
		copy(out, input)
		return out
	}
	out := make([]byte, len(input))
	for i, c := range input {
		out[i] = c ^ key[i%len(key)]
	}
	return out
}
