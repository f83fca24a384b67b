package game

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Otavioqwert/tarot-game/internal/card"
	"github.com/Otavioqwert/tarot-game/internal/config"
	"github.com/Otavioqwert/tarot-game/internal/engine"
	"github.com/Otavioqwert/tarot-game/internal/rng"
	"github.com/Otavioqwert/tarot-game/internal/save"
	"github.com/Otavioqwert/tarot-game/internal/shop"
)

// scriptRNG pops pre-scripted values; exhausted queues fall back to
// values that keep chance effects quiet.
type scriptRNG struct {
	floats []float64
	ints   []int
}

func (r *scriptRNG) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptRNG) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func newGameForTest(t *testing.T) (*Game, *FakeClock) {
	t.Helper()
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := New(config.Default(), rng.NewSeeded(1), clock, log, nil)
	g.rand = &scriptRNG{}
	return g, clock
}

func slot(g *Game, i, cardID int) *card.Instance {
	c := card.NewInstance(card.Library[cardID])
	g.slots[i].Card = c
	return c
}

func TestNew_StartingState(t *testing.T) {
	g, _ := newGameForTest(t)

	assert.Equal(t, 4999.0, g.Currency())
	assert.Equal(t, 0, g.GlobalHours())
	assert.Len(t, g.slots, 3)
	assert.Empty(t, g.inventory)
	assert.Len(t, g.shopItems, 3)
}

func TestAdvanceHour_JusticeIncome(t *testing.T) {
	g, _ := newGameForTest(t)
	slot(g, 0, 11)
	g.globalHours = 6

	g.AdvanceHour()

	assert.Equal(t, 7, g.GlobalHours())
	assert.InDelta(t, 4999+25, g.Currency(), 1e-9)
	assert.Equal(t, 1, g.slots[0].Card.JusticeBonus)
}

func TestAdvanceHour_ChariotShortensDay(t *testing.T) {
	g, _ := newGameForTest(t)
	slot(g, 0, 7)
	g.globalHours = 46

	g.AdvanceHour()

	// One hour stepped plus the Chariot's adjustment.
	assert.Equal(t, 48, g.GlobalHours())
}

func TestAdvanceHour_HierophantHermitFixedRate(t *testing.T) {
	g, _ := newGameForTest(t)
	slot(g, 0, 5)
	slot(g, 1, 9)

	g.AdvanceHour()
	assert.Equal(t, 0.5, g.fixedRate)

	before := g.Currency()
	g.accrue()
	// Base trickle scaled by sync plus the fixed rate.
	assert.InDelta(t, before+0.05+0.5, g.Currency(), 1e-9)
}

func TestActivateEffect_Guards(t *testing.T) {
	g, _ := newGameForTest(t)

	assert.ErrorIs(t, g.ActivateEffect(-1), ErrInvalidIndex)
	assert.ErrorIs(t, g.ActivateEffect(5), ErrInvalidIndex)
	assert.ErrorIs(t, g.ActivateEffect(0), ErrEmptySlot)

	slot(g, 0, 11) // Justice has no activation
	assert.ErrorIs(t, g.ActivateEffect(0), ErrNotActivatable)
}

func TestActivateEffect_HighPriestessCooldown(t *testing.T) {
	g, _ := newGameForTest(t)
	c := slot(g, 0, 2)

	require.NoError(t, g.ActivateEffect(0))
	assert.Equal(t, 168, g.GlobalHours())
	assert.Equal(t, 336, c.CooldownUntil)

	assert.ErrorIs(t, g.ActivateEffect(0), ErrOnCooldown)
}

func TestActivateEffect_FoolRewindsAndSlows(t *testing.T) {
	g, _ := newGameForTest(t)
	slot(g, 0, 0)
	g.globalHours = 100

	require.NoError(t, g.ActivateEffect(0))

	assert.Equal(t, 76, g.GlobalHours())
	assert.Equal(t, 60000, g.tickRateMS)
	assert.Nil(t, g.slots[0].Card, "the Fool is single use")
	require.Len(t, g.buffs, 1)
	assert.Equal(t, engine.BuffTickSpeed, g.buffs[0].Type)

	for i := 0; i < 12; i++ {
		g.AdvanceHour()
	}
	assert.Empty(t, g.buffs)
	assert.Equal(t, 30000, g.tickRateMS)
}

func TestActivateEffect_WorldJackpot(t *testing.T) {
	g, _ := newGameForTest(t)
	c := slot(g, 0, 21)

	require.NoError(t, g.ActivateEffect(0))

	assert.InDelta(t, 4999+999, g.Currency(), 1e-9)
	assert.Len(t, g.buffs, 2)
	assert.Equal(t, 336, c.CooldownUntil)
}

func TestActivateEffect_RejectedWhileChoiceOpen(t *testing.T) {
	g, _ := newGameForTest(t)
	g.rand = &scriptRNG{ints: []int{0, 1}}
	slot(g, 0, 6)
	slot(g, 1, 2)

	require.NoError(t, g.ActivateEffect(0))
	require.NotNil(t, g.choice)

	assert.ErrorIs(t, g.ActivateEffect(1), ErrChoiceOpen)

	require.NoError(t, g.CancelChoice())
	assert.NoError(t, g.ActivateEffect(1))
}

func TestLovers_ResolveChoice(t *testing.T) {
	g, _ := newGameForTest(t)
	g.rand = &scriptRNG{ints: []int{0, 1}}
	slot(g, 0, 6)

	require.NoError(t, g.ActivateEffect(0))
	require.NotNil(t, g.choice)
	assert.Equal(t, engine.ChoiceLovers, g.choice.Kind)
	assert.Equal(t, []int{0, 1}, g.choice.Offered)

	assert.ErrorIs(t, g.ResolveChoice(5), ErrInvalidSelection)

	require.NoError(t, g.ResolveChoice(1))
	require.Len(t, g.inventory, 1)
	assert.Equal(t, 1, g.inventory[0].CardID)

	left := g.slots[0].Card
	require.NotNil(t, left)
	assert.True(t, left.IsBlank)
	assert.Equal(t, card.Library[6].Marks, left.Marks)
	assert.Nil(t, g.choice)
}

func TestLovers_BlankConsumption(t *testing.T) {
	g, _ := newGameForTest(t)
	g.rand = &scriptRNG{ints: []int{0, 1, 2, 3}}
	slot(g, 0, 6)
	g.slots[1].Card = card.NewBlank(nil)
	g.slots[2].Card = card.NewBlank(nil)

	require.NoError(t, g.ActivateEffect(0))
	require.NotNil(t, g.choice)
	assert.Len(t, g.choice.Offered, 4)
	assert.Equal(t, 2, g.choice.BlankConsumes)

	require.NoError(t, g.ResolveChoice(0))
	assert.Nil(t, g.slots[1].Card)
	assert.Nil(t, g.slots[2].Card)
}

func TestHangedMan_SacrificeFlow(t *testing.T) {
	g, _ := newGameForTest(t)
	hm := slot(g, 0, 12)
	for i := 0; i < 3; i++ {
		g.inventory = append(g.inventory, card.NewInstance(card.Library[i]))
	}
	ids := []string{
		g.inventory[0].InstanceID, g.inventory[1].InstanceID, g.inventory[2].InstanceID,
	}

	require.NoError(t, g.ActivateEffect(0))
	require.NotNil(t, g.choice)
	assert.Equal(t, engine.ChoiceSacrifice, g.choice.Kind)

	assert.ErrorIs(t, g.ConfirmSacrifice(nil), ErrEmptySelection)
	assert.ErrorIs(t, g.ConfirmSacrifice([]string{"missing"}), ErrInvalidSelection)

	require.NoError(t, g.ConfirmSacrifice(ids))
	assert.Empty(t, g.inventory)
	require.Len(t, g.payouts, 1)
	assert.Equal(t, 300.0, g.payouts[0].Amount)
	assert.Equal(t, 168, g.payouts[0].DeliveryTime)
	assert.Equal(t, 168, hm.CooldownUntil)
	assert.True(t, hm.HangedManActive)
	assert.Equal(t, 3, hm.HangedManConsumes)

	g.globalHours = 167
	g.AdvanceHour()

	assert.InDelta(t, 4999+300, g.Currency(), 1e-9)
	assert.Empty(t, g.payouts)
	assert.False(t, hm.HangedManActive)
	assert.Equal(t, 0, hm.HangedManConsumes)
}

func TestHangedMan_SingleSacrificePayout(t *testing.T) {
	g, _ := newGameForTest(t)
	slot(g, 0, 12)
	g.inventory = append(g.inventory, card.NewInstance(card.Library[0]))

	require.NoError(t, g.ActivateEffect(0))
	require.NoError(t, g.ConfirmSacrifice([]string{g.inventory[0].InstanceID}))

	require.Len(t, g.payouts, 1)
	assert.Equal(t, 50.0, g.payouts[0].Amount)
}

func TestDevil_BargainGuards(t *testing.T) {
	g, _ := newGameForTest(t)
	slot(g, 0, 15)
	m := slot(g, 1, 1)

	require.NoError(t, g.ActivateEffect(0))

	assert.ErrorIs(t, g.ConfirmDevil(nil), ErrEmptySelection)
	assert.ErrorIs(t, g.ConfirmDevil([]MarkSacrifice{
		{InstanceID: m.InstanceID, MarkIndex: 0},
		{InstanceID: m.InstanceID, MarkIndex: 0},
	}), ErrInvalidSelection)
	assert.ErrorIs(t, g.ConfirmDevil([]MarkSacrifice{
		{InstanceID: m.InstanceID, MarkIndex: 7},
	}), ErrInvalidSelection)
	assert.ErrorIs(t, g.ConfirmDevil([]MarkSacrifice{
		{InstanceID: "elsewhere", MarkIndex: 0},
	}), ErrInvalidSelection)

	// Failed confirmations leave the choice open and the card intact.
	assert.NotNil(t, g.choice)
	assert.Len(t, m.Marks, 1)
}

func TestDevil_CurrencyReward(t *testing.T) {
	g, _ := newGameForTest(t)
	slot(g, 0, 15)
	m := slot(g, 1, 1)

	require.NoError(t, g.ActivateEffect(0))
	g.rand = &scriptRNG{ints: []int{0}, floats: []float64{0.9, 0.1}}

	require.NoError(t, g.ConfirmDevil([]MarkSacrifice{{InstanceID: m.InstanceID, MarkIndex: 0}}))

	assert.InDelta(t, 4999+250, g.Currency(), 1e-9)
	assert.Empty(t, m.Marks)
	require.NotNil(t, m.Curse)
	assert.Equal(t, card.CurseIsolated, m.Curse.Type)
	assert.Nil(t, g.choice)
}

func TestDevil_SyncBonusReward(t *testing.T) {
	g, _ := newGameForTest(t)
	slot(g, 0, 15)
	m := slot(g, 1, 1)

	require.NoError(t, g.ActivateEffect(0))
	g.rand = &scriptRNG{ints: []int{1}, floats: []float64{0.9, 0.5}}

	require.NoError(t, g.ConfirmDevil([]MarkSacrifice{{InstanceID: m.InstanceID, MarkIndex: 0}}))

	assert.Equal(t, 5.0, g.permanentSyncBonus)
	assert.Equal(t, card.CurseVolatile, m.Curse.Type)
}

func TestDevil_EmpowersItself(t *testing.T) {
	g, _ := newGameForTest(t)
	devil := slot(g, 0, 15)
	m := slot(g, 1, 1)

	require.NoError(t, g.ActivateEffect(0))
	g.rand = &scriptRNG{ints: []int{2}, floats: []float64{0.9, 0.9}}

	require.NoError(t, g.ConfirmDevil([]MarkSacrifice{{InstanceID: m.InstanceID, MarkIndex: 0}}))

	assert.Equal(t, 2.0, devil.EffectMultiplier)
}

func TestEmpressEmperor_GrowsAndShrinksRing(t *testing.T) {
	g, _ := newGameForTest(t)
	slot(g, 0, 3)
	slot(g, 1, 4)

	g.AdvanceHour()
	require.Len(t, g.slots, 4)

	g.inventory = append(g.inventory, card.NewInstance(card.Library[11]))
	require.NoError(t, g.PlaceCard(3, 0))
	require.NotNil(t, g.slots[3].Card)

	// Removing the Emperor collapses the ring; the fourth card is
	// evicted back to the inventory.
	require.NoError(t, g.RemoveCard(1))
	assert.Len(t, g.slots, 3)
	require.Len(t, g.inventory, 2)
}

func TestEmpress_WindowCycle(t *testing.T) {
	g, clock := newGameForTest(t)
	c := slot(g, 0, 3)

	require.NoError(t, g.ActivateEffect(0))
	w := g.empress[c.InstanceID]
	require.NotNil(t, w)
	assert.True(t, w.Active)
	assert.Equal(t, 3, w.CyclesLeft)

	// Nothing moves before a full window elapses.
	g.advanceEmpressWindows()
	assert.True(t, w.Active)

	for i := 0; i < 3; i++ {
		clock.Advance(empressWindowDuration)
		g.advanceEmpressWindows()
		assert.False(t, w.Active)
		assert.Equal(t, 2-i, w.CyclesLeft)
	}

	clock.Advance(empressWindowDuration)
	g.advanceEmpressWindows()
	assert.True(t, w.Active)
	assert.Equal(t, 3, w.CyclesLeft)
}

func TestCollectReady(t *testing.T) {
	g, _ := newGameForTest(t)
	slot(g, 0, 2)  // activatable
	slot(g, 1, 11) // passive, stays
	slot(g, 2, 0)  // activatable

	assert.Equal(t, 2, g.CollectReady())
	assert.Nil(t, g.slots[0].Card)
	assert.NotNil(t, g.slots[1].Card)
	assert.Len(t, g.inventory, 2)
}

func TestCollectReady_SkipsCooldown(t *testing.T) {
	g, _ := newGameForTest(t)
	c := slot(g, 0, 2)
	c.CooldownUntil = 10

	assert.Equal(t, 0, g.CollectReady())
	assert.NotNil(t, g.slots[0].Card)
}

func TestPlaceCard(t *testing.T) {
	g, _ := newGameForTest(t)
	g.inventory = append(g.inventory, card.NewInstance(card.Library[0]))

	assert.ErrorIs(t, g.PlaceCard(9, 0), ErrInvalidIndex)
	assert.ErrorIs(t, g.PlaceCard(0, 9), ErrInvalidIndex)

	require.NoError(t, g.PlaceCard(0, 0))
	assert.Empty(t, g.inventory)
	require.NotNil(t, g.slots[0].Card)

	g.inventory = append(g.inventory, card.NewInstance(card.Library[1]))
	assert.ErrorIs(t, g.PlaceCard(0, 0), ErrSlotOccupied)
}

func TestPlaceCard_ReplacesBlank(t *testing.T) {
	g, _ := newGameForTest(t)
	g.slots[0].Card = card.NewBlank(nil)
	g.inventory = append(g.inventory, card.NewInstance(card.Library[1]))

	require.NoError(t, g.PlaceCard(0, 0))
	assert.Equal(t, 1, g.slots[0].Card.CardID)
}

func TestRemoveCard(t *testing.T) {
	g, _ := newGameForTest(t)

	assert.ErrorIs(t, g.RemoveCard(0), ErrEmptySlot)

	g.slots[0].Card = card.NewBlank(nil)
	assert.ErrorIs(t, g.RemoveCard(0), ErrBlankImmovable)

	slot(g, 1, 11)
	require.NoError(t, g.RemoveCard(1))
	assert.Nil(t, g.slots[1].Card)
	require.Len(t, g.inventory, 1)
	assert.Equal(t, 11, g.inventory[0].CardID)
}

func TestBuyItem(t *testing.T) {
	g, _ := newGameForTest(t)
	g.shopItems = []shop.Item{{
		ID: "i1", Name: "The Fool", Cost: 100, CardID: 0,
		Marks: card.Library[0].Marks,
	}}

	assert.ErrorIs(t, g.BuyItem("nope"), ErrUnknownItem)

	g.currency = 50
	assert.ErrorIs(t, g.BuyItem("i1"), ErrInsufficientFunds)

	g.currency = 4999
	require.NoError(t, g.BuyItem("i1"))
	assert.InDelta(t, 4899, g.Currency(), 1e-9)
	assert.Empty(t, g.shopItems)
	require.Len(t, g.inventory, 1)
	assert.Equal(t, 0, g.inventory[0].CardID)
}

func TestSave_RoundTrip(t *testing.T) {
	g, _ := newGameForTest(t)
	g.currency = 777
	g.globalHours = 100
	g.permanentSyncBonus = 15
	j := slot(g, 0, 11)
	j.JusticeBonus = 2
	g.inventory = append(g.inventory, card.NewInstance(card.Library[0]))
	g.payouts = []engine.PendingPayout{{DeliveryTime: 200, Amount: 150}}
	g.buffs = []engine.GlobalBuff{{ID: "b1", Modifier: 2, Duration: 6, Type: engine.BuffEffectMultiplier}}

	code, err := g.ExportSave()
	require.NoError(t, err)

	g.currency = 0
	g.globalHours = 0
	g.slots[0].Card = nil
	g.inventory = nil
	g.payouts = nil
	g.buffs = nil

	require.NoError(t, g.ImportSave(code))

	assert.Equal(t, 777.0, g.Currency())
	assert.Equal(t, 100, g.GlobalHours())
	assert.Equal(t, 15.0, g.permanentSyncBonus)
	require.NotNil(t, g.slots[0].Card)
	assert.Equal(t, 2, g.slots[0].Card.JusticeBonus)
	require.Len(t, g.inventory, 1)
	assert.Equal(t, 0, g.inventory[0].CardID)
	require.Len(t, g.payouts, 1)
	assert.Equal(t, 150.0, g.payouts[0].Amount)
	require.Len(t, g.buffs, 1)
}

func TestImportSave_ClampsOversizedRing(t *testing.T) {
	g, _ := newGameForTest(t)

	saved := func(cardID int) *save.SavedCard {
		s := save.FromInstance(card.NewInstance(card.Library[cardID]))
		return &s
	}
	state := save.State{
		Version:  save.Version,
		TickRate: 30000,
		// Empress and Emperor keep the ring at four slots; everything
		// past that is a crafted payload and gets dropped.
		Slots: []*save.SavedCard{
			saved(3), saved(4), nil, saved(11), saved(9), saved(0),
		},
	}
	code, err := save.Encode(state)
	require.NoError(t, err)

	require.NoError(t, g.ImportSave(code))

	require.Len(t, g.slots, 4)
	require.NotNil(t, g.slots[3].Card)
	assert.Equal(t, 11, g.slots[3].Card.CardID)
	assert.Empty(t, g.inventory)
}

func TestTickRateChange_SignalsHourLoop(t *testing.T) {
	g, _ := newGameForTest(t)
	slot(g, 0, 0)

	signaled := func() bool {
		select {
		case <-g.tickChanged:
			return true
		default:
			return false
		}
	}

	require.NoError(t, g.ActivateEffect(0))
	assert.True(t, signaled(), "slowdown wakes the hour loop")
	assert.False(t, signaled(), "signals coalesce")

	for i := 0; i < 12; i++ {
		g.AdvanceHour()
	}
	assert.Equal(t, 30000, g.tickRateMS)
	assert.True(t, signaled(), "buff lapse wakes the hour loop")
}

func TestImportSave_RejectsGarbage(t *testing.T) {
	g, _ := newGameForTest(t)
	before := g.Currency()

	err := g.ImportSave("garbage")
	assert.ErrorIs(t, err, save.ErrMalformed)
	assert.Equal(t, before, g.Currency())
}

func TestSnapshot_IsDetached(t *testing.T) {
	g, _ := newGameForTest(t)
	slot(g, 0, 11)

	snap := g.Snapshot()
	require.NotNil(t, snap.Slots[0].Card)

	snap.Slots[0].Card.JusticeBonus = 99
	assert.Equal(t, 0, g.slots[0].Card.JusticeBonus)
}
