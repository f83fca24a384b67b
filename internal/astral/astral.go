package astral

// The game clock is a single monotonic counter of elapsed in-game hours.
// Everything periodic (day/night, lunar phase, zodiac sign) is derived
// from it here with pure functions; no component keeps its own clock.

const (
	// DailyMax is the number of hours in one in-game day.
	DailyMax = 24
	// LunarMax is one full lunar cycle (7 days).
	LunarMax = 168
	// SignMax is the reign of one zodiac sign (28 days).
	SignMax = 672

	// DayStart and DayEnd bound the daytime window, inclusive.
	DayStart = 6
	DayEnd   = 17
	// PeakHour is midday, when The Sun's multiplier fires.
	PeakHour = 12
)

// Phase is a lunar phase or zodiac sign entry.
type Phase struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var LunarPhases = []Phase{
	{Name: "New", Icon: "🌑"},
	{Name: "Waxing", Icon: "🌓"},
	{Name: "Full", Icon: "🌕"},
	{Name: "Waning", Icon: "🌗"},
}

var ZodiacSigns = []Phase{
	{Name: "Aries", Icon: "♈"}, {Name: "Taurus", Icon: "♉"}, {Name: "Gemini", Icon: "♊"},
	{Name: "Cancer", Icon: "♋"}, {Name: "Leo", Icon: "♌"}, {Name: "Virgo", Icon: "♍"},
	{Name: "Libra", Icon: "♎"}, {Name: "Scorpio", Icon: "♏"}, {Name: "Sagittarius", Icon: "♐"},
	{Name: "Capricorn", Icon: "♑"}, {Name: "Aquarius", Icon: "♒"}, {Name: "Pisces", Icon: "♓"},
}

// DayHour returns the hour of day in [0, 24).
func DayHour(globalHours int) int { return globalHours % DailyMax }

// IsDayTime reports whether the hour falls inside the daytime window.
func IsDayTime(globalHours int) bool {
	h := DayHour(globalHours)
	return h >= DayStart && h <= DayEnd
}

// IsMidDay reports whether the hour is the daily peak.
func IsMidDay(globalHours int) bool { return DayHour(globalHours) == PeakHour }

// PhaseIndex returns the current lunar phase index (4 phases of 42 hours).
func PhaseIndex(globalHours int) int {
	return (globalHours % LunarMax) / 42 % len(LunarPhases)
}

// SignIndex returns the current zodiac sign index.
func SignIndex(globalHours int) int {
	return (globalHours / SignMax) % len(ZodiacSigns)
}

// IsNewMoon reports whether the hour lands exactly on a new moon.
// Hour zero does not count.
func IsNewMoon(globalHours int) bool {
	return globalHours > 0 && globalHours%LunarMax == 0
}

// DaylightIntensity returns 0..1, peaking at midday, 0 outside the
// day window. Used by clients for ambience only.
func DaylightIntensity(globalHours int) float64 {
	h := DayHour(globalHours)
	if h < DayStart || h > DayEnd {
		return 0
	}
	dist := h - PeakHour
	maxDist := DayEnd - PeakHour
	if h < PeakHour {
		dist = PeakHour - h
		maxDist = PeakHour - DayStart
	}
	v := 1 - float64(dist)/float64(maxDist)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// CycleState is the per-tick breakdown of the clock exposed to clients.
type CycleState struct {
	Daily         int  `json:"daily"`
	Lunar         int  `json:"lunar"`
	Sign          int  `json:"sign"`
	CycleDuration int  `json:"cycleDuration"`
	DailyComplete bool `json:"dailyComplete"`
	LunarComplete bool `json:"lunarComplete"`
	SignComplete  bool `json:"signComplete"`
}

// Breakdown derives the cycle counters from the clock.
func Breakdown(globalHours, tickRateMS int) CycleState {
	return CycleState{
		Daily:         globalHours % DailyMax,
		Lunar:         globalHours % LunarMax,
		Sign:          globalHours % SignMax,
		CycleDuration: tickRateMS,
		DailyComplete: globalHours > 0 && globalHours%DailyMax == 0,
		LunarComplete: globalHours > 0 && globalHours%LunarMax == 0,
		SignComplete:  globalHours > 0 && globalHours%SignMax == 0,
	}
}
