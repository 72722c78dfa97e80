package game

// CardType is the tag that selects a card's targeting and effect rule.
type CardType string

const (
	CardAttack    CardType = "attack"
	CardSupport   CardType = "support"
	CardLucky     CardType = "lucky"
	CardSwap      CardType = "swap"
	CardDefense   CardType = "defense"
	CardThief     CardType = "thief"
	CardAntiTheft CardType = "anti_theft"
	CardProtect   CardType = "protect"
	CardDispel    CardType = "dispel"
)

type EffectKind string

const (
	EffectReduceSleep  EffectKind = "reduce_sleep"
	EffectAddSleep     EffectKind = "add_sleep"
	EffectRestoreSleep EffectKind = "restore_sleep"
	EffectForceSleep   EffectKind = "force_sleep"
	EffectSwapCards    EffectKind = "swap_cards"
	EffectNullify      EffectKind = "nullify_action"
	EffectStealCards   EffectKind = "steal_cards"
	EffectBlockTheft   EffectKind = "block_theft"
	EffectProtect      EffectKind = "protect"
	EffectDispel       EffectKind = "dispel"
)

// Effect is a card payload. Value is signed: attacks carry negative deltas.
type Effect struct {
	Kind  EffectKind `json:"type"`
	Value int        `json:"value,omitempty"`
}

type Card struct {
	Name        string   `json:"name"`
	Type        CardType `json:"type"`
	Effect      Effect   `json:"effect"`
	Description string   `json:"description"`
}

// Character is public to every viewer.
type Character struct {
	ID           string `json:"id"`
	Seat         int    `json:"seat"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Description  string `json:"description"`
	CurrentSleep int    `json:"current_sleep"`
	MaxSleep     int    `json:"max_sleep"`
	ForcedAsleep bool   `json:"forced_asleep,omitempty"`
	Protected    bool   `json:"is_protected"`
}

type Seat struct {
	ID         int         `json:"id"`
	Name       string      `json:"name"`
	IsBot      bool        `json:"is_bot"`
	HasLost    bool        `json:"has_lost"`
	Characters []Character `json:"characters"`
	Hand       []Card      `json:"-"`
}

type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseNormalPlay     Phase = "normal_play"
	PhasePendingDefense Phase = "pending_defense"
	PhasePendingSwap    Phase = "pending_swap_negotiation"
	PhasePendingTheft   Phase = "pending_theft_response"
	PhaseGameOver       Phase = "game_over"
)

type WinStatus struct {
	GameOver bool `json:"game_over"`
	Winner   *int `json:"winner_seat"`
}

// Notice is the short result of a resolved action.
type Notice struct {
	Message string    `json:"message"`
	Win     WinStatus `json:"win_status"`
}

type ActionKind string

const (
	ActionPlayCard       ActionKind = "play_card"
	ActionEndTurn        ActionKind = "end_turn"
	ActionResolveDefense ActionKind = "resolve_pending_defense"
	ActionRespondSwap    ActionKind = "respond_to_swap"
	ActionRespondTheft   ActionKind = "respond_to_theft"
)

type Step string

const (
	StepSelect   Step = "select"
	StepDeselect Step = "deselect"
	StepConfirm  Step = "confirm"
	StepCancel   Step = "cancel"
)

// Action is everything a seat can submit. Only the fields relevant to Kind
// are read.
type Action struct {
	Kind              ActionKind `json:"kind"`
	CardIndex         int        `json:"card_index"`
	TargetCharacterID string     `json:"target_character_id,omitempty"`
	TargetSeat        *int       `json:"target_seat,omitempty"`

	UseDefense       bool `json:"use_defense,omitempty"`
	DefenseCardIndex *int `json:"defense_card_index,omitempty"`

	Step  Step `json:"step,omitempty"`
	Index int  `json:"index"`

	UseCounter       bool `json:"use_counter,omitempty"`
	CounterCardIndex *int `json:"counter_card_index,omitempty"`
}

func PlayOnCharacter(cardIndex int, characterID string) Action {
	return Action{Kind: ActionPlayCard, CardIndex: cardIndex, TargetCharacterID: characterID}
}

func PlayOnSeat(cardIndex, seat int) Action {
	return Action{Kind: ActionPlayCard, CardIndex: cardIndex, TargetSeat: &seat}
}

func EndTurn() Action {
	return Action{Kind: ActionEndTurn}
}

func Defend(use bool) Action {
	return Action{Kind: ActionResolveDefense, UseDefense: use}
}

func SwapStep(step Step, index int) Action {
	return Action{Kind: ActionRespondSwap, Step: step, Index: index}
}

func TheftStep(step Step, index int) Action {
	return Action{Kind: ActionRespondTheft, Step: step, Index: index}
}

func TheftCounter(use bool) Action {
	return Action{Kind: ActionRespondTheft, UseCounter: use}
}
