package game

import (
	"fmt"
	"math/rand"
)

// Variant selects the card roster.
type Variant string

const (
	VariantStandard Variant = "standard"
	// VariantLegacy adds the theft and protection cards on top of the
	// standard roster.
	VariantLegacy Variant = "legacy"
)

type Template struct {
	Name        string   `json:"name"`
	Type        CardType `json:"type"`
	Effect      Effect   `json:"effect"`
	Description string   `json:"description"`
	Rarity      float64  `json:"rarity"`
}

func (t Template) Card() Card {
	return Card{Name: t.Name, Type: t.Type, Effect: t.Effect, Description: t.Description}
}

func attack(name string, v int, desc string) Template {
	return Template{Name: name, Type: CardAttack, Effect: Effect{Kind: EffectReduceSleep, Value: v}, Description: desc, Rarity: 1.0}
}

func support(name string, v int, desc string) Template {
	return Template{Name: name, Type: CardSupport, Effect: Effect{Kind: EffectAddSleep, Value: v}, Description: desc, Rarity: 1.0}
}

var standardTemplates = []Template{
	attack("Acid_reflux", -2, "Causes discomfort, making sleep harder."),
	attack("Depressed", -3, "A heavy mind that steals away sleep."),
	support("Eye_patch", 1, "Helps block out light for a quick nap."),
	support("Massage_under_the_ears", 1, "A soothing touch to invite slumber."),
	support("Sleep_with_the_lights_off", 2, "Darkness deepens the sleep."),
	support("Stress_reducing_music", 1, "Calming tunes for a peaceful mind."),
	support("Banana", 1, "A potassium boost for better rest."),
	support("Dont_sleep_during_the_day", 2, "Saves up all sleep for the night."),
	support("Free_from_odor_pollution", 1, "A clean scent promotes deep sleep."),
	support("Meditate", 2, "Calm your mind for restful sleep."),
	support("Sleeping_pills", 2, "A little help to fall asleep."),
	attack("Stressed", -2, "Worries keep slumber at bay."),
	attack("Bright_room", -1, "Light disrupts the sleep cycle."),
	attack("Drink_alcohol", -2, "Alcohol may induce sleep but disrupts quality."),
	support("Fresh_air", 1, "A cool breeze makes for cozy sleep."),
	attack("Nightmare", -2, "Terrifying dreams steal away rest."),
	attack("Smoking", -3, "Nicotine keeps the body awake."),
	support("Tea", 1, "A warm cup of calming tea."),
	attack("Coffee", -2, "Caffeine keeps the mind alert."),
	support("Drink_water", 2, "Hydration is key to healthy sleep."),
	support("Go_to_bed_on_time", 2, "Consistency builds a strong sleep cycle."),
	support("No_noise", 1, "A silent environment for peaceful rest."),
	attack("Snoring", -1, "Loud noises disrupt everyone's sleep."),
	attack("Using_phone", -3, "Blue light disturbs natural sleep patterns."),
	support("Cold_weather", 2, "A chilly room can be surprisingly cozy."),
	attack("Eat_a_heavy_meal", -2, "Digestion makes sleeping difficult."),
	support("Good_income", 2, "Financial security brings peace of mind."),
	support("Not_coffee", 2, "Avoiding stimulants helps promote sleep."),
	support("Socialize_well", 2, "Good connections ease the mind for sleep."),
	support("Work_life_balance", 2, "Achieving balance leads to healthier sleep."),
	support("Cool_colors", 1, "Soothing colors create a relaxing atmosphere."),
	support("Eat_a_light_meal", 1, "Easy digestion for peaceful sleep."),
	support("Hot_milk", 1, "A classic remedy for sweet dreams."),
	attack("Not_exercising", -2, "Lack of activity can make falling asleep harder."),
	attack("Stay_up_late", -3, "Significantly reduces sleep, impacting health."),
	attack("Cough", -1, "A persistent cough disrupts peaceful sleep."),
	attack("Eat_and_then_sleep", -2, "Eating right before bed can lead to discomfort."),
	attack("Hot_weather", -1, "Heat makes it difficult to find comfort in bed."),
	attack("Odor_pollution", -1, "Unpleasant smells hinder relaxation."),
	attack("Stomach_ache", -2, "Pain keeps the body from resting."),
	support("Dark_room", 2, "A dark room promotes melatonin production."),
	support("Exercising", 2, "Physical activity helps to tire the body."),
	attack("Loud", -2, "Excessive noise makes sleep impossible."),
	attack("Sick", -3, "Illness severely impacts sleep quality."),
	support("Stop_using_phone", 3, "Avoiding screens before bed improves sleep."),
	{Name: "Lucky", Type: CardLucky, Effect: Effect{Kind: EffectRestoreSleep}, Description: "Fully rests one of your own characters.", Rarity: 0.2},
	{Name: "Swap", Type: CardSwap, Effect: Effect{Kind: EffectSwapCards}, Description: "Swap cards with an opponent.", Rarity: 0.3},
	{Name: "Defense_Card", Type: CardDefense, Effect: Effect{Kind: EffectNullify}, Description: "Nullifies an opponent's action against you.", Rarity: 0.5},
}

var legacyTemplates = []Template{
	{Name: "Thief", Type: CardThief, Effect: Effect{Kind: EffectStealCards}, Description: "Steal cards from an opponent's hand.", Rarity: 0.1},
	{Name: "Anti_theft", Type: CardAntiTheft, Effect: Effect{Kind: EffectBlockTheft}, Description: "Stops a theft attempt against you.", Rarity: 0.2},
	{Name: "Blanket_fort", Type: CardProtect, Effect: Effect{Kind: EffectProtect}, Description: "Protects one of your characters from attacks.", Rarity: 0.3},
	{Name: "Alarm_clock", Type: CardDispel, Effect: Effect{Kind: EffectDispel}, Description: "Removes an opponent character's protection.", Rarity: 0.3},
	{Name: "Sedative", Type: CardAttack, Effect: Effect{Kind: EffectForceSleep}, Description: "Puts an opposing character to sleep at once.", Rarity: 0.1},
}

// Catalog is the immutable card roster of one variant.
type Catalog struct {
	variant   Variant
	templates []Template
	weights   []int
	total     int
}

func NewCatalog(v Variant) (*Catalog, error) {
	var ts []Template
	switch v {
	case VariantStandard, "":
		v = VariantStandard
		ts = append(ts, standardTemplates...)
	case VariantLegacy:
		ts = append(ts, standardTemplates...)
		ts = append(ts, legacyTemplates...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCatalog, v)
	}
	c := &Catalog{variant: v, templates: ts, weights: make([]int, len(ts))}
	for i, t := range ts {
		c.weights[i] = int(t.Rarity * 100)
		c.total += c.weights[i]
	}
	return c, nil
}

func (c *Catalog) Variant() Variant { return c.variant }

func (c *Catalog) Templates() []Template {
	return append([]Template(nil), c.templates...)
}

// Draw picks a card weighted by rarity.
func (c *Catalog) Draw(r *rand.Rand) Card {
	n := r.Intn(c.total)
	for i, w := range c.weights {
		if n < w {
			return c.templates[i].Card()
		}
		n -= w
	}
	return c.templates[len(c.templates)-1].Card()
}

// Lookup returns the template with the given name.
func (c *Catalog) Lookup(name string) (Template, bool) {
	for _, t := range c.templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}
