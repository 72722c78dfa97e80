package game

type CharacterTemplate struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	MaxSleep    int    `json:"max_sleep"`
	Description string `json:"description"`
}

var characterTemplates = []CharacterTemplate{
	{"Anthony", 4, 12, "A curious little one."},
	{"Austin", 8, 10, "Energetic and playful."},
	{"Bee", 10, 9, "Always buzzing with activity."},
	{"Bell", 30, 7, "Rings true to her responsibilities."},
	{"Bey", 5, 11, "Sweet and sleepy."},
	{"Boy", 8, 10, "Full of youthful spirit."},
	{"Brian", 15, 9, "Navigating teenage dreams."},
	{"Chris", 29, 7, "A seasoned individual."},
	{"Fiona", 60, 8, "Wise and serene."},
	{"Gel", 4, 12, "Soft and squishy, loves naps."},
	{"Goku", 25, 8, "Always ready for an adventure, or a nap."},
	{"Hero", 6, 10, "Aspiring to great feats, but needs rest."},
	{"Jeejee", 17, 9, "Always on the go."},
	{"Jerico", 36, 7, "Building dreams and needing sleep."},
	{"Joe", 55, 7, "Enjoys quiet evenings."},
	{"Kate", 70, 8, "A lifetime of experience."},
	{"Lee", 71, 8, "Finding peace in slumber."},
	{"Lila", 69, 8, "Graceful and calm."},
	{"Luna", 22, 8, "Night owl, needs her beauty sleep."},
	{"Martin", 10, 9, "A little dreamer."},
	{"Micheal", 6, 10, "Full of innocent wonder."},
	{"Mike", 1, 14, "Needs lots of sleep to grow big and strong."},
	{"Nena", 1, 14, "Tiny and always sleepy."},
	{"Rich", 3, 13, "Loves toys and quiet time."},
	{"Roxy", 14, 9, "Energetic teenager."},
	{"Violet", 50, 7, "A vibrant personality."},
	{"Wendy", 57, 7, "Always puts comfort first."},
	{"William", 80, 8, "Cherishes every moment of rest."},
	{"Zeno", 19, 8, "Exploring new horizons."},
}

func CharacterTemplates() []CharacterTemplate {
	return append([]CharacterTemplate(nil), characterTemplates...)
}
