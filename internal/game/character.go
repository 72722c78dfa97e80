package game

func (c *Character) IsAsleep() bool {
	return c.CurrentSleep == 0 || c.ForcedAsleep
}

// AdjustSleep applies a signed delta, clamped to [0, MaxSleep].
func (c *Character) AdjustSleep(delta int) {
	c.CurrentSleep += delta
	if c.CurrentSleep < 0 {
		c.CurrentSleep = 0
	}
	if c.CurrentSleep > c.MaxSleep {
		c.CurrentSleep = c.MaxSleep
	}
}

func (c *Character) Restore() {
	c.CurrentSleep = c.MaxSleep
}

func (c *Character) Deficit() int {
	return c.MaxSleep - c.CurrentSleep
}

func (s *Seat) character(id string) *Character {
	for i := range s.Characters {
		if s.Characters[i].ID == id {
			return &s.Characters[i]
		}
	}
	return nil
}

// AllAsleep reports whether every character of the seat is asleep.
func (s *Seat) AllAsleep() bool {
	if len(s.Characters) == 0 {
		return false
	}
	for i := range s.Characters {
		if !s.Characters[i].IsAsleep() {
			return false
		}
	}
	return true
}

func (s *Seat) indexOfType(t CardType) int {
	for i, c := range s.Hand {
		if c.Type == t {
			return i
		}
	}
	return -1
}

func (s *Seat) Holds(t CardType) bool {
	return s.indexOfType(t) >= 0
}

func (s *Seat) removeCard(idx int) Card {
	c := s.Hand[idx]
	s.Hand = append(s.Hand[:idx:idx], s.Hand[idx+1:]...)
	return c
}
