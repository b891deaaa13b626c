package phase

import "ai-boardroom-be/pkg/board/persona"

// DefaultPlan returns the standard four-phase board meeting agenda.
func DefaultPlan() *Plan {
	p, err := NewPlan(
		Phase{
			Name:          "Opening Check-In",
			Description:   "The Chair opens the meeting and takes stock of the user's week.",
			LeadPersonaId: persona.IdChair,
			SeedPrompts: []string{
				"Welcome back. Before we get into the agenda: in your own words, how did this week actually go?",
				"And looking at the week as a whole, what's the one thing you're most and least proud of?",
			},
			Rubric: "The answer should describe concrete events or outcomes from the user's week, " +
				"not a generic mood report. Accept answers that name at least one specific thing that happened.",
			MinWords: 5,
			ChallengeMessages: []string{
				"That's a little thin for a board meeting. Give me specifics: what actually happened this week?",
				"I'll push back. 'Fine' and 'busy' are not board-level answers. Name one concrete thing you did or didn't do.",
				"Last try, and then we move on: one specific event, one specific outcome. What was it?",
			},
			MaxAttempts: 3,
		},
		Phase{
			Name:          "Commitment Review",
			Description:   "The COO walks through the commitments made at the previous meeting.",
			LeadPersonaId: persona.IdOperator,
			SeedPrompts: []string{
				"Let's go through what you committed to last time, item by item. Which ones did you actually complete?",
				"For the ones that slipped: what got in the way, concretely?",
			},
			Rubric: "The answer should state, per commitment, whether it was done or not and give a concrete " +
				"reason for any slippage. Reject answers that don't reference specific commitments.",
			MinWords: 8,
			ChallengeMessages: []string{
				"Go through them one by one, please. Done or not done, and why.",
				"You're summarizing again. I want item-level status: which commitment, what happened, what's the blocker.",
				"Final ask: pick the single most important commitment and tell me exactly where it stands.",
			},
			MaxAttempts: 3,
		},
		Phase{
			Name:          "Deep Dive",
			Description:   "The independent director interrogates the week's biggest problem.",
			LeadPersonaId: persona.IdSkeptic,
			SeedPrompts: []string{
				"Pick the one problem that's costing you the most right now. Describe it without softening it.",
				"Now tell me the part of this problem that is your own doing.",
			},
			Rubric: "The answer should name a specific problem with specific consequences and some causal " +
				"detail. Reject vague hand-waving like 'time management' with no example.",
			MinWords: 10,
			ChallengeMessages: []string{
				"That's the polished version. Tell me what it actually looks like on a Tuesday afternoon.",
				"You're describing a category, not a problem. When did it last happen? What did it cost you?",
				"I'll take whatever you give me next, but note for the minutes that you're dodging.",
			},
			MaxAttempts: 3,
		},
		Phase{
			Name:          "New Commitments",
			Description:   "The Chair closes by extracting the next week's commitments.",
			LeadPersonaId: persona.IdChair,
			SeedPrompts: []string{
				"Let's close. What exactly will you commit to before the next meeting? Dates and deliverables, please.",
				"Good. And what's the first physical action you'll take tomorrow morning toward that?",
			},
			Rubric: "The answer should contain at least one commitment with a concrete deliverable and a " +
				"timeframe. Reject intentions with no date or measurable outcome.",
			MinWords: 8,
			ChallengeMessages: []string{
				"A commitment has a deliverable and a date. Yours has neither. Try again.",
				"Victor would call that an unfunded mandate. What will exist by when?",
				"Noted as given. The minutes will show the board found it vague.",
			},
			MaxAttempts: 3,
		},
	)
	if err != nil {
		panic(err)
	}
	return p
}
