package hunt

import (
	"fmt"
	"math"
	"time"

	"github.com/mcoot/scavengerhunt/internal/model"
)

// FallbackReply is sent to a player when their message could not be processed
const FallbackReply = "Hold on, something happened. We'll try to fix this right away."

func welcomeReply() string {
	return "Welcome to the Twilio MMS scavenger hunt. First what is your super awesome nickname?"
}

func askNicknameReply() string {
	return "We didn't catch that. What is your super awesome nickname?"
}

func confirmNicknameReply(name string) string {
	return fmt.Sprintf("We have your nickname as %s. Is this correct? [yes] or [no]?", name)
}

func renameReply() string {
	return "Okay safari dude. What is your nickname then?"
}

func huntStartedReply(name string) string {
	return fmt.Sprintf("Ok %s, time to go find your first clue! You should receive a picture of it shortly. "+
		"Once you find the object send back the word written on it to this number.", name)
}

func clueFoundReply(name string) string {
	return fmt.Sprintf("Well done %s! You've just found a treasure! Now here's the next clue!", name)
}

func finishedReply(p *model.Player) string {
	return fmt.Sprintf("Congratulations %s! You've finished the game and found %d clues! "+
		"Your fastest time was %s, which is pretty good! "+
		"Now just wait for the others to finish and a special rewards ceremony.",
		p.Name, p.CompletedCount, formatFastest(p.FastestInterval))
}

func alreadyFinishedReply(p *model.Player) string {
	return fmt.Sprintf("You've already finished the hunt %s! You found %d clues and your fastest time was %s. "+
		"Hang tight for the rewards ceremony.",
		p.Name, p.CompletedCount, formatFastest(p.FastestInterval))
}

func injuredReply(phrase string, penalty time.Duration) string {
	return fmt.Sprintf("Ouch! %s. That's not the right word, look more carefully next time. "+
		"You need %d seconds to recover before you can try again.", phrase, wholeSeconds(penalty))
}

func wrongClueReply() string {
	return "That's not completely right (in fact it's wrong). Here's another clue, see if you can find it."
}

func stillRecoveringReply(remaining time.Duration) string {
	return fmt.Sprintf("You're still recovering from your injury. Give it %d more seconds before trying again.",
		wholeSeconds(remaining))
}

func recoveredReply(name string) string {
	return fmt.Sprintf("Good as new, %s! Here comes a clue, look more carefully this time.", name)
}

// AlertText is sent to the operator when a player's message faults
func AlertText(name, phoneNumber string) string {
	if name == "" {
		name = "an unnamed player"
	}
	return fmt.Sprintf("Something went wrong with the scavenger hunt app. Check the logs and figure out what happened. "+
		"The user who hit the error was %s at %s.", name, phoneNumber)
}

// formatFastest renders an interval in minutes with one decimal place
func formatFastest(d *time.Duration) string {
	if d == nil {
		return "not recorded"
	}
	return fmt.Sprintf("%.1f minutes", d.Minutes())
}

func wholeSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
