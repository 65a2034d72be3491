package catalog

import "github.com/mcoot/scavengerhunt/internal/model"

const mediaBase = "https://dl.dropboxusercontent.com/u/123971/scavenger-hunt/"

var defaultClues = []model.Clue{
	{ID: "clue1", Keyword: "boygeorge", Title: "Humdinger of a clue", MediaURL: mediaBase + "clue01.jpg"},
	{ID: "clue2", Keyword: "scumbucket", Title: "Let this clue float in your head for a bit.", MediaURL: mediaBase + "clue02.jpg"},
	{ID: "clue3", Keyword: "billieidol", Title: "Wood you be my neighbor?", MediaURL: mediaBase + "clue03.jpg"},
	{ID: "clue4", Keyword: "erasure", Title: "Time to hunt!", MediaURL: mediaBase + "clue04.jpg"},
	{ID: "clue5", Keyword: "blondie", Title: "Can you handle this?", MediaURL: mediaBase + "clue05.jpg"},
	{ID: "clue6", Keyword: "cinderella", Title: "Your days are numbered...", MediaURL: mediaBase + "clue06.jpg"},
	{ID: "clue7", Keyword: "joejackson", Title: "Your inability to find these clues is grating on me.", MediaURL: mediaBase + "clue07.jpg"},
	{ID: "clue8", Keyword: "onedirection", Title: "Your progress is a bad sign.", MediaURL: mediaBase + "clue08.jpg"},
	{ID: "clue9", Keyword: "wildfire", Title: "Wash away your fears", MediaURL: mediaBase + "clue09.jpg"},
	{ID: "clue10", Keyword: "slowmo", Title: "Are you getting tired of this?", MediaURL: mediaBase + "clue10.jpg"},
	{ID: "clue11", Keyword: "dummy", Title: "The wicked clue is dead?", MediaURL: mediaBase + "clue11.jpg"},
	{ID: "clue12", Keyword: "fakeplastic", Title: "Rock on dude!", MediaURL: mediaBase + "clue12.jpg"},
	{ID: "clue13", Keyword: "menatwork", Title: "Keep looking!", MediaURL: mediaBase + "clue13.jpg"},
	{ID: "clue14", Keyword: "duran", Title: "Dont lean on your senses.", MediaURL: mediaBase + "clue14.jpg"},
	{ID: "clue15", Keyword: "jazzyjeff", Title: "Let cooler heads prevail.", MediaURL: mediaBase + "clue15.jpg"},
}

// Default returns the built-in fifteen clue catalog
func Default() *Catalog {
	c, err := New(defaultClues)
	if err != nil {
		panic("invalid built-in catalog: " + err.Error())
	}
	return c
}
