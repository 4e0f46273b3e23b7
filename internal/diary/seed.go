package diary

import "github.com/tasaronina/MyDiary/internal/models"

// DefaultCategory holds the starter advice shown in the advice list.
const DefaultCategory = "General recommendations"

// Seeds is inserted into DefaultCategory only while it is empty.
var Seeds = []models.AdviceItem{
	{
		Title: "Blood pressure control",
		Text:  "Measure blood pressure in the morning and in the evening and write the values into the diary.",
	},
	{
		Title: "Sleep schedule",
		Text:  "Try to sleep at least 7–8 hours, going to bed and getting up at the same time.",
	},
	{
		Title: "Physical activity",
		Text:  "A daily 20–30 minute walk at a comfortable pace, unless contraindicated.",
	},
}
