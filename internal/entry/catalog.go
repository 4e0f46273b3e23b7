package entry

import "github.com/tasaronina/MyDiary/internal/models"

const (
	Diabetes     = "Diabetes"
	Hypertension = "Hypertension"
	Migraine     = "Migraine"
	Asthma       = "Asthma"

	Headache      = "Headache"
	Dizziness     = "Dizziness"
	Nausea        = "Nausea"
	ChestPain     = "Chest pain"
	Dyspnea       = "Shortness of breath"
	Weakness      = "Weakness"
	Tremor        = "Tremor"
	Thirst        = "Thirst/frequent urination"
	BlurredVision = "Blurred vision"

	Stress        = "Stress"
	LackOfSleep   = "Lack of sleep"
	Weather       = "Weather changes"
	MissedMed     = "Missed medication"
	Caffeine      = "Caffeine"
	Workout       = "Physical exertion"
	DietViolation = "Diet violation"
)

var catalog = map[models.Group][]string{
	models.GroupDiseases: {Diabetes, Hypertension, Migraine, Asthma},
	models.GroupSymptoms: {Headache, Dizziness, Nausea, ChestPain, Dyspnea, Weakness, Tremor, Thirst, BlurredVision},
	models.GroupTriggers: {Stress, LackOfSleep, Weather, MissedMed, Caffeine, Workout, DietViolation},
}

// Groups lists label groups in display order.
var Groups = []models.Group{models.GroupDiseases, models.GroupSymptoms, models.GroupTriggers}

// Labels returns the selectable labels of g in display order.
func Labels(g models.Group) []string {
	return append([]string(nil), catalog[g]...)
}

// GroupTitle is the heading shown above a group.
func GroupTitle(g models.Group) string {
	switch g {
	case models.GroupDiseases:
		return "Chronic conditions"
	case models.GroupSymptoms:
		return "Symptoms today"
	case models.GroupTriggers:
		return "Possible triggers"
	}
	return string(g)
}
