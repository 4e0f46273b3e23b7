// Package entry assembles diary records from selected labels.
package entry

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tasaronina/MyDiary/internal/models"
)

// TimeLayout is the fixed dd.MM.yyyy HH:mm timestamp format.
const TimeLayout = "02.01.2006 15:04"

const (
	reportTitle = "Health diary report"
	hintsTitle  = "Hints:"
	hintsEmpty  = "No specific hints for the selected combination."
	disclaimer  = "This report is for information only and does not replace a doctor's consultation."
)

type rule struct {
	disease string
	cues    []string // symptoms or triggers; one is enough
	hint    string
}

var rules = []rule{
	{Diabetes, []string{Thirst, BlurredVision},
		"Diabetes + thirst/blurred vision: check your blood sugar and discuss therapy adjustment."},
	{Hypertension, []string{ChestPain, Dizziness},
		"Hypertension + chest pain/dizziness: monitor blood pressure and review therapy."},
	{Migraine, []string{Stress, LackOfSleep, Caffeine},
		"Migraine + stress/lack of sleep/caffeine: keep a trigger diary and a sleep schedule."},
	{Asthma, []string{Dyspnea, Workout, Weather},
		"Asthma + shortness of breath/exertion/weather: check your inhaler and action plan."},
}

// BuildHints applies the co-occurrence rules in a fixed order.
func BuildHints(diseases, symptoms, triggers []string) []string {
	hints := []string{}
	for _, r := range rules {
		if !slices.Contains(diseases, r.disease) {
			continue
		}
		for _, x := range r.cues {
			if slices.Contains(symptoms, x) || slices.Contains(triggers, x) {
				hints = append(hints, r.hint)
				break
			}
		}
	}
	return hints
}

// OrDash joins items with ", " or returns "—" for an empty list.
func OrDash(items []string) string {
	if len(items) == 0 {
		return "—"
	}
	return strings.Join(items, ", ")
}

// RenderReport produces the full report text.
func RenderReport(timestamp string, diseases, symptoms, triggers []string) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line(reportTitle)
	line("Date and time: %s", timestamp)
	line("")
	line("%s: %s", GroupTitle(models.GroupDiseases), OrDash(diseases))
	line("%s: %s", GroupTitle(models.GroupSymptoms), OrDash(symptoms))
	line("%s: %s", GroupTitle(models.GroupTriggers), OrDash(triggers))
	line("")
	if hints := BuildHints(diseases, symptoms, triggers); len(hints) > 0 {
		line(hintsTitle)
		for i, h := range hints {
			line("%d) %s", i+1, h)
		}
	} else {
		line(hintsEmpty)
	}
	line("")
	line(disclaimer)
	return b.String()
}

// BuildRecord assembles an immutable record. Label slices are copied.
func BuildRecord(diseases, symptoms, triggers []string, now time.Time) models.HealthRecord {
	d := append([]string{}, diseases...)
	s := append([]string{}, symptoms...)
	t := append([]string{}, triggers...)
	ts := now.Format(TimeLayout)
	return models.HealthRecord{
		Timestamp: ts,
		Diseases:  d,
		Symptoms:  s,
		Triggers:  t,
		Report:    RenderReport(ts, d, s, t),
	}
}
