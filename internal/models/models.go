package models

import "slices"

// HealthRecord is one diary entry. All fields travel together: stores
// persist a copy of the whole record, never a subset.
type HealthRecord struct {
	Timestamp string   `json:"timestamp"` // dd.MM.yyyy HH:mm
	Diseases  []string `json:"diseases"`
	Symptoms  []string `json:"symptoms"`
	Triggers  []string `json:"triggers"`
	Report    string   `json:"report"` // rendered text, opaque to storage
}

// Clone returns a deep copy so callers never share label slices.
func (r HealthRecord) Clone() HealthRecord {
	return HealthRecord{
		Timestamp: r.Timestamp,
		Diseases:  slices.Clone(r.Diseases),
		Symptoms:  slices.Clone(r.Symptoms),
		Triggers:  slices.Clone(r.Triggers),
		Report:    r.Report,
	}
}

// AdviceCategory groups advice items. Name is unique.
type AdviceCategory struct {
	ID   int64  `db:"id"   json:"id"`
	Name string `db:"name" json:"name"`
}

// AdviceItem is a user-editable advice note. ID and CategoryID are fixed
// after insert; only Title and Text change on update.
type AdviceItem struct {
	ID         int64  `db:"id"          json:"id"`
	Title      string `db:"title"       json:"title"`
	Text       string `db:"text"        json:"text"`
	CategoryID int64  `db:"category_id" json:"category_id"`
}
