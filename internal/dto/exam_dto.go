package dto

import "encoding/json"

// RawExam is an exam exactly as the backend returns it, before question
// kinds and options are normalized for presentation.
type RawExam struct {
	ID                string        `json:"_id"`
	Title             string        `json:"title"`
	Description       string        `json:"description,omitempty"`
	Duration          int           `json:"duration,omitempty"`
	PassingPercentage float64       `json:"passingPercentage,omitempty"`
	IsPublished       bool          `json:"isPublished,omitempty"`
	Questions         []RawQuestion `json:"questions,omitempty"`
	CreatedBy         string        `json:"createdBy,omitempty"`
}

// RawQuestion carries the lowercase snake-case type tag and the raw
// options array. Some backend revisions use "id" instead of "_id".
type RawQuestion struct {
	ID      string      `json:"_id"`
	AltID   string      `json:"id"`
	Content string      `json:"content"`
	Type    string      `json:"type"`
	Options []RawOption `json:"options,omitempty"`
}

// Identifier returns "_id" when set, falling back to "id".
func (q *RawQuestion) Identifier() string {
	if q.ID != "" {
		return q.ID
	}
	return q.AltID
}

// RawOption decodes an option that is either a bare string or an object
// with a "text" field (the correct-answer flag never reaches clients).
type RawOption struct {
	Text string
}

func (o *RawOption) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		o.Text = s
		return nil
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	o.Text = obj.Text
	return nil
}

func (o RawOption) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Text)
}
