package model

// Section tags a question with the conversation phase it belongs to
type Section string

const (
	SectionBusiness  Section = "business"  // business profile questions (DIAGNOSIS phase)
	SectionReadiness Section = "readiness" // AI-readiness questions (READINESS phase)
)

// SkillLevel is the user's self-assessed AI competence, chosen once early in the flow
type SkillLevel string

const (
	SkillNovice    SkillLevel = "skill_level_novice"
	SkillConfident SkillLevel = "skill_level_confident"
	SkillExpert    SkillLevel = "skill_level_expert"
)

// Option is a selectable answer choice on a question
type Option struct {
	Key              string `json:"key"`
	Text             string `json:"text"`
	RequiresFreeText bool   `json:"requiresFreeText,omitempty"` // choosing it demands a follow-up text message
}

// Question is one entry of the fixed diagnostic questionnaire
type Question struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"` // may contain lightweight Markdown
	Section     Section  `json:"section"`
	MultiSelect bool     `json:"multiSelect,omitempty"`
	ExpectsText bool     `json:"expectsText,omitempty"` // no options, free text expected
	Options     []Option `json:"options,omitempty"`
}

// OptionByKey returns the option with the given key, or false when the key
// is unknown. Unknown keys are a routing miss, never fatal.
func (q *Question) OptionByKey(key string) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].Key == key {
			return &q.Options[i], true
		}
	}
	return nil, false
}

// HasOptions reports whether the question renders an inline keyboard.
func (q *Question) HasOptions() bool {
	return len(q.Options) > 0
}
